package service

import (
	"context"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"

	"gorm.io/gorm"
)

func strPtr(v string) *string { return &v }
func uintPtr(v uint) *uint    { return &v }

type fakeUserRepo struct {
	findByUsernameFn func(username string) (*model.User, error)
	findByEmailFn    func(email string) (*model.User, error)
	createFn         func(user *model.User) error
	updateFn         func(user *model.User) error
	findAllFn        func() ([]model.User, error)
	findByIDFn       func(userID uint) (*model.User, error)
	deleteFn         func(userID uint) error
	countByRoleFn    func(role string) (int64, error)
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if f.createFn != nil {
		return f.createFn(user)
	}
	return nil
}
func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	if f.findByUsernameFn != nil {
		return f.findByUsernameFn(username)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(email)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) Update(user *model.User) error {
	if f.updateFn != nil {
		return f.updateFn(user)
	}
	return nil
}
func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn()
	}
	return []model.User{}, nil
}
func (f *fakeUserRepo) FindByID(userID uint) (*model.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(userID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) Delete(userID uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(userID)
	}
	return nil
}
func (f *fakeUserRepo) CountByRole(role string) (int64, error) {
	if f.countByRoleFn != nil {
		return f.countByRoleFn(role)
	}
	return 0, nil
}

// fakeCategoryRepo 用内存切片模拟分类表，足够覆盖 service 的规则判断。
type fakeCategoryRepo struct {
	categories []model.Category
	nextID     uint

	updateOrdersCalls [][]ordering.Change
	updated           []model.Category
	deleteCalls       []string

	deleteFn  func(id uint) error
	cascadeFn func(id uint) error
}

func (f *fakeCategoryRepo) Create(category *model.Category) error {
	f.nextID++
	category.ID = 100 + f.nextID
	f.categories = append(f.categories, *category)
	return nil
}
func (f *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	return append([]model.Category(nil), f.categories...), nil
}
func (f *fakeCategoryRepo) FindByID(id uint) (*model.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCategoryRepo) FindByParentID(parentID *uint) ([]model.Category, error) {
	out := make([]model.Category, 0)
	for _, c := range f.categories {
		if sameParent(c.ParentID, parentID) {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCategoryRepo) NextOrder(parentID *uint) (int, error) {
	next := 0
	for _, c := range f.categories {
		if sameParent(c.ParentID, parentID) && c.Order >= next {
			next = c.Order + 1
		}
	}
	return next, nil
}
func (f *fakeCategoryRepo) Update(category *model.Category) error {
	f.updated = append(f.updated, *category)
	return nil
}
func (f *fakeCategoryRepo) UpdateOrders(changes []ordering.Change) error {
	f.updateOrdersCalls = append(f.updateOrdersCalls, changes)
	return nil
}
func (f *fakeCategoryRepo) Delete(id uint) error {
	f.deleteCalls = append(f.deleteCalls, "protect")
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}
func (f *fakeCategoryRepo) DeleteCascade(id uint) error {
	f.deleteCalls = append(f.deleteCalls, "cascade")
	if f.cascadeFn != nil {
		return f.cascadeFn(id)
	}
	return nil
}
func (f *fakeCategoryRepo) DeleteAndReparentChildren(id uint) error {
	f.deleteCalls = append(f.deleteCalls, "reparent")
	return nil
}

type fakeTagRepo struct {
	tags              []model.Tag
	created           []model.Tag
	updated           []model.Tag
	updateOrdersCalls [][]ordering.Change
	deleteFn          func(id uint, isPublic bool) error
	findByPoolFn      func(isPublic bool) ([]model.Tag, error)
}

func (f *fakeTagRepo) Create(tag *model.Tag) error {
	tag.ID = uint(len(f.tags) + len(f.created) + 1)
	f.created = append(f.created, *tag)
	return nil
}
func (f *fakeTagRepo) FindAll() ([]model.Tag, error) {
	return append([]model.Tag(nil), f.tags...), nil
}
func (f *fakeTagRepo) FindByPool(isPublic bool) ([]model.Tag, error) {
	if f.findByPoolFn != nil {
		return f.findByPoolFn(isPublic)
	}
	out := make([]model.Tag, 0)
	for _, t := range f.tags {
		if t.IsPublic == isPublic {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeTagRepo) FindByID(id uint, isPublic bool) (*model.Tag, error) {
	for _, t := range f.tags {
		if t.ID == id && t.IsPublic == isPublic {
			t := t
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTagRepo) FindByIDs(ids []uint, isPublic bool) ([]model.Tag, error) {
	out := make([]model.Tag, 0)
	for _, id := range ids {
		if t, err := f.FindByID(id, isPublic); err == nil {
			out = append(out, *t)
		}
	}
	return out, nil
}
func (f *fakeTagRepo) NextOrder(isPublic bool) (int, error) {
	next := 0
	for _, t := range f.tags {
		if t.IsPublic == isPublic && t.Order >= next {
			next = t.Order + 1
		}
	}
	return next, nil
}
func (f *fakeTagRepo) Update(tag *model.Tag) error {
	f.updated = append(f.updated, *tag)
	return nil
}
func (f *fakeTagRepo) UpdateOrders(changes []ordering.Change) error {
	f.updateOrdersCalls = append(f.updateOrdersCalls, changes)
	return nil
}
func (f *fakeTagRepo) Delete(id uint, isPublic bool) error {
	if f.deleteFn != nil {
		return f.deleteFn(id, isPublic)
	}
	return nil
}

type fakeStatusRepo struct {
	statuses          []model.StatusConfig
	created           []model.StatusConfig
	updated           []model.StatusConfig
	deleted           []uint
	updateOrdersCalls [][]ordering.Change
}

func (f *fakeStatusRepo) Create(status *model.StatusConfig) error {
	status.ID = uint(len(f.statuses) + len(f.created) + 1)
	f.created = append(f.created, *status)
	return nil
}
func (f *fakeStatusRepo) FindAll() ([]model.StatusConfig, error) {
	return append([]model.StatusConfig(nil), f.statuses...), nil
}
func (f *fakeStatusRepo) FindByID(id uint) (*model.StatusConfig, error) {
	for _, st := range f.statuses {
		if st.ID == id {
			st := st
			return &st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeStatusRepo) FindByKey(key string) (*model.StatusConfig, error) {
	for _, st := range f.statuses {
		if st.StatusKey == key {
			st := st
			return &st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeStatusRepo) NextOrder() (int, error) {
	next := 0
	for _, st := range f.statuses {
		if st.Order >= next {
			next = st.Order + 1
		}
	}
	return next, nil
}
func (f *fakeStatusRepo) Update(status *model.StatusConfig) error {
	f.updated = append(f.updated, *status)
	return nil
}
func (f *fakeStatusRepo) UpdateOrders(changes []ordering.Change) error {
	f.updateOrdersCalls = append(f.updateOrdersCalls, changes)
	return nil
}
func (f *fakeStatusRepo) Delete(id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAppealRepo struct {
	appeals       map[uint]*model.Appeal
	created       []model.Appeal
	statusUpdates map[uint]string
	replaced      map[bool][]model.Tag
	appended      []model.Tag
	removed       []model.Tag
	comments      []model.Comment
	patchCalls    int
	patchErr      error

	count        int64
	byStatus     map[string]int64
	byTag        map[bool]map[uint]int64
	samples      []repository.ResolutionSample
	sampleFilter []string
}

func (f *fakeAppealRepo) Create(appeal *model.Appeal) error {
	appeal.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *appeal)
	return nil
}
func (f *fakeAppealRepo) FindByID(id uint) (*model.Appeal, error) {
	if a, ok := f.appeals[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAppealRepo) List(filter repository.AppealFilter) ([]model.Appeal, error) {
	return []model.Appeal{}, nil
}
func (f *fakeAppealRepo) ApplyPatch(appeal *model.Appeal, changes repository.AppealChanges) error {
	f.patchCalls++
	if f.patchErr != nil {
		return f.patchErr
	}
	if changes.Status != nil {
		if f.statusUpdates == nil {
			f.statusUpdates = map[uint]string{}
		}
		f.statusUpdates[appeal.ID] = *changes.Status
	}
	if f.replaced == nil {
		f.replaced = map[bool][]model.Tag{}
	}
	if changes.PublicTags != nil {
		f.replaced[true] = *changes.PublicTags
	}
	if changes.InternalTags != nil {
		f.replaced[false] = *changes.InternalTags
	}
	return nil
}
func (f *fakeAppealRepo) AppendTag(appeal *model.Appeal, tag *model.Tag) error {
	f.appended = append(f.appended, *tag)
	return nil
}
func (f *fakeAppealRepo) RemoveTag(appeal *model.Appeal, tag *model.Tag) error {
	f.removed = append(f.removed, *tag)
	return nil
}
func (f *fakeAppealRepo) CreateComment(comment *model.Comment) error {
	comment.ID = uint(len(f.comments) + 1)
	f.comments = append(f.comments, *comment)
	return nil
}
func (f *fakeAppealRepo) ListComments(appealID uint) ([]model.Comment, error) {
	return append([]model.Comment(nil), f.comments...), nil
}
func (f *fakeAppealRepo) Count() (int64, error) { return f.count, nil }
func (f *fakeAppealRepo) CountByStatus() (map[string]int64, error) {
	return f.byStatus, nil
}
func (f *fakeAppealRepo) CountByTag(isPublic bool) (map[uint]int64, error) {
	return f.byTag[isPublic], nil
}
func (f *fakeAppealRepo) ResolutionSamples(statusKeys []string) ([]repository.ResolutionSample, error) {
	f.sampleFilter = statusKeys
	return f.samples, nil
}

// fakeBlacklist 记录被撤销的令牌。
type fakeBlacklist struct {
	revoked map[string]time.Duration
	err     error
}

func (f *fakeBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]time.Duration{}
	}
	f.revoked[token] = ttl
	return nil
}

func (f *fakeBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, ok := f.revoked[token]
	return ok, f.err
}
