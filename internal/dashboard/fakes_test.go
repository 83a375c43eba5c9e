package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"
)

var errRemote = errors.New("remote failure")

// fakeAPI 模拟服务端：保存权威数据，记录每次调用。
// xxxErr 非空时对应调用直接失败，且不修改服务端数据。
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	categories []apiclient.Category
	tags       map[apiclient.Pool][]apiclient.Tag
	statuses   []apiclient.Status
	nextID     int64

	categoriesErr        error
	createCategoryErr    error
	renameCategoryErr    error
	deleteCategoryErr    error
	reorderCategoriesErr error

	createTagFn    func(pool apiclient.Pool, in apiclient.TagInput) (*apiclient.Tag, error)
	updateTagErr   error
	deleteTagErr   error
	reorderTagsErr error

	createStatusErr    error
	updateStatusErr    error
	deleteStatusErr    error
	reorderStatusesErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{tags: map[apiclient.Pool][]apiclient.Tag{}, nextID: 100}
}

func (f *fakeAPI) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeAPI) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeAPI) Categories(ctx context.Context) ([]apiclient.Category, error) {
	f.record("Categories")
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return slices.Clone(f.categories), nil
}

func (f *fakeAPI) CreateCategory(ctx context.Context, in apiclient.CategoryInput) (*apiclient.Category, error) {
	f.record("CreateCategory %s", in.Name)
	if f.createCategoryErr != nil {
		return nil, f.createCategoryErr
	}
	f.nextID++
	c := apiclient.Category{ID: f.nextID, Name: in.Name, ParentID: in.ParentID}
	if in.ParentID == nil {
		c.Order = len(f.categories)
		f.categories = append(f.categories, c)
		return &c, nil
	}
	for i := range f.categories {
		if f.categories[i].ID == *in.ParentID {
			c.Order = len(f.categories[i].Subcategories)
			f.categories[i].Subcategories = append(f.categories[i].Subcategories, c)
		}
	}
	return &c, nil
}

func (f *fakeAPI) RenameCategory(ctx context.Context, id int64, name string) (*apiclient.Category, error) {
	f.record("RenameCategory %d %s", id, name)
	if f.renameCategoryErr != nil {
		return nil, f.renameCategoryErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = name
			return &f.categories[i], nil
		}
	}
	return &apiclient.Category{ID: id, Name: name}, nil
}

func (f *fakeAPI) DeleteCategory(ctx context.Context, id int64, strategy string) error {
	f.record("DeleteCategory %d", id)
	if f.deleteCategoryErr != nil {
		return f.deleteCategoryErr
	}
	f.categories = slices.DeleteFunc(f.categories, func(c apiclient.Category) bool { return c.ID == id })
	return nil
}

func (f *fakeAPI) ReorderCategories(ctx context.Context, parentID *int64, ids []int64) error {
	parent := "root"
	if parentID != nil {
		parent = fmt.Sprint(*parentID)
	}
	f.record("ReorderCategories %s %v", parent, ids)
	return f.reorderCategoriesErr
}

func (f *fakeAPI) Tags(ctx context.Context, pool apiclient.Pool) ([]apiclient.Tag, error) {
	f.record("Tags %s", pool)
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tags[pool]), nil
}

func (f *fakeAPI) CreateTag(ctx context.Context, pool apiclient.Pool, in apiclient.TagInput) (*apiclient.Tag, error) {
	f.record("CreateTag %s %s", pool, in.Name)
	if f.createTagFn != nil {
		return f.createTagFn(pool, in)
	}
	f.nextID++
	t := apiclient.Tag{ID: f.nextID, Name: in.Name, Color: in.Color, IsPublic: pool == apiclient.PoolPublic, Order: len(f.tags[pool])}
	f.tags[pool] = append(f.tags[pool], t)
	return &t, nil
}

func (f *fakeAPI) UpdateTag(ctx context.Context, pool apiclient.Pool, id int64, patch apiclient.TagPatch) (*apiclient.Tag, error) {
	f.record("UpdateTag %s %d", pool, id)
	if f.updateTagErr != nil {
		return nil, f.updateTagErr
	}
	for i, t := range f.tags[pool] {
		if t.ID == id {
			t.Name, t.Color = *patch.Name, *patch.Color
			f.tags[pool][i] = t
			return &t, nil
		}
	}
	return nil, &apiclient.Error{Status: 404, Message: "Tag not found"}
}

func (f *fakeAPI) DeleteTag(ctx context.Context, pool apiclient.Pool, id int64) error {
	f.record("DeleteTag %s %d", pool, id)
	return f.deleteTagErr
}

func (f *fakeAPI) ReorderTags(ctx context.Context, pool apiclient.Pool, ids []int64) error {
	f.record("ReorderTags %s %v", pool, ids)
	return f.reorderTagsErr
}

func (f *fakeAPI) Statuses(ctx context.Context) ([]apiclient.Status, error) {
	f.record("Statuses")
	return slices.Clone(f.statuses), nil
}

func (f *fakeAPI) CreateStatus(ctx context.Context, in apiclient.StatusInput) (*apiclient.Status, error) {
	f.record("CreateStatus %s", in.StatusKey)
	if f.createStatusErr != nil {
		return nil, f.createStatusErr
	}
	f.nextID++
	s := apiclient.Status{ID: f.nextID, StatusKey: in.StatusKey, Name: in.Name, Color: in.Color, Order: len(f.statuses)}
	f.statuses = append(f.statuses, s)
	return &s, nil
}

func (f *fakeAPI) UpdateStatus(ctx context.Context, id int64, patch apiclient.StatusPatch) (*apiclient.Status, error) {
	f.record("UpdateStatus %d", id)
	if f.updateStatusErr != nil {
		return nil, f.updateStatusErr
	}
	for i, s := range f.statuses {
		if s.ID == id {
			s.Name, s.Color, s.Description = *patch.Name, *patch.Color, patch.Description
			f.statuses[i] = s
			return &s, nil
		}
	}
	return nil, &apiclient.Error{Status: 404, Message: "Status not found"}
}

func (f *fakeAPI) DeleteStatus(ctx context.Context, id int64) error {
	f.record("DeleteStatus %d", id)
	return f.deleteStatusErr
}

func (f *fakeAPI) ReorderStatuses(ctx context.Context, ids []int64) error {
	f.record("ReorderStatuses %v", ids)
	return f.reorderStatusesErr
}

type fakePrompter struct {
	answer   bool
	confirms []string
	alerts   []string
}

func (p *fakePrompter) Confirm(message string) bool {
	p.confirms = append(p.confirms, message)
	return p.answer
}

func (p *fakePrompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}
