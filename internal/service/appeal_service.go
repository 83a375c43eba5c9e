package service

import (
	"errors"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"gorm.io/gorm"
)

// AppealInput 是公开表单提交的诉求。
type AppealInput struct {
	IsAnonymous bool
	AuthorName  *string
	Email       *string
	Phone       *string
	CategoryID  *uint
	Text        string
}

// AppealPatch 是后台对诉求的修改，nil 表示不修改。
// 标签 id 列表是整体替换。
type AppealPatch struct {
	Status         *string
	PublicTagIDs   *[]uint
	InternalTagIDs *[]uint
}

type AppealService interface {
	Create(input AppealInput) (*model.Appeal, error)
	List(filter repository.AppealFilter) ([]model.Appeal, error)
	Get(id uint) (*model.Appeal, error)
	Update(id uint, patch AppealPatch) (*model.Appeal, error)
	AttachTag(appealID, tagID uint, pool model.TagPool) (*model.Appeal, error)
	DetachTag(appealID, tagID uint, pool model.TagPool) (*model.Appeal, error)

	AddComment(appealID, userID uint, text string, isInternal bool) (*model.Comment, error)
	ListComments(appealID uint) ([]model.Comment, error)
}

type appealService struct {
	appealRepo   repository.AppealRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	statusRepo   repository.StatusRepository
}

func NewAppealService(
	appealRepo repository.AppealRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	statusRepo repository.StatusRepository,
) AppealService {
	return &appealService{
		appealRepo:   appealRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		statusRepo:   statusRepo,
	}
}

// Create 保存新诉求，初始状态取排序第一的状态。
// 匿名诉求不保存任何联系方式。
func (s *appealService) Create(input AppealInput) (*model.Appeal, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	appeal := &model.Appeal{
		IsAnonymous: input.IsAnonymous,
		Text:        text,
	}
	if !input.IsAnonymous {
		email := normalizeOptional(input.Email)
		if email == nil {
			return nil, ErrEmailRequired
		}
		if !strings.Contains(*email, "@") {
			return nil, ErrInvalidInput
		}
		appeal.Email = email
		appeal.AuthorName = normalizeOptional(input.AuthorName)
		appeal.Phone = normalizeOptional(input.Phone)
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		appeal.CategoryID = input.CategoryID
	}

	status, err := s.initialStatus()
	if err != nil {
		return nil, err
	}
	appeal.Status = status

	if err := s.appealRepo.Create(appeal); err != nil {
		return nil, err
	}
	log.Infow("appeal created", "appeal_id", appeal.ID, "anonymous", appeal.IsAnonymous, "status", appeal.Status)
	return appeal, nil
}

func (s *appealService) initialStatus() (string, error) {
	statuses, err := s.statusRepo.FindAll()
	if err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return model.StatusNew, nil
	}
	return statuses[0].StatusKey, nil
}

func (s *appealService) List(filter repository.AppealFilter) ([]model.Appeal, error) {
	if filter.Skip < 0 || filter.Limit < 0 {
		return nil, ErrInvalidInput
	}
	return s.appealRepo.List(filter)
}

func (s *appealService) Get(id uint) (*model.Appeal, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	appeal, err := s.appealRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppealNotFound
		}
		return nil, err
	}
	if appeal == nil {
		return nil, ErrAppealNotFound
	}
	return appeal, nil
}

// Update 修改状态和标签。状态之间没有流转限制，只要求目标状态存在。
// 所有输入先校验完，再在一个事务里写入，校验失败时什么都不改。
func (s *appealService) Update(id uint, patch AppealPatch) (*model.Appeal, error) {
	appeal, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var changes repository.AppealChanges
	if patch.Status != nil && *patch.Status != appeal.Status {
		if _, err := s.statusRepo.FindByKey(*patch.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStatusNotFound
			}
			return nil, err
		}
		changes.Status = patch.Status
	}
	if patch.PublicTagIDs != nil {
		tags, err := s.resolveTags(true, *patch.PublicTagIDs)
		if err != nil {
			return nil, err
		}
		changes.PublicTags = &tags
	}
	if patch.InternalTagIDs != nil {
		tags, err := s.resolveTags(false, *patch.InternalTagIDs)
		if err != nil {
			return nil, err
		}
		changes.InternalTags = &tags
	}

	if changes.Status == nil && changes.PublicTags == nil && changes.InternalTags == nil {
		return appeal, nil
	}
	if err := s.appealRepo.ApplyPatch(appeal, changes); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// resolveTags 要求所有 id 都属于目标分区，防止把内部标签挂到公开标签上。
func (s *appealService) resolveTags(isPublic bool, ids []uint) ([]model.Tag, error) {
	ids = dedupeIDs(ids)
	tags, err := s.tagRepo.FindByIDs(ids, isPublic)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *appealService) findTag(tagID uint, pool model.TagPool) (*model.Tag, error) {
	if !pool.Valid() || tagID == 0 {
		return nil, ErrInvalidInput
	}
	tag, err := s.tagRepo.FindByID(tagID, pool.IsPublic())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *appealService) AttachTag(appealID, tagID uint, pool model.TagPool) (*model.Appeal, error) {
	appeal, err := s.Get(appealID)
	if err != nil {
		return nil, err
	}
	tag, err := s.findTag(tagID, pool)
	if err != nil {
		return nil, err
	}
	if err := s.appealRepo.AppendTag(appeal, tag); err != nil {
		return nil, err
	}
	return s.Get(appealID)
}

func (s *appealService) DetachTag(appealID, tagID uint, pool model.TagPool) (*model.Appeal, error) {
	appeal, err := s.Get(appealID)
	if err != nil {
		return nil, err
	}
	tag, err := s.findTag(tagID, pool)
	if err != nil {
		return nil, err
	}
	if err := s.appealRepo.RemoveTag(appeal, tag); err != nil {
		return nil, err
	}
	return s.Get(appealID)
}

func (s *appealService) AddComment(appealID, userID uint, text string, isInternal bool) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" || userID == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.Get(appealID); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		AppealID:   appealID,
		UserID:     userID,
		Text:       text,
		IsInternal: isInternal,
	}
	if err := s.appealRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *appealService) ListComments(appealID uint) ([]model.Comment, error) {
	if _, err := s.Get(appealID); err != nil {
		return nil, err
	}
	return s.appealRepo.ListComments(appealID)
}
