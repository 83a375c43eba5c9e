package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// TagService 管理公开与内部两个标签分区，所有操作都限定在单个分区内。
type TagService interface {
	// ListAll 并行读取两个分区
	ListAll() (public []model.Tag, internal []model.Tag, err error)
	List(pool model.TagPool) ([]model.Tag, error)
	Create(pool model.TagPool, name, color string) (*model.Tag, error)
	Update(pool model.TagPool, id uint, name, color *string) (*model.Tag, error)
	Delete(pool model.TagPool, id uint) error
	Reorder(pool model.TagPool, ids []uint) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListAll() ([]model.Tag, []model.Tag, error) {
	if s.tagRepo == nil {
		return nil, nil, ErrInternal
	}

	var public, internal []model.Tag
	var g errgroup.Group
	g.Go(func() error {
		tags, err := s.tagRepo.FindByPool(true)
		public = tags
		return err
	})
	g.Go(func() error {
		tags, err := s.tagRepo.FindByPool(false)
		internal = tags
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return public, internal, nil
}

func (s *tagService) List(pool model.TagPool) ([]model.Tag, error) {
	if s.tagRepo == nil {
		return nil, ErrInternal
	}
	if !pool.Valid() {
		return nil, ErrInvalidInput
	}
	return s.tagRepo.FindByPool(pool.IsPublic())
}

// Create 新建标签，排在分区末尾；颜色为空时使用分区默认色。
func (s *tagService) Create(pool model.TagPool, name, color string) (*model.Tag, error) {
	if s.tagRepo == nil {
		return nil, ErrInternal
	}
	if !pool.Valid() {
		return nil, ErrInvalidInput
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = pool.DefaultColor()
	}
	if !hexColor.MatchString(color) {
		return nil, ErrInvalidInput
	}

	existing, err := s.tagRepo.FindByPool(pool.IsPublic())
	if err != nil {
		return nil, err
	}
	for _, t := range existing {
		if strings.EqualFold(t.Name, name) {
			return nil, ErrTagAlreadyExists
		}
	}

	order, err := s.tagRepo.NextOrder(pool.IsPublic())
	if err != nil {
		return nil, err
	}
	tag := &model.Tag{
		Name:     name,
		Color:    color,
		IsPublic: pool.IsPublic(),
		Order:    order,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) findInPool(pool model.TagPool, id uint) (*model.Tag, error) {
	if s.tagRepo == nil {
		return nil, ErrInternal
	}
	if !pool.Valid() || id == 0 {
		return nil, ErrInvalidInput
	}
	tag, err := s.tagRepo.FindByID(id, pool.IsPublic())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// Update 只修改名称和颜色，分区不变。
func (s *tagService) Update(pool model.TagPool, id uint, name, color *string) (*model.Tag, error) {
	tag, err := s.findInPool(pool, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		tag.Name = trimmed
	}
	if color != nil {
		trimmed := strings.TrimSpace(*color)
		if !hexColor.MatchString(trimmed) {
			return nil, ErrInvalidInput
		}
		tag.Color = trimmed
	}

	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(pool model.TagPool, id uint) error {
	if s.tagRepo == nil {
		return ErrInternal
	}
	if !pool.Valid() || id == 0 {
		return ErrInvalidInput
	}
	if err := s.tagRepo.Delete(id, pool.IsPublic()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return nil
}

// Reorder 要求 ids 恰好是该分区的全部标签。
func (s *tagService) Reorder(pool model.TagPool, ids []uint) error {
	if s.tagRepo == nil {
		return ErrInternal
	}
	if !pool.Valid() {
		return ErrInvalidInput
	}

	tags, err := s.tagRepo.FindByPool(pool.IsPublic())
	if err != nil {
		return err
	}
	current := make(map[uint]int, len(tags))
	for _, t := range tags {
		current[t.ID] = t.Order
	}
	if err := ordering.Validate(ids, current); err != nil {
		log.Warnf("TagService.Reorder(%s): %v", pool, err)
		return ErrInvalidReorder
	}
	return s.tagRepo.UpdateOrders(ordering.Diff(ids, current))
}
