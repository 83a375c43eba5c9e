package service

import (
	"errors"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"
	"github.com/NabievDev/NewPeople-sub000/pkg/slug"

	"gorm.io/gorm"
)

// StatusService 管理诉求状态配置。
// status_key 创建后不可变；系统状态不可删除。
type StatusService interface {
	List() ([]model.StatusConfig, error)
	// Create 的 statusKey 为空时由 name 生成。
	Create(statusKey, name, color string, description *string) (*model.StatusConfig, error)
	Update(id uint, name, color, description *string) (*model.StatusConfig, error)
	Delete(id uint) error
	Reorder(ids []uint) error
}

type statusService struct {
	statusRepo repository.StatusRepository
}

func NewStatusService(statusRepo repository.StatusRepository) StatusService {
	return &statusService{statusRepo: statusRepo}
}

func (s *statusService) List() ([]model.StatusConfig, error) {
	if s.statusRepo == nil {
		return nil, ErrInternal
	}
	return s.statusRepo.FindAll()
}

func (s *statusService) Create(statusKey, name, color string, description *string) (*model.StatusConfig, error) {
	if s.statusRepo == nil {
		return nil, ErrInternal
	}
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if name == "" || !hexColor.MatchString(color) {
		return nil, ErrInvalidInput
	}
	key := slug.StatusKey(statusKey)
	if key == "" {
		key = slug.StatusKey(name)
	}
	if key == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.statusRepo.FindByKey(key); err == nil {
		return nil, ErrStatusAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order, err := s.statusRepo.NextOrder()
	if err != nil {
		return nil, err
	}
	status := &model.StatusConfig{
		StatusKey:   key,
		Name:        name,
		Color:       color,
		Description: normalizeOptional(description),
		Order:       order,
		IsSystem:    false,
	}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *statusService) findByID(id uint) (*model.StatusConfig, error) {
	if s.statusRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	if status == nil {
		return nil, ErrStatusNotFound
	}
	return status, nil
}

func (s *statusService) Update(id uint, name, color, description *string) (*model.StatusConfig, error) {
	status, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		status.Name = trimmed
	}
	if color != nil {
		trimmed := strings.TrimSpace(*color)
		if !hexColor.MatchString(trimmed) {
			return nil, ErrInvalidInput
		}
		status.Color = trimmed
	}
	if description != nil {
		status.Description = normalizeOptional(description)
	}

	if err := s.statusRepo.Update(status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *statusService) Delete(id uint) error {
	status, err := s.findByID(id)
	if err != nil {
		return err
	}
	if status.IsSystem {
		return ErrSystemStatus
	}
	if err := s.statusRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStatusNotFound
		}
		return err
	}
	log.Infow("status deleted", "status_id", id, "status_key", status.StatusKey)
	return nil
}

func (s *statusService) Reorder(ids []uint) error {
	if s.statusRepo == nil {
		return ErrInternal
	}
	statuses, err := s.statusRepo.FindAll()
	if err != nil {
		return err
	}
	current := make(map[uint]int, len(statuses))
	for _, st := range statuses {
		current[st.ID] = st.Order
	}
	if err := ordering.Validate(ids, current); err != nil {
		log.Warnf("StatusService.Reorder: %v", err)
		return ErrInvalidReorder
	}
	return s.statusRepo.UpdateOrders(ordering.Diff(ids, current))
}
