package repository

import (
	"fmt"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"

	"gorm.io/gorm"
)

type StatusRepository interface {
	Create(status *model.StatusConfig) error
	FindAll() ([]model.StatusConfig, error)
	FindByID(id uint) (*model.StatusConfig, error)
	FindByKey(key string) (*model.StatusConfig, error)
	NextOrder() (int, error)
	// Update 只更新 name、color、description；status_key 和 is_system 创建后不变。
	Update(status *model.StatusConfig) error
	UpdateOrders(changes []ordering.Change) error
	Delete(id uint) error
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(status *model.StatusConfig) error {
	if status == nil {
		return fmt.Errorf("status is nil")
	}
	return r.db.Create(status).Error
}

func (r *statusRepository) FindAll() ([]model.StatusConfig, error) {
	var statuses []model.StatusConfig
	if err := r.db.Order("`order` ASC").Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *statusRepository) FindByID(id uint) (*model.StatusConfig, error) {
	var status model.StatusConfig
	if err := r.db.Where("id = ?", id).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) FindByKey(key string) (*model.StatusConfig, error) {
	var status model.StatusConfig
	if err := r.db.Where("status_key = ?", key).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) NextOrder() (int, error) {
	return nextOrder(r.db.Model(&model.StatusConfig{}))
}

func (r *statusRepository) Update(status *model.StatusConfig) error {
	if status == nil {
		return fmt.Errorf("status is nil")
	}
	tx := r.db.Model(&model.StatusConfig{}).
		Where("id = ?", status.ID).
		Select("name", "color", "description").
		Updates(status)
	return tx.Error
}

func (r *statusRepository) UpdateOrders(changes []ordering.Change) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return applyOrderChanges(tx, &model.StatusConfig{}, changes)
	})
}

// Delete 只负责删除行；系统状态的保护在 service 层判断。
func (r *statusRepository) Delete(id uint) error {
	res := r.db.Where("id = ?", id).Delete(&model.StatusConfig{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
