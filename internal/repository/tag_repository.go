package repository

import (
	"fmt"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"

	"gorm.io/gorm"
)

// TagRepository 定义标签的持久化操作。
// 所有按分区的方法都带 isPublic，保证操作不会越过公开/内部的边界。
type TagRepository interface {
	Create(tag *model.Tag) error
	FindAll() ([]model.Tag, error)
	FindByPool(isPublic bool) ([]model.Tag, error)
	FindByID(id uint, isPublic bool) (*model.Tag, error)
	FindByIDs(ids []uint, isPublic bool) ([]model.Tag, error)
	NextOrder(isPublic bool) (int, error)
	// Update 只更新 name 和 color；is_public 永远不变。
	Update(tag *model.Tag) error
	UpdateOrders(changes []ordering.Change) error
	Delete(id uint, isPublic bool) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	return r.db.Create(tag).Error
}

func (r *tagRepository) FindAll() ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Order("is_public DESC").Order("`order` ASC").Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByPool(isPublic bool) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Where("is_public = ?", isPublic).
		Order("`order` ASC").Order("id ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(id uint, isPublic bool) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("id = ? AND is_public = ?", id, isPublic).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDs(ids []uint, isPublic bool) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.Where("id IN ? AND is_public = ?", ids, isPublic).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) NextOrder(isPublic bool) (int, error) {
	return nextOrder(r.db.Model(&model.Tag{}).Where("is_public = ?", isPublic))
}

func (r *tagRepository) Update(tag *model.Tag) error {
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	if tag.ID == 0 {
		return fmt.Errorf("tag id is required")
	}

	tx := r.db.Model(&model.Tag{}).
		Where("id = ? AND is_public = ?", tag.ID, tag.IsPublic).
		Select("name", "color").
		Updates(tag)
	return tx.Error
}

func (r *tagRepository) UpdateOrders(changes []ordering.Change) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return applyOrderChanges(tx, &model.Tag{}, changes)
	})
}

// Delete 先清掉诉求上的关联再删除标签本身。
func (r *tagRepository) Delete(id uint, isPublic bool) error {
	joinTable := "appeal_internal_tags"
	if isPublic {
		joinTable = "appeal_public_tags"
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM `"+joinTable+"` WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND is_public = ?", id, isPublic).Delete(&model.Tag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
