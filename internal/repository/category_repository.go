package repository

import (
	"errors"
	"fmt"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"

	"gorm.io/gorm"
)

var (
	// ErrCategoryHasChildren 表示分类下仍有子分类，保护删除时拒绝。
	ErrCategoryHasChildren = errors.New("category has children")
)

// CategoryRepository 定义分类树的持久化操作。
// 分类通过 ParentID 组成树，Order 只在同一父节点下的兄弟之间有意义。
type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	// FindByParentID 返回某个父节点下的直接子分类；parentID 为 nil 表示根分类。
	FindByParentID(parentID *uint) ([]model.Category, error)
	// NextOrder 返回兄弟分组里下一个可用的 order（当前最大值 + 1，空分组为 0）。
	NextOrder(parentID *uint) (int, error)
	// Update 更新 name、description、parent_id、order 四个字段。
	Update(category *model.Category) error
	// UpdateOrders 在一个事务里写入重排结果，只更新传入的行。
	UpdateOrders(changes []ordering.Change) error

	// Delete 保护删除：有子分类时返回 ErrCategoryHasChildren。
	Delete(id uint) error
	// DeleteCascade 级联删除：当前分类及其所有后代一起删除。
	DeleteCascade(id uint) error
	// DeleteAndReparentChildren 重挂删除：子分类挂到当前分类的父节点后再删除当前分类。
	//   删除前：A → B → C, D
	//   删除后：A → C, D
	DeleteAndReparentChildren(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("`order` ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	if id == 0 {
		return nil, fmt.Errorf("category id is required")
	}
	var category model.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func siblingScope(parentID *uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if parentID == nil {
			return tx.Where("parent_id IS NULL")
		}
		return tx.Where("parent_id = ?", *parentID)
	}
}

func (r *categoryRepository) FindByParentID(parentID *uint) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Scopes(siblingScope(parentID)).
		Order("`order` ASC").Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) NextOrder(parentID *uint) (int, error) {
	return nextOrder(r.db.Model(&model.Category{}).Scopes(siblingScope(parentID)))
}

// nextOrder 在已经限定好分组的查询上计算 MAX(order)+1。
// 删除会留下空位，用最大值而不是行数才能保证新行不与已有行冲突。
func nextOrder(scoped *gorm.DB) (int, error) {
	var maxOrder int
	if err := scoped.Select("COALESCE(MAX(`order`), -1)").Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// Update 使用 Select 限定更新字段，避免零值覆盖。
// MySQL 对“值没变”的更新返回 0 行，所以存在性由 service 层先查再改来保证。
func (r *categoryRepository) Update(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	if category.ID == 0 {
		return fmt.Errorf("category id is required")
	}

	tx := r.db.Model(&model.Category{}).
		Where("id = ?", category.ID).
		Select("name", "description", "parent_id", "order").
		Updates(category)
	return tx.Error
}

func (r *categoryRepository) UpdateOrders(changes []ordering.Change) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return applyOrderChanges(tx, &model.Category{}, changes)
	})
}

// applyOrderChanges 是分类、标签、状态三类重排共用的逐行更新。
func applyOrderChanges(tx *gorm.DB, table interface{}, changes []ordering.Change) error {
	for _, change := range changes {
		if err := tx.Model(table).Where("id = ?", change.ID).Update("order", change.Order).Error; err != nil {
			return err
		}
	}
	return nil
}

// detachAppeals 把引用这些分类的诉求置为无分类。
func detachAppeals(tx *gorm.DB, categoryIDs []uint) error {
	return tx.Model(&model.Appeal{}).
		Where("category_id IN ?", categoryIDs).
		Update("category_id", nil).Error
}

func (r *categoryRepository) Delete(id uint) error {
	if id == 0 {
		return fmt.Errorf("category id is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Category
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		var childCount int64
		if err := tx.Model(&model.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
			return err
		}
		if childCount > 0 {
			return ErrCategoryHasChildren
		}

		if err := detachAppeals(tx, []uint{id}); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteCascade 先按层收集所有后代 id，再一次性删除。
// 树的深度不受限制，按层查询可以避免递归 SQL。
func (r *categoryRepository) DeleteCascade(id uint) error {
	if id == 0 {
		return fmt.Errorf("category id is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Category
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		all := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&model.Category{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			all = append(all, children...)
			frontier = children
		}

		if err := detachAppeals(tx, all); err != nil {
			return err
		}
		return tx.Where("id IN ?", all).Delete(&model.Category{}).Error
	})
}

// DeleteAndReparentChildren 重挂删除，重挂后的子分类排在新兄弟之后，保持 order 不冲突。
func (r *categoryRepository) DeleteAndReparentChildren(id uint) error {
	if id == 0 {
		return fmt.Errorf("category id is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Category
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		var children []model.Category
		if err := tx.Where("parent_id = ?", id).Order("`order` ASC").Order("id ASC").Find(&children).Error; err != nil {
			return err
		}

		next, err := nextOrder(tx.Model(&model.Category{}).
			Scopes(siblingScope(current.ParentID)).
			Where("id <> ?", id))
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := tx.Model(&model.Category{}).Where("id = ?", child.ID).
				Updates(map[string]interface{}{"parent_id": current.ParentID, "order": next}).Error; err != nil {
				return err
			}
			next++
		}

		if err := detachAppeals(tx, []uint{id}); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
