package repository

import (
	"fmt"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"

	"gorm.io/gorm"
)

// AppealFilter 是诉求列表的筛选条件，零值字段表示不过滤。
type AppealFilter struct {
	InternalTagID uint
	Status        string
	Skip          int
	Limit         int
}

// ResolutionSample 是一条已结案诉求的创建与最后更新时间。
type ResolutionSample struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppealChanges 是一次 PATCH 要落库的改动，nil 字段表示不修改。
type AppealChanges struct {
	Status       *string
	PublicTags   *[]model.Tag
	InternalTags *[]model.Tag
}

// AppealRepository 定义诉求、评论及统计查询。
type AppealRepository interface {
	Create(appeal *model.Appeal) error
	FindByID(id uint) (*model.Appeal, error)
	List(filter AppealFilter) ([]model.Appeal, error)
	// ApplyPatch 在同一个事务里写入状态并整体替换标签关联，要么全部成功要么全部回滚。
	ApplyPatch(appeal *model.Appeal, changes AppealChanges) error
	AppendTag(appeal *model.Appeal, tag *model.Tag) error
	RemoveTag(appeal *model.Appeal, tag *model.Tag) error

	CreateComment(comment *model.Comment) error
	ListComments(appealID uint) ([]model.Comment, error)

	Count() (int64, error)
	CountByStatus() (map[string]int64, error)
	CountByTag(isPublic bool) (map[uint]int64, error)
	ResolutionSamples(statusKeys []string) ([]ResolutionSample, error)
}

type appealRepository struct {
	db *gorm.DB
}

func NewAppealRepository(db *gorm.DB) AppealRepository {
	return &appealRepository{db: db}
}

func tagAssociation(isPublic bool) string {
	if isPublic {
		return "PublicTags"
	}
	return "InternalTags"
}

func (r *appealRepository) Create(appeal *model.Appeal) error {
	if appeal == nil {
		return fmt.Errorf("appeal is nil")
	}
	return r.db.Omit("PublicTags", "InternalTags", "Category").Create(appeal).Error
}

func (r *appealRepository) FindByID(id uint) (*model.Appeal, error) {
	var appeal model.Appeal
	if err := r.db.Preload("Category").
		Preload("PublicTags").
		Preload("InternalTags").
		Where("id = ?", id).
		First(&appeal).Error; err != nil {
		return nil, err
	}
	return &appeal, nil
}

func (r *appealRepository) List(filter AppealFilter) ([]model.Appeal, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	tx := r.db.Model(&model.Appeal{}).
		Preload("Category").
		Preload("PublicTags").
		Preload("InternalTags")
	if filter.InternalTagID != 0 {
		tx = tx.Where("id IN (?)", r.db.Table("appeal_internal_tags").
			Select("appeal_id").
			Where("tag_id = ?", filter.InternalTagID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}

	appeals := make([]model.Appeal, 0)
	if err := tx.Order("created_at DESC").Offset(skip).Limit(limit).Find(&appeals).Error; err != nil {
		return nil, err
	}
	return appeals, nil
}

func (r *appealRepository) ApplyPatch(appeal *model.Appeal, changes AppealChanges) error {
	if appeal == nil || appeal.ID == 0 {
		return fmt.Errorf("appeal is nil or has no id")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if changes.Status != nil {
			if err := tx.Model(&model.Appeal{}).Where("id = ?", appeal.ID).Update("status", *changes.Status).Error; err != nil {
				return err
			}
		}
		if changes.PublicTags != nil {
			if err := tx.Model(appeal).Association(tagAssociation(true)).Replace(*changes.PublicTags); err != nil {
				return err
			}
		}
		if changes.InternalTags != nil {
			if err := tx.Model(appeal).Association(tagAssociation(false)).Replace(*changes.InternalTags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *appealRepository) AppendTag(appeal *model.Appeal, tag *model.Tag) error {
	return r.db.Model(appeal).Association(tagAssociation(tag.IsPublic)).Append(tag)
}

func (r *appealRepository) RemoveTag(appeal *model.Appeal, tag *model.Tag) error {
	return r.db.Model(appeal).Association(tagAssociation(tag.IsPublic)).Delete(tag)
}

func (r *appealRepository) CreateComment(comment *model.Comment) error {
	if comment == nil {
		return fmt.Errorf("comment is nil")
	}
	return r.db.Omit("User").Create(comment).Error
}

func (r *appealRepository) ListComments(appealID uint) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	if err := r.db.Preload("User").
		Where("appeal_id = ?", appealID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *appealRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Appeal{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *appealRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.Model(&model.Appeal{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *appealRepository) CountByTag(isPublic bool) (map[uint]int64, error) {
	joinTable := "appeal_internal_tags"
	if isPublic {
		joinTable = "appeal_public_tags"
	}
	var rows []struct {
		TagID uint
		Total int64
	}
	if err := r.db.Table(joinTable).
		Select("tag_id, COUNT(*) AS total").
		Group("tag_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.TagID] = row.Total
	}
	return counts, nil
}

func (r *appealRepository) ResolutionSamples(statusKeys []string) ([]ResolutionSample, error) {
	samples := make([]ResolutionSample, 0)
	if len(statusKeys) == 0 {
		return samples, nil
	}
	if err := r.db.Model(&model.Appeal{}).
		Select("created_at, updated_at").
		Where("status IN ?", statusKeys).
		Scan(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}
