package database

import (
	"fmt"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/pkg/hash"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"gorm.io/gorm"
)

type seedCategory struct {
	name     string
	children []string
}

var defaultCategories = []seedCategory{
	{"Жилищно-коммунальное хозяйство", []string{"Ремонт и содержание домов", "Теплоснабжение", "Водоснабжение"}},
	{"Транспорт и дороги", []string{"Общественный транспорт", "Ремонт дорог", "Парковки"}},
	{"Образование", nil},
	{"Здравоохранение", nil},
	{"Экология", nil},
	{"Благоустройство", nil},
	{"Социальная защита", nil},
	{"Другое", nil},
}

var defaultPublicTags = []model.Tag{
	{Name: "Новое", Color: "#00C9C8"},
	{Name: "В работе", Color: "#FFA500"},
	{Name: "Решено", Color: "#22C55E"},
	{Name: "Отклонено", Color: "#EF4444"},
}

var defaultInternalTags = []model.Tag{
	{Name: "Срочно", Color: "#DC2626"},
	{Name: "Требует проверки", Color: "#F59E0B"},
	{Name: "Передано в департамент", Color: "#3B82F6"},
	{Name: "Дубликат", Color: "#6B7280"},
	{Name: "Важное", Color: "#8B5CF6"},
}

// DefaultStatuses 是四个系统状态，Seed 写入，也被测试复用。
func DefaultStatuses() []model.StatusConfig {
	desc := func(s string) *string { return &s }
	return []model.StatusConfig{
		{StatusKey: model.StatusNew, Name: "Новое", Color: "#3B82F6", Description: desc("Обращение только поступило"), Order: 0, IsSystem: true},
		{StatusKey: model.StatusInProgress, Name: "В работе", Color: "#F59E0B", Description: desc("Обращение находится в обработке"), Order: 1, IsSystem: true},
		{StatusKey: model.StatusResolved, Name: "Решено", Color: "#10B981", Description: desc("Обращение успешно обработано"), Order: 2, IsSystem: true},
		{StatusKey: model.StatusRejected, Name: "Отклонено", Color: "#EF4444", Description: desc("Обращение отклонено"), Order: 3, IsSystem: true},
	}
}

// Seed 在表为空时写入默认账号、分类树、两类标签和系统状态。
// 每一类数据单独判断，已存在的数据不会被覆盖。
func Seed(db *gorm.DB, adminPassword, moderatorPassword string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedUser(tx, "admin", "admin@novielyudi.ru", adminPassword, model.RoleAdmin); err != nil {
			return err
		}
		if err := seedUser(tx, "moderator", "moderator@novielyudi.ru", moderatorPassword, model.RoleModerator); err != nil {
			return err
		}
		if err := seedCategories(tx); err != nil {
			return err
		}
		if err := seedTags(tx, true, defaultPublicTags); err != nil {
			return err
		}
		if err := seedTags(tx, false, defaultInternalTags); err != nil {
			return err
		}
		return seedStatuses(tx)
	})
}

func seedUser(tx *gorm.DB, username, email, password, role string) error {
	var count int64
	if err := tx.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hashed, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed user %s: %w", username, err)
	}
	if err := tx.Create(&model.User{Username: username, Email: email, Password: hashed, Role: role, IsActive: true}).Error; err != nil {
		return err
	}
	log.Infow("Seeded user", "username", username, "role", role)
	return nil
}

func seedCategories(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, root := range defaultCategories {
		parent := model.Category{Name: root.name, Order: i}
		if err := tx.Create(&parent).Error; err != nil {
			return err
		}
		for j, name := range root.children {
			child := model.Category{Name: name, ParentID: &parent.ID, Order: j}
			if err := tx.Create(&child).Error; err != nil {
				return err
			}
		}
	}
	log.Info("Seeded categories")
	return nil
}

func seedTags(tx *gorm.DB, isPublic bool, tags []model.Tag) error {
	var count int64
	if err := tx.Model(&model.Tag{}).Where("is_public = ?", isPublic).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, tag := range tags {
		tag.IsPublic = isPublic
		tag.Order = i
		if err := tx.Create(&tag).Error; err != nil {
			return err
		}
	}
	log.Infow("Seeded tags", "is_public", isPublic, "count", len(tags))
	return nil
}

func seedStatuses(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.StatusConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	statuses := DefaultStatuses()
	if err := tx.Create(&statuses).Error; err != nil {
		return err
	}
	log.Info("Seeded system statuses")
	return nil
}
