package model

import "time"

// Category 对应 categories 表，表示公民诉求的分类。
// 分类是树形结构：ParentID 为空表示根分类，Order 在同一 ParentID 的兄弟节点之间唯一。
type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:varchar(500)" json:"description,omitempty"`
	ParentID    *uint     `gorm:"index" json:"parent_id"`
	Order       int       `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CategoryNode 是分类的树形节点，GET /api/categories 直接返回它。
// 与 Category 的区别：多了 Subcategories，且同层按 Order 升序排列。
type CategoryNode struct {
	Category
	Subcategories []*CategoryNode `json:"subcategories"`
}

// TableName 指定 GORM 使用的表名
func (Category) TableName() string {
	return "categories"
}
