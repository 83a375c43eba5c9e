package model

import "time"

// 标签默认颜色，与前端保持一致。
const (
	DefaultPublicTagColor   = "#00C9C8"
	DefaultInternalTagColor = "#6B7280"
)

// Tag 对应 tags 表。公开标签与内部标签共用一张表，用 IsPublic 分区：
// 两个分区互不相交，Order 只在同一分区内唯一，标签创建后不会换分区。
type Tag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_tag_pool_name" json:"name"`
	Color     string    `gorm:"type:varchar(16);not null" json:"color"`
	IsPublic  bool      `gorm:"not null;uniqueIndex:idx_tag_pool_name" json:"is_public"`
	Order     int       `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// TagPool 标识标签所在的分区，对应路由里的 /tags/public 与 /tags/internal。
type TagPool string

const (
	TagPoolPublic   TagPool = "public"
	TagPoolInternal TagPool = "internal"
)

// IsPublic 返回该分区对应的 is_public 取值。
func (p TagPool) IsPublic() bool {
	return p == TagPoolPublic
}

// Valid 判断分区名是否合法。
func (p TagPool) Valid() bool {
	return p == TagPoolPublic || p == TagPoolInternal
}

// DefaultColor 返回该分区新建标签的默认颜色。
func (p TagPool) DefaultColor() string {
	if p.IsPublic() {
		return DefaultPublicTagColor
	}
	return DefaultInternalTagColor
}
