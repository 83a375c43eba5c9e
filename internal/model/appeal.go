package model

import "time"

// Appeal 对应 appeals 表，即一条公民诉求。
// Status 保存 StatusConfig.StatusKey；状态之间没有流转图，任意状态可以改成任意状态。
type Appeal struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IsAnonymous  bool      `gorm:"not null;default:false" json:"is_anonymous"`
	AuthorName   *string   `gorm:"type:varchar(255)" json:"author_name"`
	Email        *string   `gorm:"type:varchar(255)" json:"email"`
	Phone        *string   `gorm:"type:varchar(64)" json:"phone"`
	CategoryID   *uint     `gorm:"index" json:"category_id"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	Status       string    `gorm:"type:varchar(100);not null;index" json:"status"`
	PublicTags   []Tag     `gorm:"many2many:appeal_public_tags" json:"public_tags"`
	InternalTags []Tag     `gorm:"many2many:appeal_internal_tags" json:"internal_tags"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appeal) TableName() string {
	return "appeals"
}

// Comment 是版主在诉求下留下的评论，IsInternal 为 true 时只对后台可见。
type Comment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppealID   uint      `gorm:"not null;index" json:"appeal_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsInternal bool      `gorm:"not null;default:false" json:"is_internal"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
