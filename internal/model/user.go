package model

import "time"

// 用户角色
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// User 对应数据库中 users 表，只有管理员和版主两类后台用户。
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email     string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // Hide password in json output
	Role      string    `gorm:"type:enum('admin','moderator');default:'moderator'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定 GORM 使用的表名
func (User) TableName() string {
	return "users"
}
