package model

// StatusConfig 对应 appeal_statuses 表，是诉求状态的数据化定义。
// StatusKey 在创建时由名称生成，之后不可修改；IsSystem 的状态永远不能删除。
type StatusConfig struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	StatusKey   string  `gorm:"type:varchar(100);not null;uniqueIndex" json:"status_key"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Color       string  `gorm:"type:varchar(16);not null" json:"color"`
	Description *string `gorm:"type:varchar(500)" json:"description,omitempty"`
	Order       int     `gorm:"column:order;not null;default:0" json:"order"`
	IsSystem    bool    `gorm:"not null;default:false" json:"is_system"`
}

func (StatusConfig) TableName() string {
	return "appeal_statuses"
}

// 内置的四个系统状态键。
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)
