package model

// TagStatistics 是单个标签被多少条诉求引用。
type TagStatistics struct {
	TagID    uint   `json:"tag_id"`
	TagName  string `json:"tag_name"`
	Count    int64  `json:"count"`
	IsPublic bool   `json:"is_public"`
}

// StatusCount 是某个状态下的诉求数量。
type StatusCount struct {
	StatusKey string `json:"status_key"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

// ResolutionTime 是平均处理时长的拆分表示。
type ResolutionTime struct {
	Weeks   int `json:"weeks"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Statistics 是管理后台首页的统计数据。
type Statistics struct {
	TotalAppeals          int64           `json:"total_appeals"`
	ByStatus              []StatusCount   `json:"by_status"`
	PublicTagStats        []TagStatistics `json:"public_tag_stats"`
	InternalTagStats      []TagStatistics `json:"internal_tag_stats"`
	TotalModerators       int64           `json:"total_moderators"`
	AverageResolutionTime *ResolutionTime `json:"average_resolution_time"`
}
