package apiclient

import "time"

// Pool 是标签分区，对应 /tags/public 与 /tags/internal。
type Pool string

const (
	PoolPublic   Pool = "public"
	PoolInternal Pool = "internal"
)

// 客户端侧的 id 使用 int64：控制台给乐观插入的占位记录分配负数临时 id。

type Category struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	ParentID      *int64     `json:"parent_id"`
	Order         int        `json:"order"`
	Subcategories []Category `json:"subcategories,omitempty"`
}

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsPublic  bool      `json:"is_public"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// Pool 返回标签所在分区。
func (t Tag) Pool() Pool {
	if t.IsPublic {
		return PoolPublic
	}
	return PoolInternal
}

type Status struct {
	ID          int64   `json:"id"`
	StatusKey   string  `json:"status_key"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
	Order       int     `json:"order"`
	IsSystem    bool    `json:"is_system"`
}

type Appeal struct {
	ID           int64     `json:"id"`
	IsAnonymous  bool      `json:"is_anonymous"`
	AuthorName   *string   `json:"author_name"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	CategoryID   *int64    `json:"category_id"`
	Category     *Category `json:"category,omitempty"`
	Text         string    `json:"text"`
	Status       string    `json:"status"`
	PublicTags   []Tag     `json:"public_tags"`
	InternalTags []Tag     `json:"internal_tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Comment struct {
	ID         int64     `json:"id"`
	AppealID   int64     `json:"appeal_id"`
	UserID     int64     `json:"user_id"`
	User       *User     `json:"user,omitempty"`
	Text       string    `json:"text"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

type StatusCount struct {
	StatusKey string `json:"status_key"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

type TagCount struct {
	TagID    int64  `json:"tag_id"`
	TagName  string `json:"tag_name"`
	Count    int64  `json:"count"`
	IsPublic bool   `json:"is_public"`
}

type ResolutionTime struct {
	Weeks   int `json:"weeks"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type Statistics struct {
	TotalAppeals          int64           `json:"total_appeals"`
	ByStatus              []StatusCount   `json:"by_status"`
	PublicTagStats        []TagCount      `json:"public_tag_stats"`
	InternalTagStats      []TagCount      `json:"internal_tag_stats"`
	TotalModerators       int64           `json:"total_moderators"`
	AverageResolutionTime *ResolutionTime `json:"average_resolution_time"`
}

// 请求体

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
}

type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type TagPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type StatusInput struct {
	StatusKey   string  `json:"status_key,omitempty"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
}

// StatusPatch 不含 status_key：键创建后不可修改。
type StatusPatch struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AppealInput struct {
	IsAnonymous bool    `json:"is_anonymous"`
	AuthorName  *string `json:"author_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	Text        string  `json:"text"`
}

type AppealPatch struct {
	Status         *string  `json:"status,omitempty"`
	PublicTagIDs   *[]int64 `json:"public_tag_ids,omitempty"`
	InternalTagIDs *[]int64 `json:"internal_tag_ids,omitempty"`
}

// AppealQuery 是列表筛选条件，零值字段不发送。
type AppealQuery struct {
	InternalTagID int64
	Status        string
	Skip          int
	Limit         int
}

type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}
