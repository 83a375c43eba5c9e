// Package dashboard 是管理后台的状态层：分类树、两类标签、状态列表，
// 以及它们共用的乐观更新流程。网络访问通过 apiclient，交互确认通过 Prompter。
//
// 各个 registry 不支持并发调用，和单线程的界面事件循环一样使用即可。
package dashboard

import (
	"context"
	"errors"

	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"

	"golang.org/x/sync/errgroup"
)

var (
	ErrSystemStatus = errors.New("dashboard: system status cannot be deleted")
	ErrNotFound     = errors.New("dashboard: not found")
	ErrCancelled    = errors.New("dashboard: cancelled")
)

// Prompter 负责阻塞式的确认框和提示框。
type Prompter interface {
	Confirm(message string) bool
	Alert(message string)
}

type CategoryAPI interface {
	Categories(ctx context.Context) ([]apiclient.Category, error)
	CreateCategory(ctx context.Context, in apiclient.CategoryInput) (*apiclient.Category, error)
	RenameCategory(ctx context.Context, id int64, name string) (*apiclient.Category, error)
	DeleteCategory(ctx context.Context, id int64, strategy string) error
	ReorderCategories(ctx context.Context, parentID *int64, ids []int64) error
}

type TagAPI interface {
	Tags(ctx context.Context, pool apiclient.Pool) ([]apiclient.Tag, error)
	CreateTag(ctx context.Context, pool apiclient.Pool, in apiclient.TagInput) (*apiclient.Tag, error)
	UpdateTag(ctx context.Context, pool apiclient.Pool, id int64, patch apiclient.TagPatch) (*apiclient.Tag, error)
	DeleteTag(ctx context.Context, pool apiclient.Pool, id int64) error
	ReorderTags(ctx context.Context, pool apiclient.Pool, ids []int64) error
}

type StatusAPI interface {
	Statuses(ctx context.Context) ([]apiclient.Status, error)
	CreateStatus(ctx context.Context, in apiclient.StatusInput) (*apiclient.Status, error)
	UpdateStatus(ctx context.Context, id int64, patch apiclient.StatusPatch) (*apiclient.Status, error)
	DeleteStatus(ctx context.Context, id int64) error
	ReorderStatuses(ctx context.Context, ids []int64) error
}

// API 是控制台用到的全部接口，*apiclient.Client 满足它。
type API interface {
	CategoryAPI
	TagAPI
	StatusAPI
}

type Dashboard struct {
	Categories *CategoryTree
	Tags       *TagRegistry
	Statuses   *StatusRegistry
}

func New(api API, prompter Prompter) *Dashboard {
	return &Dashboard{
		Categories: NewCategoryTree(api, prompter),
		Tags:       NewTagRegistry(api, prompter),
		Statuses:   NewStatusRegistry(api, prompter),
	}
}

// Load 并行加载分类树、两类标签和状态列表，任一失败即返回。
func (d *Dashboard) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Categories.Load(ctx) })
	g.Go(func() error { return d.Tags.Load(ctx) })
	g.Go(func() error { return d.Statuses.Load(ctx) })
	return g.Wait()
}
