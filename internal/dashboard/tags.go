package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"

	"golang.org/x/sync/errgroup"
)

// TagRegistry 把公开标签和内部标签放在同一个列表里：公开标签在前，内部标签在后，
// 每个分区内按 order 升序。标签不会在分区之间移动。
type TagRegistry struct {
	api      TagAPI
	prompter Prompter

	tags   []apiclient.Tag
	lastID int64
}

func NewTagRegistry(api TagAPI, prompter Prompter) *TagRegistry {
	return &TagRegistry{api: api, prompter: prompter}
}

// Load 并行拉取两个分区。
func (r *TagRegistry) Load(ctx context.Context) error {
	var public, internal []apiclient.Tag
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		public, err = r.api.Tags(gctx, apiclient.PoolPublic)
		return err
	})
	g.Go(func() (err error) {
		internal, err = r.api.Tags(gctx, apiclient.PoolInternal)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	r.tags = append(sortTags(public), sortTags(internal)...)
	return nil
}

// All 返回合并后的列表。
func (r *TagRegistry) All() []apiclient.Tag {
	return r.tags
}

// Tags 返回某个分区的标签，保持显示顺序。
func (r *TagRegistry) Tags(pool apiclient.Pool) []apiclient.Tag {
	return filterPool(r.tags, pool)
}

func filterPool(tags []apiclient.Tag, pool apiclient.Pool) []apiclient.Tag {
	out := make([]apiclient.Tag, 0, len(tags))
	for _, t := range tags {
		if t.Pool() == pool {
			out = append(out, t)
		}
	}
	return out
}

// Create 乐观创建：先追加一个负数临时 id 的占位标签，order 取同分区现有数量；
// 成功后按临时 id 原位替换成服务端记录，失败则移除占位。
func (r *TagRegistry) Create(ctx context.Context, pool apiclient.Pool, name, color string) (*apiclient.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create tag: empty name")
	}
	if color == "" {
		color = model.TagPool(pool).DefaultColor()
	}

	r.lastID--
	tempID := r.lastID
	placeholder := apiclient.Tag{
		ID:       tempID,
		Name:     name,
		Color:    color,
		IsPublic: pool == apiclient.PoolPublic,
		Order:    len(r.Tags(pool)),
	}

	var created *apiclient.Tag
	err := Mutation[[]apiclient.Tag]{
		Op:    "create tag",
		State: &r.tags,
		Apply: func(tags []apiclient.Tag) []apiclient.Tag {
			return insertInPool(tags, placeholder)
		},
		Remote: func(ctx context.Context) (func([]apiclient.Tag) []apiclient.Tag, error) {
			tag, err := r.api.CreateTag(ctx, pool, apiclient.TagInput{Name: name, Color: color})
			if err != nil {
				return nil, err
			}
			created = tag
			return func(tags []apiclient.Tag) []apiclient.Tag {
				return replaceTag(tags, tempID, *tag)
			}, nil
		},
		Revert: func(tags []apiclient.Tag) []apiclient.Tag {
			return removeTag(tags, tempID)
		},
	}.Run(ctx)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateInternal 是内部标签的快捷方式。
func (r *TagRegistry) CreateInternal(ctx context.Context, name, color string) (*apiclient.Tag, error) {
	return r.Create(ctx, apiclient.PoolInternal, name, color)
}

// Update 原位修改名称和颜色，失败时恢复调用前的列表。
func (r *TagRegistry) Update(ctx context.Context, pool apiclient.Pool, id int64, name, color string) error {
	current, ok := r.find(pool, id)
	if !ok {
		return ErrNotFound
	}
	edited := current
	if name = strings.TrimSpace(name); name != "" {
		edited.Name = name
	}
	if color != "" {
		edited.Color = color
	}

	return Mutation[[]apiclient.Tag]{
		Op:    "update tag",
		State: &r.tags,
		Apply: func(tags []apiclient.Tag) []apiclient.Tag {
			return replaceTag(tags, id, edited)
		},
		Remote: func(ctx context.Context) (func([]apiclient.Tag) []apiclient.Tag, error) {
			tag, err := r.api.UpdateTag(ctx, pool, id, apiclient.TagPatch{Name: &edited.Name, Color: &edited.Color})
			if err != nil {
				return nil, err
			}
			return func(tags []apiclient.Tag) []apiclient.Tag {
				// 分区以本地为准
				server := *tag
				server.IsPublic = current.IsPublic
				return replaceTag(tags, id, server)
			}, nil
		},
	}.Run(ctx)
}

// Delete 确认后乐观移除，失败时恢复。
func (r *TagRegistry) Delete(ctx context.Context, pool apiclient.Pool, id int64) error {
	tag, ok := r.find(pool, id)
	if !ok {
		return ErrNotFound
	}
	if !r.prompter.Confirm(fmt.Sprintf("Удалить тег «%s»?", tag.Name)) {
		return ErrCancelled
	}

	return Mutation[[]apiclient.Tag]{
		Op:    "delete tag",
		State: &r.tags,
		Apply: func(tags []apiclient.Tag) []apiclient.Tag {
			return removeTag(tags, id)
		},
		Remote: func(ctx context.Context) (func([]apiclient.Tag) []apiclient.Tag, error) {
			return nil, r.api.DeleteTag(ctx, pool, id)
		},
	}.Run(ctx)
}

// Reorder 只在一个分区内移动，另一个分区保持不变；失败时重新加载。
func (r *TagRegistry) Reorder(ctx context.Context, pool apiclient.Pool, from, to int) error {
	moved, err := ordering.Move(r.Tags(pool), from, to)
	if err != nil {
		return err
	}
	ids := make([]int64, len(moved))
	for i := range moved {
		moved[i].Order = i
		ids[i] = moved[i].ID
	}

	return Mutation[[]apiclient.Tag]{
		Op:    "reorder tags",
		State: &r.tags,
		Apply: func(tags []apiclient.Tag) []apiclient.Tag {
			if pool == apiclient.PoolPublic {
				return append(slices.Clone(moved), filterPool(tags, apiclient.PoolInternal)...)
			}
			return append(filterPool(tags, apiclient.PoolPublic), moved...)
		},
		Remote: func(ctx context.Context) (func([]apiclient.Tag) []apiclient.Tag, error) {
			return nil, r.api.ReorderTags(ctx, pool, ids)
		},
		Resync: r.Load,
	}.Run(ctx)
}

func (r *TagRegistry) find(pool apiclient.Pool, id int64) (apiclient.Tag, bool) {
	for _, t := range r.tags {
		if t.ID == id && t.Pool() == pool {
			return t, true
		}
	}
	return apiclient.Tag{}, false
}

// sortTags 按 order 升序稳定排序，缺省 order 即 0。
func sortTags(tags []apiclient.Tag) []apiclient.Tag {
	out := slices.Clone(tags)
	slices.SortStableFunc(out, func(a, b apiclient.Tag) int { return a.Order - b.Order })
	return out
}

// insertInPool 把 tag 放到它所在分区的末尾，保持公开在前、内部在后。
func insertInPool(tags []apiclient.Tag, tag apiclient.Tag) []apiclient.Tag {
	at := len(tags)
	if tag.IsPublic {
		at = slices.IndexFunc(tags, func(t apiclient.Tag) bool { return !t.IsPublic })
		if at < 0 {
			at = len(tags)
		}
	}
	return slices.Insert(slices.Clone(tags), at, tag)
}

func replaceTag(tags []apiclient.Tag, id int64, tag apiclient.Tag) []apiclient.Tag {
	out := slices.Clone(tags)
	for i := range out {
		if out[i].ID == id {
			out[i] = tag
		}
	}
	return out
}

func removeTag(tags []apiclient.Tag, id int64) []apiclient.Tag {
	return slices.DeleteFunc(slices.Clone(tags), func(t apiclient.Tag) bool { return t.ID == id })
}
