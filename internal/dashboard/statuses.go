package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"
	"github.com/NabievDev/NewPeople-sub000/pkg/slug"
)

// StatusRegistry 缓存状态列表，单一分区，按 order 升序。
type StatusRegistry struct {
	api      StatusAPI
	prompter Prompter

	statuses []apiclient.Status
}

func NewStatusRegistry(api StatusAPI, prompter Prompter) *StatusRegistry {
	return &StatusRegistry{api: api, prompter: prompter}
}

func (r *StatusRegistry) Load(ctx context.Context) error {
	statuses, err := r.api.Statuses(ctx)
	if err != nil {
		return fmt.Errorf("load statuses: %w", err)
	}
	out := slices.Clone(statuses)
	slices.SortStableFunc(out, func(a, b apiclient.Status) int { return a.Order - b.Order })
	r.statuses = out
	return nil
}

func (r *StatusRegistry) Statuses() []apiclient.Status {
	return r.statuses
}

// Create 用名称生成 status_key 后提交，成功后把服务端返回追加到列表末尾。
func (r *StatusRegistry) Create(ctx context.Context, name, color string, description *string) (*apiclient.Status, error) {
	name = strings.TrimSpace(name)
	key := slug.StatusKey(name)
	if key == "" {
		return nil, fmt.Errorf("create status: name %q yields an empty status key", name)
	}

	status, err := r.api.CreateStatus(ctx, apiclient.StatusInput{
		StatusKey:   key,
		Name:        name,
		Color:       color,
		Description: description,
	})
	if err != nil {
		log.Warnw("create status failed", "status_key", key, "error", err)
		return nil, err
	}
	r.statuses = append(slices.Clone(r.statuses), *status)
	return status, nil
}

// Update 乐观替换。status_key 和 is_system 始终沿用本地已有的值。
func (r *StatusRegistry) Update(ctx context.Context, status apiclient.Status) error {
	current, ok := r.find(status.ID)
	if !ok {
		return ErrNotFound
	}
	status.StatusKey = current.StatusKey
	status.IsSystem = current.IsSystem
	status.Order = current.Order

	return Mutation[[]apiclient.Status]{
		Op:    "update status",
		State: &r.statuses,
		Apply: func(list []apiclient.Status) []apiclient.Status {
			return replaceStatus(list, status)
		},
		Remote: func(ctx context.Context) (func([]apiclient.Status) []apiclient.Status, error) {
			updated, err := r.api.UpdateStatus(ctx, status.ID, apiclient.StatusPatch{
				Name:        &status.Name,
				Color:       &status.Color,
				Description: status.Description,
			})
			if err != nil {
				return nil, err
			}
			return func(list []apiclient.Status) []apiclient.Status {
				return replaceStatus(list, *updated)
			}, nil
		},
	}.Run(ctx)
}

// Delete 系统状态直接拒绝并弹出提示，不发任何请求；
// 其余状态确认后乐观移除，失败时恢复。
func (r *StatusRegistry) Delete(ctx context.Context, id int64) error {
	status, ok := r.find(id)
	if !ok {
		return ErrNotFound
	}
	if status.IsSystem {
		r.prompter.Alert(fmt.Sprintf("Системный статус «%s» нельзя удалить", status.Name))
		return ErrSystemStatus
	}
	if !r.prompter.Confirm(fmt.Sprintf("Удалить статус «%s»?", status.Name)) {
		return ErrCancelled
	}

	return Mutation[[]apiclient.Status]{
		Op:    "delete status",
		State: &r.statuses,
		Apply: func(list []apiclient.Status) []apiclient.Status {
			return slices.DeleteFunc(slices.Clone(list), func(s apiclient.Status) bool { return s.ID == id })
		},
		Remote: func(ctx context.Context) (func([]apiclient.Status) []apiclient.Status, error) {
			return nil, r.api.DeleteStatus(ctx, id)
		},
	}.Run(ctx)
}

// Reorder 把 from 位置移到 to 位置并重新编号，失败时重新加载。
func (r *StatusRegistry) Reorder(ctx context.Context, from, to int) error {
	moved, err := ordering.Move(r.statuses, from, to)
	if err != nil {
		return err
	}
	ids := make([]int64, len(moved))
	for i := range moved {
		moved[i].Order = i
		ids[i] = moved[i].ID
	}

	return Mutation[[]apiclient.Status]{
		Op:    "reorder statuses",
		State: &r.statuses,
		Apply: func([]apiclient.Status) []apiclient.Status {
			return moved
		},
		Remote: func(ctx context.Context) (func([]apiclient.Status) []apiclient.Status, error) {
			return nil, r.api.ReorderStatuses(ctx, ids)
		},
		Resync: r.Load,
	}.Run(ctx)
}

func (r *StatusRegistry) find(id int64) (apiclient.Status, bool) {
	for _, s := range r.statuses {
		if s.ID == id {
			return s, true
		}
	}
	return apiclient.Status{}, false
}

// replaceStatus 按 id 原位替换，status_key 保持不变。
func replaceStatus(list []apiclient.Status, status apiclient.Status) []apiclient.Status {
	out := slices.Clone(list)
	for i := range out {
		if out[i].ID == status.ID {
			status.StatusKey = out[i].StatusKey
			out[i] = status
		}
	}
	return out
}
