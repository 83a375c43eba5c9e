// Package ordering 实现拖拽排序的纯计算部分：
// 给定当前有序序列和一次 (from, to) 移动，得到新序列，再把它换算成最少的 order 字段更新。
// 控制台和服务端都用它，保证两边对“连续排名”的理解一致。
package ordering

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange 表示 from/to 超出了序列范围。
var ErrIndexOutOfRange = errors.New("ordering: index out of range")

// Change 是一条需要落库的 order 更新。
type Change struct {
	ID    uint
	Order int
}

// Move 返回把 items[from] 移动到位置 to 之后的新切片，不修改入参。
func Move[T any](items []T, from, to int) ([]T, error) {
	n := len(items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: from=%d to=%d len=%d", ErrIndexOutOfRange, from, to, n)
	}

	out := make([]T, 0, n)
	moved := items[from]
	for i, item := range items {
		if i == from {
			continue
		}
		if len(out) == to {
			out = append(out, moved)
		}
		out = append(out, item)
	}
	if len(out) < n {
		out = append(out, moved)
	}
	return out, nil
}

// Diff 把有序 id 序列重新编号为 0..n-1，只返回 order 真正变化的条目。
// current 是当前已知的 id -> order；不在 current 里的 id 一律视为需要更新。
func Diff(ids []uint, current map[uint]int) []Change {
	changes := make([]Change, 0)
	for rank, id := range ids {
		if order, ok := current[id]; ok && order == rank {
			continue
		}
		changes = append(changes, Change{ID: id, Order: rank})
	}
	return changes
}

// Validate 检查 ids 没有重复，并且与 known 集合完全一致。
// 服务端用它拒绝漏传、多传或重复的重排请求。
func Validate(ids []uint, known map[uint]int) error {
	if len(ids) != len(known) {
		return fmt.Errorf("ordering: expected %d ids, got %d", len(known), len(ids))
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("ordering: duplicate id %d", id)
		}
		seen[id] = struct{}{}
		if _, ok := known[id]; !ok {
			return fmt.Errorf("ordering: unknown id %d", id)
		}
	}
	return nil
}
