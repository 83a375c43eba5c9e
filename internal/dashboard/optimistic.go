package dashboard

import (
	"context"

	"github.com/NabievDev/NewPeople-sub000/pkg/log"
)

// Mutation 是一次乐观更新：先改本地状态，再发远程请求，失败时回滚。
//
// 失败路径三选一，优先级从高到低：Resync（整表重新加载，失败时退回快照）、
// Revert（自定义回滚）、默认的快照回滚。Apply 和 Revert 必须返回新值，不能原地修改入参，
// 否则快照会被一起改掉。
type Mutation[T any] struct {
	Op    string
	State *T

	Apply func(T) T
	// Remote 成功时可以返回一个 settle 函数，用服务端结果修正本地状态（例如替换临时 id）。
	Remote func(ctx context.Context) (settle func(T) T, err error)

	Revert func(T) T
	Resync func(ctx context.Context) error
}

// Run 执行这次更新，远程错误原样返回给调用方。
// 没有重试，也不取消进行中的请求：同一状态上的两次更新谁最后返回谁生效。
func (m Mutation[T]) Run(ctx context.Context) error {
	snapshot := *m.State
	*m.State = m.Apply(snapshot)

	settle, err := m.Remote(ctx)
	if err == nil {
		if settle != nil {
			*m.State = settle(*m.State)
		}
		return nil
	}

	log.Warnw("optimistic update failed", "op", m.Op, "error", err)
	switch {
	case m.Resync != nil:
		// 重新加载也失败时退回快照，不能留下服务端没有接受的状态
		if rerr := m.Resync(ctx); rerr != nil {
			log.Warnw("resync after failed update failed", "op", m.Op, "error", rerr)
			*m.State = snapshot
		}
	case m.Revert != nil:
		*m.State = m.Revert(*m.State)
	default:
		*m.State = snapshot
	}
	return err
}
