// Package workqueue 提供两种任务队列：单 worker 串行队列与读写屏障队列，
// 作为队列型容器变体的底层设施。
package workqueue

import (
	"sync"

	"github.com/zeromicro/go-zero/core/threading"
)

// SerialQueue 单 worker 独占任务队列：所有任务投递给唯一的
// 后台 goroutine 依次执行，天然互斥。对应"派发给单一 worker、
// 调用方阻塞等待"的模型。
type SerialQueue struct {
	tasks chan func()
}

// NewSerialQueue 启动 worker 并返回队列。用毕必须 Close，否则 worker 泄漏。
func NewSerialQueue() *SerialQueue {
	q := &SerialQueue{tasks: make(chan func())}
	threading.GoSafe(func() {
		for task := range q.tasks {
			task()
		}
	})
	return q
}

// Sync 同步提交：投递任务并等待其执行完毕。Close 之后不得再提交。
func (q *SerialQueue) Sync(fn func()) {
	done := make(chan struct{})
	q.tasks <- func() {
		fn()
		close(done)
	}
	<-done
}

// Close 关闭队列，worker 排空在途任务后退出。
func (q *SerialQueue) Close() {
	close(q.tasks)
}

// BarrierQueue 读写屏障队列：读任务之间并发执行，写任务以屏障语义
// 独占执行——等待在途读写全部结束、独自运行、随后恢复并发。
// RWMutex 的读共享/写独占与屏障语义一一对应，无须后台 worker。
type BarrierQueue struct {
	mu sync.RWMutex
}

func NewBarrierQueue() *BarrierQueue {
	return &BarrierQueue{}
}

// Sync 同步提交读任务，可与其他读任务并发。
func (q *BarrierQueue) Sync(fn func()) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	fn()
}

// SyncBarrier 同步提交写任务，屏障独占执行。
func (q *BarrierQueue) SyncBarrier(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	fn()
}
