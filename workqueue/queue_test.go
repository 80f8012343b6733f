package workqueue

import (
	"sync"
	"testing"
)

// Sync 返回即代表任务已执行完毕，且全部任务互斥串行。
func TestSerialQueueSync(t *testing.T) {
	q := NewSerialQueue()
	defer q.Close()

	applied := false
	q.Sync(func() { applied = true })
	if !applied {
		t.Fatal("Sync returned before the task ran")
	}

	// 无原子保护的自增在唯一 worker 上串行执行，计数不允许丢失
	const n = 1000
	count := 0
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			q.Sync(func() { count++ })
		}()
	}
	wg.Wait()
	if count != n {
		t.Fatalf("count = %d, want %d (lost updates on serial queue)", count, n)
	}
}

// 屏障写互斥：并发屏障提交的裸自增不允许丢失更新。
func TestBarrierQueueExclusiveWrite(t *testing.T) {
	q := NewBarrierQueue()

	const n = 1000
	count := 0
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			q.SyncBarrier(func() { count++ })
		}()
	}
	wg.Wait()
	if count != n {
		t.Fatalf("count = %d, want %d (barrier writes overlapped)", count, n)
	}
}

// 读任务之间必须允许并发：两个读任务互相等待对方进入临界区，
// 若读是互斥的，这里会直接死锁。
func TestBarrierQueueConcurrentReads(t *testing.T) {
	q := NewBarrierQueue()

	var inside sync.WaitGroup
	inside.Add(2)
	var done sync.WaitGroup
	done.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer done.Done()
			q.Sync(func() {
				inside.Done()
				inside.Wait()
			})
		}()
	}
	done.Wait()
}
