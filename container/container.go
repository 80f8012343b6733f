// Package container 提供同一组读写语义在不同同步机制下的多种实现，
// 供压测引擎在完全相同的负载下对比各机制的相对开销。
package container

/*
容器的底层状态统一为可增长的有序整数序列：write 追加一个值，
read 返回最近写入的值，序列为空时返回零值哨兵。
任一变体在单协程下的可观测行为必须完全一致，差异只允许体现在
性能与并发扇出行为上。
*/

// Counter 同步容器的能力契约：锁型与队列型变体实现此接口，
// 所有方法均为阻塞式直接调用。
type Counter interface {
	Write(v int)
	Read() int
	// WriteWithWork 与 ReadWithWork 在持有同步原语期间执行固定的
	// 模拟 CPU 计算，用于对比"临界区昂贵"形态下的锁开销。
	WriteWithWork(v int)
	ReadWithWork() int
	Reset()
}

// AsyncCounter 协作调度容器的能力契约。方法签名与 Counter 相同，
// 但调用约定不同：调用方 goroutine 在 mailbox 回包前挂起（协作式让出），
// 而非阻塞持锁。压测引擎据此走独立的派发路径，两种约定不可混用。
type AsyncCounter interface {
	Write(v int)
	Read() int
	WriteWithWork(v int)
	ReadWithWork() int
	Reset()
}

// Category 容器变体的机制类别。
type Category string

const (
	CategoryLock  Category = "lock"
	CategoryQueue Category = "queue"
	CategoryActor Category = "actor"
)

// Variant 一个具名容器变体。同步变体填 Counter，协作调度变体填 Actor，
// 二者互斥。每轮压测构造全新实例，测完即弃。
type Variant struct {
	Name     string
	Category Category
	Counter  Counter
	Actor    AsyncCounter
}

// Close 释放变体持有的后台资源（队列 worker、actor mailbox）。
// 锁型变体无后台资源，Close 为空操作。
func (v Variant) Close() {
	if c, ok := v.Counter.(interface{ Close() }); ok {
		c.Close()
	}
	if a, ok := v.Actor.(interface{ Close() }); ok {
		a.Close()
	}
}

// DefaultVariants 构造一轮压测的容器变体集合，顺序固定。
// includeQueues 为 true 时纳入两种队列型变体（仅串行场景使用，
// 并发场景下队列型与锁型的对比冗余，属刻意收窄的策略）。
func DefaultVariants(includeQueues bool) []Variant {
	vs := []Variant{
		{Name: "mutex", Category: CategoryLock, Counter: NewMutexCounter()},
		{Name: "spinlock", Category: CategoryLock, Counter: NewSpinCounter()},
		{Name: "spinlock-guarded", Category: CategoryLock, Counter: NewGuardedSpinCounter()},
	}
	if includeQueues {
		vs = append(vs,
			Variant{Name: "serial-queue", Category: CategoryQueue, Counter: NewSerialQueueCounter()},
			Variant{Name: "rw-queue", Category: CategoryQueue, Counter: NewBarrierQueueCounter()},
		)
	}
	return append(vs, Variant{Name: "actor", Category: CategoryActor, Actor: NewCounterActor()})
}

// workIterations 模拟计算的固定迭代次数，所有变体必须一致，否则对比失真。
const workIterations = 100

// simulateWork 持锁期间执行的确定性 CPU 计算。
// 禁止内联：防止结果未被使用时整个循环被编译器消除。
//
//go:noinline
func simulateWork(seed int) int {
	acc := seed
	for i := 0; i < workIterations; i++ {
		acc += i * i
		acc ^= acc >> 3
	}
	return acc
}
