package container

import "github.com/zeromicro/go-zero/core/syncx"

// SpinCounter 非公平低开销变体：go-zero 的 CAS 自旋锁，自旋 10 轮后
// 让出调度（runtime.Gosched），无 FIFO 唤醒顺序，极端竞争下可能饿死个别协程。
// 锁统一按指针持有，复制或搬迁容器不会使锁状态失效。
type SpinCounter struct {
	lock *syncx.SpinLock
	vals []int
}

func NewSpinCounter() *SpinCounter {
	return &SpinCounter{lock: new(syncx.SpinLock)}
}

func (c *SpinCounter) Write(v int) {
	c.lock.Lock()
	c.vals = append(c.vals, v)
	c.lock.Unlock()
}

func (c *SpinCounter) Read() int {
	c.lock.Lock()
	v := last(c.vals)
	c.lock.Unlock()
	return v
}

func (c *SpinCounter) WriteWithWork(v int) {
	c.lock.Lock()
	c.vals = append(c.vals, v)
	_ = simulateWork(v)
	c.lock.Unlock()
}

func (c *SpinCounter) ReadWithWork() int {
	c.lock.Lock()
	v := last(c.vals)
	_ = simulateWork(v)
	c.lock.Unlock()
	return v
}

func (c *SpinCounter) Reset() {
	c.lock.Lock()
	c.vals = c.vals[:0]
	c.lock.Unlock()
}

// spinGuard 自旋锁的防呆封装：闭包内持锁，defer 保证释放，
// 杜绝手写 Lock/Unlock 漏配对。与裸用自旋锁功能等价，
// 单列一个变体正是为了测量这层封装的开销是否可感知。
type spinGuard struct {
	lock *syncx.SpinLock
}

func newSpinGuard() *spinGuard {
	return &spinGuard{lock: new(syncx.SpinLock)}
}

func (g *spinGuard) withLock(fn func()) {
	g.lock.Lock()
	defer g.lock.Unlock()
	fn()
}

// GuardedSpinCounter 经 spinGuard 封装的自旋锁变体。
type GuardedSpinCounter struct {
	guard *spinGuard
	vals  []int
}

func NewGuardedSpinCounter() *GuardedSpinCounter {
	return &GuardedSpinCounter{guard: newSpinGuard()}
}

func (c *GuardedSpinCounter) Write(v int) {
	c.guard.withLock(func() {
		c.vals = append(c.vals, v)
	})
}

func (c *GuardedSpinCounter) Read() (v int) {
	c.guard.withLock(func() {
		v = last(c.vals)
	})
	return
}

func (c *GuardedSpinCounter) WriteWithWork(v int) {
	c.guard.withLock(func() {
		c.vals = append(c.vals, v)
		_ = simulateWork(v)
	})
}

func (c *GuardedSpinCounter) ReadWithWork() (v int) {
	c.guard.withLock(func() {
		v = last(c.vals)
		_ = simulateWork(v)
	})
	return
}

func (c *GuardedSpinCounter) Reset() {
	c.guard.withLock(func() {
		c.vals = c.vals[:0]
	})
}
