package container

import "syncbench/workqueue"

// SerialQueueCounter 串行队列变体：每个操作同步投递给唯一 worker，
// 调用方阻塞到执行完毕。仅参与串行场景对比。
type SerialQueueCounter struct {
	q    *workqueue.SerialQueue
	vals []int
}

func NewSerialQueueCounter() *SerialQueueCounter {
	return &SerialQueueCounter{q: workqueue.NewSerialQueue()}
}

func (c *SerialQueueCounter) Write(v int) {
	c.q.Sync(func() {
		c.vals = append(c.vals, v)
	})
}

func (c *SerialQueueCounter) Read() (v int) {
	c.q.Sync(func() {
		v = last(c.vals)
	})
	return
}

func (c *SerialQueueCounter) WriteWithWork(v int) {
	c.q.Sync(func() {
		c.vals = append(c.vals, v)
		_ = simulateWork(v)
	})
}

func (c *SerialQueueCounter) ReadWithWork() (v int) {
	c.q.Sync(func() {
		v = last(c.vals)
		_ = simulateWork(v)
	})
	return
}

func (c *SerialQueueCounter) Reset() {
	c.q.Sync(func() {
		c.vals = c.vals[:0]
	})
}

// Close 停掉队列 worker。
func (c *SerialQueueCounter) Close() {
	c.q.Close()
}

// BarrierQueueCounter 读写屏障队列变体：读并发、写屏障独占，
// 乐观读/独占写模型。仅参与串行场景对比。
type BarrierQueueCounter struct {
	q    *workqueue.BarrierQueue
	vals []int
}

func NewBarrierQueueCounter() *BarrierQueueCounter {
	return &BarrierQueueCounter{q: workqueue.NewBarrierQueue()}
}

func (c *BarrierQueueCounter) Write(v int) {
	c.q.SyncBarrier(func() {
		c.vals = append(c.vals, v)
	})
}

func (c *BarrierQueueCounter) Read() (v int) {
	c.q.Sync(func() {
		v = last(c.vals)
	})
	return
}

func (c *BarrierQueueCounter) WriteWithWork(v int) {
	c.q.SyncBarrier(func() {
		c.vals = append(c.vals, v)
		_ = simulateWork(v)
	})
}

func (c *BarrierQueueCounter) ReadWithWork() (v int) {
	c.q.Sync(func() {
		v = last(c.vals)
		_ = simulateWork(v)
	})
	return
}

func (c *BarrierQueueCounter) Reset() {
	c.q.SyncBarrier(func() {
		c.vals = c.vals[:0]
	})
}
