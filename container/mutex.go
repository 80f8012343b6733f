package container

import "sync"

// MutexCounter 基准变体：sync.Mutex 互斥保护。
// Go 的 mutex 自带饥饿模式（等待超过 1ms 切换为 FIFO 交接），
// 对应"公平互斥锁"这一安全朴素的基线。
type MutexCounter struct {
	mu   sync.Mutex
	vals []int
}

func NewMutexCounter() *MutexCounter {
	return &MutexCounter{}
}

func (c *MutexCounter) Write(v int) {
	c.mu.Lock()
	c.vals = append(c.vals, v)
	c.mu.Unlock()
}

func (c *MutexCounter) Read() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return last(c.vals)
}

func (c *MutexCounter) WriteWithWork(v int) {
	c.mu.Lock()
	c.vals = append(c.vals, v)
	_ = simulateWork(v)
	c.mu.Unlock()
}

func (c *MutexCounter) ReadWithWork() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := last(c.vals)
	_ = simulateWork(v)
	return v
}

func (c *MutexCounter) Reset() {
	c.mu.Lock()
	c.vals = c.vals[:0]
	c.mu.Unlock()
}

// last 返回序列尾值，空序列返回零值哨兵。
func last(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	return vals[len(vals)-1]
}
