package workload

import (
	"sync/atomic"

	"syncbench/container"
)

/*
操作派发器（Dispatcher）把操作序号翻译成对容器的读/写调用。

读写判定是纯模运算而非随机数：isWrite = (i % 10) < int(ratio*10)。
由此产生确定、可复现的重复模式，同一场景同一操作量下所有容器变体
看到的读写序列完全一致，这是跨变体公平对比的前提。

同步容器与协作调度容器的调用约定不同（直接调用 vs 消息挂起），
因此派发器提供两条独立路径，而不是把两种约定硬塞进同一个接口。
*/

// IsWrite 判定第 i 个操作是否为写操作。
func IsWrite(i int, ratio float64) bool {
	return i%10 < int(ratio*10)
}

// Dispatcher 持有场景策略，并用原子计数器记录实际派发的操作总数，
// 供操作量守恒校验使用。每次测量使用新的 Dispatcher。
type Dispatcher struct {
	policy     Policy
	dispatched atomic.Int64
}

// NewDispatcher 构造指定策略的派发器。
func NewDispatcher(p Policy) *Dispatcher {
	return &Dispatcher{policy: p}
}

// Dispatch 同步路径：锁型与队列型容器的直接调用。
func (d *Dispatcher) Dispatch(c container.Counter, i int) {
	d.dispatched.Add(1)
	if IsWrite(i, d.policy.WriteRatio) {
		if d.policy.SimulatedWork {
			c.WriteWithWork(i)
		} else {
			c.Write(i)
		}
		return
	}
	if d.policy.SimulatedWork {
		c.ReadWithWork()
	} else {
		c.Read()
	}
}

// DispatchAsync 挂起路径：协作调度容器的消息调用，
// 调用方 goroutine 在 actor 回包前处于挂起状态。
func (d *Dispatcher) DispatchAsync(a container.AsyncCounter, i int) {
	d.dispatched.Add(1)
	if IsWrite(i, d.policy.WriteRatio) {
		if d.policy.SimulatedWork {
			a.WriteWithWork(i)
		} else {
			a.Write(i)
		}
		return
	}
	if d.policy.SimulatedWork {
		a.ReadWithWork()
	} else {
		a.Read()
	}
}

// Dispatched 返回已派发的操作总数。
func (d *Dispatcher) Dispatched() int64 {
	return d.dispatched.Load()
}
