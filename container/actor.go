package container

import "github.com/zeromicro/go-zero/core/threading"

/*
CounterActor 协作调度变体：状态由唯一的 mailbox goroutine 独占持有，
所有操作以消息形式投递，由 owner 依次处理后回包。调用方 goroutine
在回包前挂起（channel 阻塞属协作式让出，运行时会把线程让给其他
goroutine），不存在持锁自旋或线程级阻塞；变更严格串行，挂起中的
多个调用方之间的处理顺序不作保证。
*/

type actorOp int

const (
	opWrite actorOp = iota
	opRead
	opWriteWork
	opReadWork
	opReset
)

type actorMsg struct {
	op    actorOp
	value int
	reply chan int
}

// CounterActor 见包说明。用毕必须 Close，否则 owner goroutine 泄漏。
type CounterActor struct {
	mailbox chan actorMsg
}

func NewCounterActor() *CounterActor {
	a := &CounterActor{mailbox: make(chan actorMsg)}
	threading.GoSafe(a.run)
	return a
}

// run 唯一的状态 owner。
func (a *CounterActor) run() {
	var vals []int
	for msg := range a.mailbox {
		switch msg.op {
		case opWrite:
			vals = append(vals, msg.value)
			msg.reply <- 0
		case opRead:
			msg.reply <- last(vals)
		case opWriteWork:
			vals = append(vals, msg.value)
			_ = simulateWork(msg.value)
			msg.reply <- 0
		case opReadWork:
			v := last(vals)
			_ = simulateWork(v)
			msg.reply <- v
		case opReset:
			vals = vals[:0]
			msg.reply <- 0
		}
	}
}

func (a *CounterActor) call(op actorOp, v int) int {
	reply := make(chan int)
	a.mailbox <- actorMsg{op: op, value: v, reply: reply}
	return <-reply
}

func (a *CounterActor) Write(v int) {
	a.call(opWrite, v)
}

func (a *CounterActor) Read() int {
	return a.call(opRead, 0)
}

func (a *CounterActor) WriteWithWork(v int) {
	a.call(opWriteWork, v)
}

func (a *CounterActor) ReadWithWork() int {
	return a.call(opReadWork, 0)
}

func (a *CounterActor) Reset() {
	a.call(opReset, 0)
}

// Close 关闭 mailbox，owner goroutine 退出。Close 之后不得再调用任何操作。
func (a *CounterActor) Close() {
	close(a.mailbox)
}
