package workload

import "fmt"

/*
负载场景（Scenario）是不可变的命名策略，描述一次压测的读写配比、操作量和临界区开销形态。
全部场景在编译期固定，作为进程级常量配置，不存在运行期注册。
*/

// Scenario 固定的七种负载场景。
type Scenario int

const (
	// ReadHeavy 读多写少，写占比 10%
	ReadHeavy Scenario = iota
	// WriteHeavy 写多读少，写占比 90%
	WriteHeavy
	// Balanced 读写均衡，写占比 50%
	Balanced
	// HeavyWork 临界区内附加固定 CPU 开销，固定 1000 次操作
	HeavyWork
	// LowVolume 低操作量场景，固定 100 次操作
	LowVolume
	// SequentialOnly 纯串行测量，额外纳入两种队列型容器做对比
	SequentialOnly
	// Scaling 规模扫描：按 4 个操作量档位各测一次
	Scaling
)

// Policy 场景策略字段。构造后不再修改。
type Policy struct {
	// WriteRatio 写操作占比，取值 0.0~1.0
	WriteRatio float64
	// FixedOps 非零时覆盖外部传入的操作量
	FixedOps int
	// SimulatedWork 是否在持锁期间执行固定的模拟 CPU 计算
	SimulatedWork bool
	// Sequential 是否强制单协程串行测量
	Sequential bool
	// ScalingSweep 是否按操作量档位扫描而非单点测量
	ScalingSweep bool
}

// ScalingTiers 规模扫描的操作量档位，自小到大。
var ScalingTiers = []int{100, 1000, 10000, 50000}

var policies = [...]Policy{
	ReadHeavy:      {WriteRatio: 0.1},
	WriteHeavy:     {WriteRatio: 0.9},
	Balanced:       {WriteRatio: 0.5},
	HeavyWork:      {WriteRatio: 0.5, FixedOps: 1000, SimulatedWork: true},
	LowVolume:      {WriteRatio: 0.5, FixedOps: 100},
	SequentialOnly: {WriteRatio: 0.5, Sequential: true},
	Scaling:        {WriteRatio: 0.5, ScalingSweep: true},
}

var names = [...]string{
	ReadHeavy:      "read-heavy",
	WriteHeavy:     "write-heavy",
	Balanced:       "balanced",
	HeavyWork:      "heavy-work",
	LowVolume:      "low-volume",
	SequentialOnly: "sequential",
	Scaling:        "scaling",
}

// All 按声明顺序返回全部场景。
func All() []Scenario {
	return []Scenario{ReadHeavy, WriteHeavy, Balanced, HeavyWork, LowVolume, SequentialOnly, Scaling}
}

// Battery 全量压测所覆盖的五个标准场景（不含串行与规模扫描）。
func Battery() []Scenario {
	return []Scenario{ReadHeavy, WriteHeavy, Balanced, HeavyWork, LowVolume}
}

// Parse 按名称解析场景。
func Parse(name string) (Scenario, error) {
	for _, s := range All() {
		if names[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scenario %q", name)
}

func (s Scenario) String() string {
	return names[s]
}

// Policy 返回场景策略。
func (s Scenario) Policy() Policy {
	return policies[s]
}

// OpCount 解析本场景的实际操作量：策略固定值优先，否则使用外部配置值。
func (s Scenario) OpCount(configured int) int {
	if p := policies[s]; p.FixedOps > 0 {
		return p.FixedOps
	}
	return configured
}
