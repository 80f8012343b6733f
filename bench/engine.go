// Package bench 压测引擎：把容器变体放进负载场景里测墙钟耗时，
// 含预热、串行/并发扇出两种测量模式、中位数聚合与规模扫描。
package bench

import (
	"fmt"
	"sort"
	"time"

	"github.com/zeromicro/go-zero/core/mr"
	"github.com/zeromicro/go-zero/core/threading"
	"github.com/zeromicro/go-zero/core/timex"
	"golang.org/x/sync/errgroup"

	"syncbench/container"
	"syncbench/report"
	"syncbench/workload"
)

const (
	// warmupCycles 每个变体测量前的空转次数，摊掉首调开销
	//（锁分配、worker/mailbox 启动）。
	warmupCycles = 50
	// trialsPerVariant 常规场景每个变体的重复测量次数，取中位数上报。
	// 中位数对单次调度异常（GC、抢占）不敏感，又不需要更多试次。
	trialsPerVariant = 3
)

// ProgressFunc 进度回调：step/total 计数加一条人类可读状态。
// 引擎对宿主一无所知，宿主自行桥接到日志或进度条。
type ProgressFunc func(step, total int, msg string)

// Engine 压测引擎。一次测量是原子的：没有超时，也不支持中途取消，
// 某个变体死锁会卡住整批——这是交互式诊断工具接受的取舍。
type Engine struct {
	progress ProgressFunc
}

// New 构造引擎，progress 可为 nil。
func New(progress ProgressFunc) *Engine {
	return &Engine{progress: progress}
}

func (e *Engine) emit(step, total int, format string, args ...any) {
	if e.progress == nil {
		return
	}
	e.progress(step, total, fmt.Sprintf(format, args...))
}

// TotalSteps 场景的总进度步数，宿主可据此预先布置进度条：
// 常规场景 = 变体数 × 试次 + 1（预热），规模扫描 = 变体数 × 档位数。
func TotalSteps(sc workload.Scenario, variants int) int {
	if sc.Policy().ScalingSweep {
		return variants * len(workload.ScalingTiers)
	}
	return variants*trialsPerVariant + 1
}

// RunScenario 跑完一个场景：构造全新变体集合、预热、逐变体测量，
// 返回该场景的运行记录。opCount 对固定操作量的场景不生效。
func (e *Engine) RunScenario(sc workload.Scenario, opCount int) report.Record {
	policy := sc.Policy()
	variants := container.DefaultVariants(policy.Sequential)
	defer closeAll(variants)

	total := TotalSteps(sc, len(variants))

	if policy.ScalingSweep {
		return e.runSweep(sc, variants, total)
	}

	n := sc.OpCount(opCount)
	warmupAll(variants)
	step := 1
	e.emit(step, total, "warm-up done: %d cycles per variant", warmupCycles)

	results := make([]report.Result, 0, len(variants))
	for _, v := range variants {
		trials := make([]time.Duration, 0, trialsPerVariant)
		for t := 0; t < trialsPerVariant; t++ {
			elapsed := e.measure(v, policy, n)
			trials = append(trials, elapsed)
			step++
			e.emit(step, total, "%s trial %d/%d: %s", v.Name, t+1, trialsPerVariant, timex.ReprOfDuration(elapsed))
		}
		results = append(results, report.Result{
			Name:     v.Name,
			Category: v.Category,
			Ops:      n,
			Elapsed:  median(trials),
		})
	}
	return report.Record{Scenario: sc.String(), Ops: n, Results: results}
}

// runSweep 规模扫描：每个 (变体, 档位) 只测一次。单试次噪声更大，
// 但 4 档 × 变体数已经把试次翻了若干倍，这里沿用单次测量，
// 也保证进度步数公式成立（预热不计步）。
func (e *Engine) runSweep(sc workload.Scenario, variants []container.Variant, total int) report.Record {
	warmupAll(variants)

	step := 0
	results := make([]report.Result, 0, len(variants)*len(workload.ScalingTiers))
	for _, v := range variants {
		for _, tier := range workload.ScalingTiers {
			elapsed := e.measure(v, sc.Policy(), tier)
			step++
			e.emit(step, total, "%s @ %d ops: %s", v.Name, tier, timex.ReprOfDuration(elapsed))
			results = append(results, report.Result{
				Name:     v.Name,
				Category: v.Category,
				Ops:      tier,
				Elapsed:  elapsed,
			})
		}
	}
	return report.Record{Scenario: sc.String(), Results: results}
}

// RunBattery 全量压测：以同一配置操作量依次跑完五个标准场景。
// 场景循环本身严格串行，只有单次测量内部才有并发扇出，
// 因此结果累积无须额外同步。
func (e *Engine) RunBattery(opCount int) report.Battery {
	var b report.Battery
	for _, sc := range workload.Battery() {
		b.Runs = append(b.Runs, e.RunScenario(sc, opCount))
	}
	return b
}

// measure 单次测量：重置容器，按场景选择串行或并发扇出模式计时。
func (e *Engine) measure(v container.Variant, p workload.Policy, n int) time.Duration {
	d := workload.NewDispatcher(p)
	resetVariant(v)
	if p.Sequential {
		return measureSequential(v, d, n)
	}
	return measureConcurrent(v, d, n)
}

// measureSequential 单协程依次派发全部操作。
func measureSequential(v container.Variant, d *workload.Dispatcher, n int) time.Duration {
	start := timex.Now()
	if v.Counter != nil {
		for i := 0; i < n; i++ {
			d.Dispatch(v.Counter, i)
		}
	} else {
		for i := 0; i < n; i++ {
			d.DispatchAsync(v.Actor, i)
		}
	}
	return timex.Since(start)
}

// measureConcurrent 并发扇出：每个操作一个 goroutine，
// 等待全部完成后停表。同步容器经 RoutineGroup 汇合；
// actor 走 errgroup 的结构化并发汇合，调用方逐个在 mailbox 上挂起。
func measureConcurrent(v container.Variant, d *workload.Dispatcher, n int) time.Duration {
	if v.Actor != nil {
		start := timex.Now()
		var g errgroup.Group
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				d.DispatchAsync(v.Actor, i)
				return nil
			})
		}
		_ = g.Wait()
		return timex.Since(start)
	}

	start := timex.Now()
	group := threading.NewRoutineGroup()
	for i := 0; i < n; i++ {
		i := i
		group.Run(func() {
			d.Dispatch(v.Counter, i)
		})
	}
	group.Wait()
	return timex.Since(start)
}

// warmupAll 并行预热全部变体。预热顺序无关紧要，彼此状态隔离。
func warmupAll(variants []container.Variant) {
	fns := make([]func() error, 0, len(variants))
	for _, v := range variants {
		v := v
		fns = append(fns, func() error {
			warmup(v)
			return nil
		})
	}
	_ = mr.Finish(fns...)
}

func warmup(v container.Variant) {
	for i := 0; i < warmupCycles; i++ {
		if v.Counter != nil {
			v.Counter.Write(i)
			v.Counter.Read()
		} else {
			v.Actor.Write(i)
			v.Actor.Read()
		}
	}
}

func resetVariant(v container.Variant) {
	if v.Counter != nil {
		v.Counter.Reset()
	} else {
		v.Actor.Reset()
	}
}

func closeAll(variants []container.Variant) {
	for _, v := range variants {
		v.Close()
	}
}

// median 中位数聚合。
func median(ds []time.Duration) time.Duration {
	sorted := make([]time.Duration, len(ds))
	copy(sorted, ds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}
