package bench

import (
	"testing"
	"time"

	"syncbench/container"
	"syncbench/workload"
)

// 中位数聚合：三次试次取中间值，不是均值也不是最小值。
func TestMedian(t *testing.T) {
	trials := []time.Duration{
		500 * time.Millisecond,
		300 * time.Millisecond,
		900 * time.Millisecond,
	}
	if got := median(trials); got != 500*time.Millisecond {
		t.Fatalf("median = %v, want 500ms", got)
	}
}

// 进度总步数公式：常规场景 = 变体数×3+1，规模扫描 = 变体数×4。
func TestTotalSteps(t *testing.T) {
	if got := TotalSteps(workload.Balanced, 4); got != 13 {
		t.Errorf("TotalSteps(balanced, 4) = %d, want 13", got)
	}
	if got := TotalSteps(workload.SequentialOnly, 6); got != 19 {
		t.Errorf("TotalSteps(sequential, 6) = %d, want 19", got)
	}
	if got := TotalSteps(workload.Scaling, 4); got != 16 {
		t.Errorf("TotalSteps(scaling, 4) = %d, want 16", got)
	}
}

// 规模扫描必须恰好产出 档位数×变体数 条结果，每个 (变体, 档位) 一条。
func TestScalingSweepTierCoverage(t *testing.T) {
	rec := New(nil).RunScenario(workload.Scaling, 0)

	variants := container.DefaultVariants(false)
	defer closeAll(variants)
	wantLen := len(variants) * len(workload.ScalingTiers)
	if len(rec.Results) != wantLen {
		t.Fatalf("scaling sweep produced %d results, want %d", len(rec.Results), wantLen)
	}

	tiers := make(map[string]map[int]int)
	for _, r := range rec.Results {
		if tiers[r.Name] == nil {
			tiers[r.Name] = make(map[int]int)
		}
		tiers[r.Name][r.Ops]++
	}
	for name, byTier := range tiers {
		for _, tier := range workload.ScalingTiers {
			if byTier[tier] != 1 {
				t.Errorf("%s: tier %d measured %d times, want exactly 1", name, tier, byTier[tier])
			}
		}
		if len(byTier) != len(workload.ScalingTiers) {
			t.Errorf("%s: got tiers %v, want exactly %v", name, byTier, workload.ScalingTiers)
		}
	}
}

// 进度回调必须从 1 递增到 total，且 total 与公式一致。
func TestProgressSteps(t *testing.T) {
	var steps []int
	total := 0
	engine := New(func(step, tot int, msg string) {
		steps = append(steps, step)
		total = tot
	})
	engine.RunScenario(workload.LowVolume, 0)

	variants := container.DefaultVariants(false)
	defer closeAll(variants)
	want := TotalSteps(workload.LowVolume, len(variants))
	if total != want {
		t.Fatalf("reported total = %d, want %d", total, want)
	}
	if len(steps) != want {
		t.Fatalf("emitted %d progress steps, want %d", len(steps), want)
	}
	for i, s := range steps {
		if s != i+1 {
			t.Fatalf("step %d emitted as %d, want %d", i, s, i+1)
		}
	}
}

// 端到端：均衡场景并发跑完后，每个变体的终态读数必须落在
// 确定性读写模式的写操作序号集合内（写比 0.5 ⇒ 每块 10 个序号的
// 前 5 个是写），不允许出现只读序号或图外值。
func TestConcurrentMeasureLeavesWrittenValue(t *testing.T) {
	const n = 1000
	policy := workload.Balanced.Policy()
	engine := New(nil)

	for _, v := range container.DefaultVariants(false) {
		t.Run(v.Name, func(t *testing.T) {
			defer v.Close()
			engine.measure(v, policy, n)

			var got int
			if v.Counter != nil {
				got = v.Counter.Read()
			} else {
				got = v.Actor.Read()
			}
			if got < 0 || got >= n {
				t.Fatalf("final read = %d, outside dispatched index range [0,%d)", got, n)
			}
			if !workload.IsWrite(got, policy.WriteRatio) {
				t.Fatalf("final read = %d, which is a read-only index in the dispatch pattern", got)
			}
		})
	}
}

// 固定操作量场景在单场景与全量压测下都必须保持自身操作量。
func TestRunScenarioAndBatteryOpCounts(t *testing.T) {
	engine := New(nil)

	rec := engine.RunScenario(workload.Balanced, 200)
	if rec.Ops != 200 {
		t.Fatalf("balanced record ops = %d, want 200", rec.Ops)
	}
	for _, r := range rec.Results {
		if r.Ops != 200 {
			t.Errorf("%s result ops = %d, want 200", r.Name, r.Ops)
		}
	}

	b := engine.RunBattery(200)
	if len(b.Runs) != len(workload.Battery()) {
		t.Fatalf("battery produced %d runs, want %d", len(b.Runs), len(workload.Battery()))
	}
	wantOps := map[string]int{
		"read-heavy":  200,
		"write-heavy": 200,
		"balanced":    200,
		"heavy-work":  1000,
		"low-volume":  100,
	}
	for _, run := range b.Runs {
		if want := wantOps[run.Scenario]; run.Ops != want {
			t.Errorf("battery run %s ops = %d, want %d", run.Scenario, run.Ops, want)
		}
	}
}

// 串行场景纳入队列变体，结果应为 6 条且全部来自单协程测量。
func TestSequentialScenarioVariantSet(t *testing.T) {
	rec := New(nil).RunScenario(workload.SequentialOnly, 200)
	if len(rec.Results) != 6 {
		t.Fatalf("sequential scenario produced %d results, want 6", len(rec.Results))
	}
	categories := map[container.Category]int{}
	for _, r := range rec.Results {
		categories[r.Category]++
	}
	if categories[container.CategoryQueue] != 2 {
		t.Errorf("queue variants in sequential run = %d, want 2", categories[container.CategoryQueue])
	}
}
