// Package report 汇总测量结果：排序、速度比、吞吐量格式化与 JSON 导出。
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/zeromicro/go-zero/core/timex"

	"syncbench/container"
)

// Result 一次测量的结果，由压测引擎构造后不再修改。
type Result struct {
	Name     string             `json:"name"`
	Category container.Category `json:"category"`
	Ops      int                `json:"ops"`
	Elapsed  time.Duration      `json:"elapsed_ns"`
}

// Seconds 耗时（秒）。
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// OpsPerSecond 吞吐量。
func (r Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// DurationRepr 人类可读的耗时表示。
func (r Result) DurationRepr() string {
	return timex.ReprOfDuration(r.Elapsed)
}

// Throughput 人类可读的吞吐量：千以下原值，百万以下 K，其余 M。
func (r Result) Throughput() string {
	ops := r.OpsPerSecond()
	switch {
	case ops < 1e3:
		return fmt.Sprintf("%.0f ops/s", ops)
	case ops < 1e6:
		return fmt.Sprintf("%.1fK ops/s", ops/1e3)
	default:
		return fmt.Sprintf("%.1fM ops/s", ops/1e6)
	}
}

// Rank 返回按耗时升序排序的副本，不改动入参。
func Rank(results []Result) []Result {
	ranked := make([]Result, len(results))
	copy(ranked, results)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Elapsed < ranked[j].Elapsed
	})
	return ranked
}

// Summary 一个场景内最快与最慢变体的对比。
type Summary struct {
	Fastest Result
	Slowest Result
	// Ratio = 最慢耗时 / 最快耗时
	Ratio float64
}

// Summarize 计算场景摘要；结果不足两条时返回 false。
func Summarize(results []Result) (Summary, bool) {
	if len(results) < 2 {
		return Summary{}, false
	}
	ranked := Rank(results)
	fastest, slowest := ranked[0], ranked[len(ranked)-1]
	return Summary{
		Fastest: fastest,
		Slowest: slowest,
		Ratio:   slowest.Elapsed.Seconds() / fastest.Elapsed.Seconds(),
	}, true
}

func (s Summary) String() string {
	return fmt.Sprintf("%s is %.1fx faster than %s", s.Fastest.Name, s.Ratio, s.Slowest.Name)
}

// Record 单场景的运行记录。规模扫描场景下 Results 含每个
// (变体, 档位) 组合一条结果，Ops 字段以各条结果自身为准。
type Record struct {
	Scenario string   `json:"scenario"`
	Ops      int      `json:"ops"`
	Results  []Result `json:"results"`
}

// Battery 全量压测记录，按场景独立成段；不同场景的操作量与负载
// 形态不同，跨场景比较耗时没有意义，因此只按场景分键，不做汇总。
type Battery struct {
	Runs []Record `json:"runs"`
}

// JSON 序列化为缩进 JSON。
func JSON(v any) (string, error) {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}
