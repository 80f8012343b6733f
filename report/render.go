package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
)

var (
	fastestLine = color.New(color.FgGreen)
	slowestLine = color.New(color.FgRed)
)

// Render 向终端输出单场景报告：按耗时升序列出各变体，
// 最快标绿、最慢标红，末行给出速度比摘要。
// 规模扫描记录（各结果操作量不同）改为按变体分组的档位序列，
// 不排序也不做摘要——跨档位比较单点耗时没有意义。
func Render(w io.Writer, rec Record) {
	if rec.Ops > 0 {
		fmt.Fprintf(w, "--- %s (%d ops)\n", rec.Scenario, rec.Ops)
	} else {
		fmt.Fprintf(w, "--- %s\n", rec.Scenario)
	}

	if mixedOps(rec.Results) {
		renderSweep(w, rec.Results)
		return
	}

	ranked := Rank(rec.Results)
	for i, r := range ranked {
		line := fmt.Sprintf("  %-18s %10s  %14s  [%s]", r.Name, r.DurationRepr(), r.Throughput(), r.Category)
		switch {
		case i == 0:
			fastestLine.Fprintln(w, line)
		case i == len(ranked)-1:
			slowestLine.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
	if s, ok := Summarize(rec.Results); ok {
		fmt.Fprintf(w, "  >> %s\n", s)
	}
}

// RenderBattery 逐场景输出全量压测报告。
func RenderBattery(w io.Writer, b Battery) {
	for _, run := range b.Runs {
		Render(w, run)
		fmt.Fprintln(w)
	}
}

func mixedOps(results []Result) bool {
	for i := 1; i < len(results); i++ {
		if results[i].Ops != results[0].Ops {
			return true
		}
	}
	return false
}

// renderSweep 按变体分组、档位升序输出规模扫描序列。
func renderSweep(w io.Writer, results []Result) {
	byName := make(map[string][]Result)
	var order []string
	for _, r := range results {
		if _, ok := byName[r.Name]; !ok {
			order = append(order, r.Name)
		}
		byName[r.Name] = append(byName[r.Name], r)
	}
	for _, name := range order {
		series := byName[name]
		sort.Slice(series, func(i, j int) bool { return series[i].Ops < series[j].Ops })
		fmt.Fprintf(w, "  %-18s", name)
		for _, r := range series {
			fmt.Fprintf(w, "  %d ops: %s", r.Ops, r.DurationRepr())
		}
		fmt.Fprintln(w)
	}
}
