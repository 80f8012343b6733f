// syncbench 同步原语压测工具：把同一份读写负载压在不同同步机制的
// 容器上，对比墙钟耗时与吞吐量。
package main

import (
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/spf13/pflag"
	"github.com/zeromicro/go-zero/core/logx"

	"syncbench/bench"
	"syncbench/report"
	"syncbench/workload"
)

// batteryOps 全量压测的固定操作量。
const batteryOps = 50000

var (
	scenarioName = pflag.String("scenario", "balanced", "负载场景，见 --list")
	ops          = pflag.Int("ops", 10000, "操作量（带固定操作量的场景忽略此值）")
	battery      = pflag.Bool("battery", false, "以 50000 操作量跑完五个标准场景")
	jsonOut      = pflag.Bool("json", false, "以 JSON 输出最终结果")
	list         = pflag.Bool("list", false, "列出全部场景后退出")
	gopsAgent    = pflag.Bool("gops", false, "启动 gops 诊断 agent，便于排查卡死的测量")
)

func main() {
	pflag.Parse()

	logx.MustSetup(logx.LogConf{ServiceName: "syncbench", Mode: "console", Encoding: "plain"})
	logx.DisableStat()
	defer logx.Close()

	if *list {
		listScenarios()
		return
	}

	// 测量没有超时：某个变体死锁时整批会停住，
	// 此时用 gops 抓各 goroutine 栈定位，而不是加看门狗改变被测行为。
	if *gopsAgent {
		if err := agent.Listen(agent.Options{}); err != nil {
			logx.Must(err)
		}
		defer agent.Close()
	}

	engine := bench.New(func(step, total int, msg string) {
		logx.Infof("[%d/%d] %s", step, total, msg)
	})

	if *battery {
		b := engine.RunBattery(batteryOps)
		output(b, func() { report.RenderBattery(os.Stdout, b) })
		return
	}

	sc, err := workload.Parse(*scenarioName)
	if err != nil {
		logx.Must(err)
	}
	rec := engine.RunScenario(sc, *ops)
	output(rec, func() { report.Render(os.Stdout, rec) })
}

func output(v any, render func()) {
	if !*jsonOut {
		render()
		return
	}
	s, err := report.JSON(v)
	if err != nil {
		logx.Must(err)
	}
	fmt.Println(s)
}

func listScenarios() {
	for _, sc := range workload.All() {
		p := sc.Policy()
		fmt.Printf("%-12s write=%.0f%%", sc, p.WriteRatio*100)
		if p.FixedOps > 0 {
			fmt.Printf(" fixed-ops=%d", p.FixedOps)
		}
		if p.SimulatedWork {
			fmt.Print(" heavy-work")
		}
		if p.Sequential {
			fmt.Print(" sequential")
		}
		if p.ScalingSweep {
			fmt.Printf(" tiers=%v", workload.ScalingTiers)
		}
		fmt.Println()
	}
}
