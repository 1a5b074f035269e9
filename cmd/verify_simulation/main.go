// verify_simulation 无窗口运行若干局，打印每局统计
//
// 用法:
//
//	go run ./cmd/verify_simulation --mode survival --pattern hunt --rounds 3 --seed 42
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/systems"
	"github.com/gonewx/slicehero/pkg/types"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	modeName   = flag.String("mode", "time", "模式: time 或 survival")
	pattern    = flag.String("pattern", PatternHunt, "挥刀脚本: idle / zigzag / hunt")
	seed       = flag.Int64("seed", 1, "随机种子（0 表示按时间取种）")
	rounds     = flag.Int("rounds", 1, "连续运行的局数")
	maxTicks   = flag.Int("max-ticks", 60*60*10, "单局最多运行的帧数（防止存活模式无限进行）")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "verify_simulation: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfigFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Spawn.Seed = *seed

	mode, ok := types.ParseGameMode(*modeName)
	if !ok {
		return fmt.Errorf("unknown game mode: %s", *modeName)
	}

	sim, err := systems.NewSimulation(cfg, nil)
	if err != nil {
		return err
	}
	leaderboard := game.NewLeaderboardManager(nil, cfg.Session.LeaderboardSize)
	rc := game.NewRoundController(sim, leaderboard)

	pointer, err := newScriptedPointer(*pattern, cfg.Screen.Width, cfg.Screen.Height, rc.Snapshot)
	if err != nil {
		return err
	}
	loop := game.NewLoop(rc, pointer, nil, cfg.Screen.TPS)
	rc.SetSourceReady(true, "")

	dt := 1.0 / float64(cfg.Screen.TPS)
	for i := 0; i < *rounds; i++ {
		res, ticks, err := playRound(rc, loop, mode, dt, *maxTicks)
		if err != nil {
			return err
		}
		printResult(out, i+1, res, ticks, sim.Table())
		if res == nil {
			break
		}
		if err := rc.AcknowledgeEnd(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "leaderboard:")
	for i, e := range leaderboard.Entries() {
		fmt.Fprintf(out, "  #%d %6d %s\n", i+1, e.Score, e.Mode)
	}
	return nil
}

// playRound 运行一局直到结束或达到帧数上限
// 达到上限时返回的结果为 nil
func playRound(rc *game.RoundController, loop *game.Loop, mode types.GameMode, dt float64, maxTicks int) (*game.RoundResult, int, error) {
	if err := rc.StartRound(mode); err != nil {
		return nil, 0, err
	}
	for tick := 1; tick <= maxTicks; tick++ {
		loop.Step(dt)
		if rc.State() == game.StateFinished {
			return rc.Result(), tick, nil
		}
		if tick%(60*10) == 0 {
			s := rc.Snapshot().Session
			log.Printf("[Verify] tick=%d score=%d lives=%d remaining=%.1f fruits=%d",
				tick, s.Score, s.Lives, s.RemainingTime, len(rc.Snapshot().Fruits))
		}
	}
	return nil, maxTicks, nil
}

func printResult(out io.Writer, round int, res *game.RoundResult, ticks int, table types.CategoryTable) {
	if res == nil {
		fmt.Fprintf(out, "round %d: still running after %d ticks\n", round, ticks)
		return
	}
	fmt.Fprintf(out, "round %d: mode=%s score=%d ticks=%d missed=%d best_combo=%d\n",
		round, res.Mode, res.Score, ticks, res.Stats.Missed, res.Stats.BestCombo)

	var parts []string
	for _, c := range types.AllCategories() {
		if n := res.Stats.SlicedCount(c); n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d(%+d)", c, n, n*table.Get(c).Score))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "none")
	}
	fmt.Fprintf(out, "  sliced: %s\n", strings.Join(parts, " "))
}
