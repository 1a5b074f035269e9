// slicehero-tui 在终端里运行切水果，鼠标就是刀
//
// 用法:
//
//	go run ./cmd/slicehero-tui [--mode time|survival] [--seed N] [--config path] [--log file] [--tracker :8787]
//
// 终端需要支持鼠标移动事件（xterm 兼容终端）；指定 --tracker 时改由手部追踪端提供刀的位置。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	sfx "github.com/gonewx/slicehero/internal/audio"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/systems"
	"github.com/gonewx/slicehero/pkg/tracker"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

var (
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示按时间取种）")
	mode       = flag.String("mode", "", "跳过菜单直接开局: time 或 survival")
	logPath    = flag.String("log", "", "日志文件路径（终端被界面占用，默认不输出日志）")
	trackerAt  = flag.String("tracker", "", "手部追踪 WebSocket 监听地址（如 :8787），为空时使用鼠标")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "slicehero-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	closeLog, err := setupLog(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		if cfg, err = config.LoadGameConfigFile(*configPath); err != nil {
			return err
		}
	}
	if *seed != 0 {
		cfg.Spawn.Seed = *seed
	}

	sim, err := systems.NewSimulation(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}

	storage, err := gdata.Open(gdata.Config{AppName: "slicehero"})
	if err != nil {
		log.Printf("[Main] Warning: storage unavailable: %v", err)
		storage = nil
	}
	settings := game.NewSettingsManager(storage)
	leaderboard := game.NewLeaderboardManager(storage, cfg.Session.LeaderboardSize)
	controller := game.NewRoundController(sim, leaderboard)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	sound := newSoundBoard(settings)
	defer sound.Close()

	controller.OnFinish = func(result game.RoundResult) {
		sound.Play(sfx.EffectRoundEnd)
		settings.SetLastMode(result.Mode)
		if err := settings.Save(); err != nil {
			log.Printf("[Main] Warning: Failed to save settings: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pointer := &game.LatestPointer{}
	mouse := pointer
	var hand *tracker.Server
	switch {
	case *trackerAt != "":
		hand = tracker.NewServer(cfg.Screen.Width, cfg.Screen.Height)
		if _, err := tracker.Listen(ctx, *trackerAt, hand); err != nil {
			return fmt.Errorf("failed to start tracker: %w", err)
		}
		pointer, mouse = hand.Pointer(), nil
		controller.SetSourceReady(hand.Status())
	case screen.HasMouse():
		controller.SetSourceReady(true, "")
	default:
		controller.SetSourceReady(false, "TERMINAL HAS NO MOUSE SUPPORT")
	}

	if *mode != "" {
		m, ok := types.ParseGameMode(*mode)
		if !ok {
			return fmt.Errorf("unknown game mode: %s", *mode)
		}
		if err := controller.StartRound(m); err != nil {
			return err
		}
	}

	view := &termView{
		screen:       screen,
		controller:   controller,
		leaderboard:  leaderboard,
		sound:        sound,
		settings:     settings,
		table:        sim.Table(),
		canvasW:      cfg.Screen.Width,
		canvasH:      cfg.Screen.Height,
		maxLives:     cfg.Session.MaxLives,
		roundSeconds: cfg.Session.RoundSeconds,
	}

	loop := game.NewLoop(controller, pointer, view, cfg.Screen.TPS)

	input := newInputHandler(loop, mouse, settings, cancel, cfg.Screen.Width, cfg.Screen.Height)
	go input.pump(screen)
	if hand != nil {
		go forwardTrackerStatus(ctx, hand.Events(), loop)
	}

	err = loop.Run(ctx)
	if err := settings.Save(); err != nil {
		log.Printf("[Main] Warning: Failed to save settings: %v", err)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// setupLog 把日志写到文件，未指定时丢弃
func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}
