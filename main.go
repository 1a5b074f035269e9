package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/slicehero/pkg/app"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

// AppName 本地存储使用的应用名
const AppName = "slicehero"

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置 data/game.yaml）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示按时间取种）")
	mode       = flag.String("mode", "", "跳过菜单直接开局: time 或 survival")
	trackerAt  = flag.String("tracker", "", "手部追踪 WebSocket 监听地址（如 :8787），为空时使用鼠标/触屏")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	var gameCfg *config.GameConfig
	if *configPath != "" {
		cfg, err := config.LoadGameConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		gameCfg = cfg
	}

	// gdata 初始化失败时降级为内存存储，游戏仍可运行
	storage, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: 本地存储不可用，成绩不会保存: %v\n", err)
		storage = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Game:        gameCfg,
		Seed:        *seed,
		Mode:        *mode,
		Storage:     storage,
		TrackerAddr: *trackerAt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	screen := gameApp.GameConfig().Screen
	ebiten.SetWindowSize(screen.Size())
	ebiten.SetWindowTitle("Slice Hero")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(screen.TPS)
	ebiten.SetFullscreen(gameApp.Settings().GetSettings().Fullscreen)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Close()

	// 退出前保存设置
	if err := gameApp.Settings().Save(); err != nil {
		log.Printf("[Main] Warning: Failed to save settings: %v", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "游戏异常退出: %v\n", runErr)
		os.Exit(1)
	}
}
