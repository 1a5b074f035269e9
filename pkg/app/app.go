// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"net"

	sfx "github.com/gonewx/slicehero/internal/audio"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/hud"
	"github.com/gonewx/slicehero/pkg/render"
	"github.com/gonewx/slicehero/pkg/sound"
	"github.com/gonewx/slicehero/pkg/systems"
	"github.com/gonewx/slicehero/pkg/tracker"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Game 游戏配置，为 nil 时从嵌入资源加载 data/game.yaml
	Game *config.GameConfig
	// Seed 随机种子，非 0 时覆盖配置中的值
	Seed int64
	// Mode 启动后直接开局的模式（"time" / "survival"），为空则停在菜单
	Mode string
	// Storage 本地存储，为 nil 时设置和排行榜只保存在内存中
	Storage *gdata.Manager
	// TrackerAddr 手部追踪 WebSocket 监听地址，为空时使用鼠标/触屏
	TrackerAddr string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg         *config.GameConfig
	controller  *game.RoundController
	renderer    *render.Renderer
	audio       *sound.Manager
	settings    *game.SettingsManager
	leaderboard *game.LeaderboardManager
	pointer     game.PointerSource
	tracker     *tracker.Server // 为 nil 时使用鼠标/触屏
	stopTracker context.CancelFunc
	deltaTime   float64
	snapshot    ecs.Snapshot
	verbose     bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，若 cfg.Game 为 nil，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg := cfg.Game
	if gameCfg == nil {
		loaded, err := config.LoadGameConfig(config.DefaultGameConfigPath)
		if err != nil {
			return nil, fmt.Errorf("游戏配置加载失败: %w", err)
		}
		gameCfg = loaded
	}
	log.Printf("[Config] Loaded game config: %.0fx%.0f @ %d TPS",
		gameCfg.Screen.Width, gameCfg.Screen.Height, gameCfg.Screen.TPS)

	// 初始化音频上下文
	audioContext := audio.NewContext(int(sfx.SampleRate))

	a, err := newApp(cfg, gameCfg, audioContext)
	if err != nil {
		return nil, err
	}
	if cfg.TrackerAddr != "" {
		if _, err := a.startTracker(cfg.TrackerAddr); err != nil {
			return nil, fmt.Errorf("手部追踪服务启动失败: %w", err)
		}
	} else {
		a.pointer = NewCursorPointer(gameCfg.Screen.Size())
		a.controller.SetSourceReady(true, "")
	}

	if cfg.Mode != "" {
		mode, ok := types.ParseGameMode(cfg.Mode)
		if !ok {
			return nil, fmt.Errorf("unknown game mode: %s", cfg.Mode)
		}
		if err := a.controller.StartRound(mode); err != nil {
			return nil, fmt.Errorf("failed to start round: %w", err)
		}
	}
	return a, nil
}

// newApp 组装各个管理器，不访问窗口和输入设备
func newApp(cfg Config, gameCfg *config.GameConfig, audioContext *audio.Context) (*App, error) {
	seed := gameCfg.Spawn.Seed
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}

	sim, err := systems.NewSimulation(gameCfg, systems.NewRand(seed))
	if err != nil {
		return nil, fmt.Errorf("模拟初始化失败: %w", err)
	}

	settings := game.NewSettingsManager(cfg.Storage)
	leaderboard := game.NewLeaderboardManager(cfg.Storage, gameCfg.Session.LeaderboardSize)
	controller := game.NewRoundController(sim, leaderboard)
	audioManager := sound.NewManager(audioContext, settings)
	log.Printf("[App] Sound manager initialized")

	width, height := gameCfg.Screen.Size()
	a := &App{
		cfg:         gameCfg,
		controller:  controller,
		renderer:    render.NewRenderer(width, height, sim.Table()),
		audio:       audioManager,
		settings:    settings,
		leaderboard: leaderboard,
		deltaTime:   1.0 / float64(gameCfg.Screen.TPS),
		snapshot:    sim.Snapshot(),
		verbose:     cfg.Verbose,
	}
	controller.OnFinish = a.onRoundFinished
	return a, nil
}

// startTracker 启动 WebSocket 追踪接收端，收到第一帧位置前停在 idle
func (a *App) startTracker(addr string) (net.Addr, error) {
	srv := tracker.NewServer(a.cfg.Screen.Width, a.cfg.Screen.Height)
	ctx, cancel := context.WithCancel(context.Background())
	bound, err := tracker.Listen(ctx, addr, srv)
	if err != nil {
		cancel()
		return nil, err
	}
	a.tracker = srv
	a.stopTracker = cancel
	a.pointer = srv.Pointer()
	ready, message := srv.Status()
	a.controller.SetSourceReady(ready, message)
	return bound, nil
}

// pollTracker 把追踪端的状态变化交给状态机
func (a *App) pollTracker() {
	if a.tracker == nil {
		return
	}
	for {
		select {
		case ev := <-a.tracker.Events():
			a.controller.SetSourceReady(ev.Ready, ev.Message)
		default:
			return
		}
	}
}

// Close 释放后台资源
func (a *App) Close() {
	if a.stopTracker != nil {
		a.stopTracker()
		a.stopTracker = nil
	}
}

func (a *App) onRoundFinished(result game.RoundResult) {
	a.audio.PlayEffect(sfx.EffectRoundEnd)
	a.settings.SetLastMode(result.Mode)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.cfg.Screen.Size()
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.pollTracker()
	a.applyKeys(inpututil.IsKeyJustPressed)
	a.applyTap(justTapped())

	p, ok := a.pointer.Sample()
	a.tick(systems.StepInput{Pointer: p, HasPointer: ok, DeltaTime: a.deltaTime})
	return nil
}

// tick 推进状态机并播放本帧的反馈音效
func (a *App) tick(in systems.StepInput) {
	a.controller.Tick(in)
	a.snapshot = a.controller.Snapshot()
	a.audio.PlayFeedback(a.snapshot.Events)
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
}

// applyKeys 处理菜单和结算界面的按键
//
// 参数:
//   - justPressed: 判断按键是否在本帧按下
func (a *App) applyKeys(justPressed func(ebiten.Key) bool) {
	switch a.controller.State() {
	case game.StateReady, game.StateFinished:
		if justPressed(ebiten.KeyDigit1) || justPressed(ebiten.KeyNumpad1) {
			a.start(types.ModeTimeAttack)
			return
		}
		if justPressed(ebiten.KeyDigit2) || justPressed(ebiten.KeyNumpad2) {
			a.start(types.ModeSurvival)
			return
		}
	}

	if a.controller.State() == game.StateFinished {
		switch {
		case justPressed(ebiten.KeyR):
			if err := a.controller.Restart(); err != nil {
				log.Printf("[App] Restart rejected: %v", err)
			}
		case justPressed(ebiten.KeyEnter), justPressed(ebiten.KeyEscape):
			if err := a.controller.AcknowledgeEnd(); err != nil {
				log.Printf("[App] Acknowledge rejected: %v", err)
			}
		}
	}

	if justPressed(ebiten.KeyM) {
		enabled := !a.settings.GetSettings().SoundEnabled
		a.settings.SetSoundEnabled(enabled)
		log.Printf("[App] Sound enabled: %v", enabled)
	}
}

// applyTap 点击或触摸：菜单上以上次的模式开局，结算界面上再来一局
// 移动端没有键盘，只能靠它切换状态
func (a *App) applyTap(tapped bool) {
	if !tapped {
		return
	}
	switch a.controller.State() {
	case game.StateReady:
		a.start(a.settings.GetSettings().LastMode)
	case game.StateFinished:
		if err := a.controller.Restart(); err != nil {
			log.Printf("[App] Restart rejected: %v", err)
		}
	}
}

func (a *App) start(mode types.GameMode) {
	if err := a.controller.StartRound(mode); err != nil {
		log.Printf("[App] Start rejected: %v", err)
		return
	}
	a.settings.SetLastMode(mode)
}

// view 组装渲染层需要的只读数据
func (a *App) view() hud.View {
	mode := a.controller.Mode()
	if a.controller.State() == game.StateReady {
		mode = a.settings.GetSettings().LastMode
	}
	return hud.View{
		Snapshot:     a.snapshot,
		State:        a.controller.State(),
		Mode:         mode,
		Message:      a.controller.Message(),
		Result:       a.controller.Result(),
		HighScores:   a.leaderboard.TopForMode(mode, hud.HighScoreRows),
		MaxLives:     a.cfg.Session.MaxLives,
		RoundSeconds: a.cfg.Session.RoundSeconds,
		Muted:        !a.settings.GetSettings().SoundEnabled,
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.view())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Screen.Size()
}

// GameConfig 返回使用中的游戏配置
func (a *App) GameConfig() *config.GameConfig {
	return a.cfg
}

// Settings 返回设置管理器
// 用于在游戏关闭时保存设置
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
