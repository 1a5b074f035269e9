package main

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/tracker"
	"github.com/gonewx/slicehero/pkg/types"
)

// commandPoster 接收状态机命令（由 game.Loop 实现）
type commandPoster interface {
	Post(cmd game.Command) bool
}

// inputHandler 在事件 goroutine 中把终端事件转成指针采样和状态机命令
//
// 所有对状态机和设置的修改都通过 Post 交给调度循环执行。
// pointer 为 nil 时（手部追踪模式）鼠标只用于点击。
type inputHandler struct {
	loop     commandPoster
	pointer  *game.LatestPointer
	settings *game.SettingsManager
	quit     func()

	canvasW, canvasH float64
	grid             grid
	buttonDown       bool
}

func newInputHandler(loop commandPoster, pointer *game.LatestPointer, settings *game.SettingsManager,
	quit func(), canvasW, canvasH float64) *inputHandler {
	return &inputHandler{
		loop:     loop,
		pointer:  pointer,
		settings: settings,
		quit:     quit,
		canvasW:  canvasW,
		canvasH:  canvasH,
		grid:     newGrid(80, 24, canvasW, canvasH),
	}
}

// pump 阻塞读取事件直到屏幕关闭或收到退出键
func (h *inputHandler) pump(screen tcell.Screen) {
	cols, rows := screen.Size()
	h.resize(cols, rows)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !h.handle(ev) {
			h.quit()
			return
		}
	}
}

func (h *inputHandler) resize(cols, rows int) {
	h.grid = newGrid(cols, rows, h.canvasW, h.canvasH)
}

// handle 处理单个事件，返回 false 表示退出
func (h *inputHandler) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.resize(ev.Size())
	case *tcell.EventMouse:
		if h.pointer != nil {
			col, row := ev.Position()
			h.pointer.Update(h.grid.toCanvas(col, row))
		}
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !h.buttonDown {
			h.post(tapCommand(h.settings))
		}
		h.buttonDown = down
	case *tcell.EventKey:
		return h.handleKey(ev)
	}
	return true
}

func (h *inputHandler) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		h.post(func(rc *game.RoundController) error { return rc.AcknowledgeEnd() })
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case '1':
		h.post(startCommand(h.settings, types.ModeTimeAttack))
	case '2':
		h.post(startCommand(h.settings, types.ModeSurvival))
	case 'r', 'R':
		h.post(func(rc *game.RoundController) error { return rc.Restart() })
	case 'm', 'M':
		settings := h.settings
		h.post(func(*game.RoundController) error {
			enabled := !settings.GetSettings().SoundEnabled
			settings.SetSoundEnabled(enabled)
			log.Printf("[Input] Sound enabled: %v", enabled)
			return nil
		})
	}
	return true
}

func (h *inputHandler) post(cmd game.Command) {
	h.loop.Post(cmd)
}

// startCommand 以指定模式开局并记住模式
func startCommand(settings *game.SettingsManager, mode types.GameMode) game.Command {
	return func(rc *game.RoundController) error {
		if err := rc.StartRound(mode); err != nil {
			return err
		}
		settings.SetLastMode(mode)
		return nil
	}
}

// tapCommand 点击：菜单上以上次的模式开局，结算界面上再来一局，其它状态忽略
func tapCommand(settings *game.SettingsManager) game.Command {
	return func(rc *game.RoundController) error {
		switch rc.State() {
		case game.StateReady:
			return rc.StartRound(settings.GetSettings().LastMode)
		case game.StateFinished:
			return rc.Restart()
		}
		return nil
	}
}

// forwardTrackerStatus 把追踪端的就绪状态变化转成状态机命令，直到 ctx 取消
func forwardTrackerStatus(ctx context.Context, events <-chan tracker.StatusEvent, loop commandPoster) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			loop.Post(func(rc *game.RoundController) error {
				rc.SetSourceReady(ev.Ready, ev.Message)
				return nil
			})
		}
	}
}
