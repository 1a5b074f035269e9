package app

import (
	"github.com/gonewx/slicehero/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// CursorPointer 把鼠标或触摸位置作为刀刃采样
//
// 同时支持鼠标和触摸输入，优先使用触摸。
// 指针静止时仍然每帧给出采样（零长度线段不会切中任何物体）；
// 指针离开画布或手指抬起时不给出采样，轨迹保留最后一段。
type CursorPointer struct {
	width, height int
}

// NewCursorPointer 创建指针源
//
// 参数:
//   - width, height: 逻辑画布尺寸，超出范围的位置视为无采样
func NewCursorPointer(width, height int) *CursorPointer {
	return &CursorPointer{width: width, height: height}
}

// Sample 实现 game.PointerSource
// 只能在 ebiten 的 Update 中调用
func (c *CursorPointer) Sample() (components.Point, bool) {
	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return c.clip(x, y)
	}

	if !ebiten.IsFocused() {
		return components.Point{}, false
	}
	x, y := ebiten.CursorPosition()
	return c.clip(x, y)
}

// clip 画布外的位置不产生采样
func (c *CursorPointer) clip(x, y int) (components.Point, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return components.Point{}, false
	}
	return components.Point{X: float64(x), Y: float64(y)}, true
}

// justTapped 检查本帧是否刚刚发生点击或触摸
func justTapped() bool {
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
