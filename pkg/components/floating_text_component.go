package components

import "image/color"

// FloatingTextComponent 浮动提示文字（得分、扣命、冻结等）
//
// 上浮和衰减不受时间缩放影响，慢动作期间反馈依然清晰。
type FloatingTextComponent struct {
	X, Y  float64
	Text  string
	Color color.RGBA
	Life  float64 // 剩余生命 1.0 -> 0.0
}
