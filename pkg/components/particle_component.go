package components

import "image/color"

// ParticleComponent 切割爆炸粒子
// 纯表现数据，不反馈到模拟状态
type ParticleComponent struct {
	X, Y   float64
	VX, VY float64

	Life  float64    // 剩余生命 1.0 -> 0.0，<= 0 时清理
	Color color.RGBA // 粒子颜色
	Size  float64    // 直径（像素）
}
