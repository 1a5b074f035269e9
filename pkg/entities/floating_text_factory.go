package entities

import (
	"image/color"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/ecs"
)

// 反馈文字颜色
var (
	ColorPenalty = color.RGBA{0xff, 0x33, 0x33, 0xff}
	ColorFreeze  = color.RGBA{0x00, 0xff, 0xff, 0xff}
	ColorFrenzy  = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	ColorScore   = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// 反馈文字内容
const (
	TextLifeLost = "-1 LIFE"
	TextFreeze   = "FREEZE!"
	TextFrenzy   = "FRENZY!"
)

// NewFloatingText 在 (x, y) 创建一条上浮淡出的文字，初始生命为 1
func NewFloatingText(store *ecs.EntityStore, x, y float64, text string, col color.RGBA) {
	store.AddText(&components.FloatingTextComponent{
		X:     x,
		Y:     y,
		Text:  text,
		Color: col,
		Life:  1.0,
	})
}
