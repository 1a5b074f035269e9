// Package hud 汇总各个前端共用的界面逻辑
//
// 只做纯计算（时间格式、滤镜颜色、轨迹渐变、菜单文案等），不依赖任何图形后端，
// ebiten 渲染器和终端前端都从这里取数据。
package hud

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/gonewx/slicehero/pkg/utils"
)

// 界面配色
var (
	ColorBackground = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	ColorAccent     = color.RGBA{0x00, 0xff, 0xff, 0xff}
	ColorGold       = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	ColorWarning    = color.RGBA{0xef, 0x44, 0x44, 0xff}
	ColorHeartOff   = color.RGBA{0x33, 0x41, 0x55, 0xff}
	ColorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorMuted      = color.RGBA{0x94, 0xa3, 0xb8, 0xff}

	ColorDim       = color.NRGBA{0x00, 0x00, 0x00, 0x66}
	colorChillTint = color.NRGBA{0x00, 0x96, 0xff, 0x33}
)

// 横幅文字
const (
	BannerFrozen = "TIME FROZEN"
	BannerFrenzy = "FRENZY!!!"
)

// HighScoreRows 菜单和结算界面展示的排行榜条数
const HighScoreRows = 3

// lowTimeThreshold 剩余时间低于该值（秒）时倒计时变红
const lowTimeThreshold = 10

// View 渲染一帧需要的全部只读数据
type View struct {
	Snapshot   ecs.Snapshot
	State      game.RoundState
	Mode       types.GameMode
	Message    string
	Result     *game.RoundResult
	HighScores []game.LeaderboardEntry
	MaxLives   int
	// RoundSeconds 限时模式时长（菜单说明用）
	RoundSeconds float64
	Muted        bool
}

// FormatClock 把剩余秒数格式化为 mm:ss，不足一秒的部分向上取整
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Ceil(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ClockColor 倒计时颜色，低于阈值时为警告红
func ClockColor(seconds float64) color.RGBA {
	if seconds < lowTimeThreshold {
		return ColorWarning
	}
	return ColorText
}

// SceneTint 返回整屏滤镜颜色
//
// 寒冰优先于狂热；狂热滤镜随帧数闪烁；都不生效时为普通暗色遮罩。
func SceneTint(session components.SessionState) color.NRGBA {
	switch {
	case session.SlowMotionTimer > 0:
		return colorChillTint
	case session.FrenzyTimer > 0:
		flicker := 0.1 + 0.1*(0.5+0.5*math.Sin(float64(session.Tick)*0.7))
		return utils.WithAlpha(ColorGold, flicker)
	default:
		return ColorDim
	}
}

// Banners 返回当前应显示的横幅（可同时显示两条）
func Banners(session components.SessionState) []string {
	var out []string
	if session.SlowMotionTimer > 0 {
		out = append(out, BannerFrozen)
	}
	if session.FrenzyTimer > 0 {
		out = append(out, BannerFrenzy)
	}
	return out
}

// BannerColor 横幅颜色
func BannerColor(banner string) color.RGBA {
	if banner == BannerFrenzy {
		return ColorGold
	}
	return ColorAccent
}

// TrailColor 轨迹第 i 段的颜色（共 n 段），由透明渐变到青色，狂热时为金色
func TrailColor(i, n int, frenzy bool) color.NRGBA {
	base := ColorAccent
	if frenzy {
		base = ColorGold
	}
	if n <= 1 {
		return utils.WithAlpha(base, 0.9)
	}
	t := float64(i) / float64(n-1)
	return utils.WithAlpha(base, 0.9*t)
}

// TextScale 浮动文字的缩放：出现时略大，随后回落到 1
func TextScale(life float64) float64 {
	age := utils.Clamp(1-life, 0, 1)
	pop := utils.Clamp(age*5, 0, 1)
	return utils.Lerp(1.4, 1, utils.EaseOutCubic(pop))
}

// FruitDrawRadius 绘制半径，巨型水果放大 1.5 倍
func FruitDrawRadius(f components.FruitComponent) float64 {
	if f.Category.IsFrenzy() {
		return f.Radius * 1.5
	}
	return f.Radius
}

// ModeTitle 模式的显示名称
func ModeTitle(mode types.GameMode) string {
	if mode == types.ModeSurvival {
		return "SURVIVAL"
	}
	return "TIME ATTACK"
}

// EndReason 结算界面的结束原因
func EndReason(mode types.GameMode) string {
	if mode == types.ModeSurvival {
		return "OUT OF LIVES"
	}
	return "TIME UP"
}

// MenuLines 菜单文案
//
// 参数:
//   - lastMode: 点击开局时使用的模式
//   - roundSeconds, maxLives: 当前配置，用于模式说明
func MenuLines(lastMode types.GameMode, roundSeconds float64, maxLives int) []string {
	return []string{
		"ICE: SLOW TIME   GIANT: FRENZY   BOMB: PENALTY",
		fmt.Sprintf("[1] TIME ATTACK  %d SECONDS", int(roundSeconds)),
		fmt.Sprintf("[2] SURVIVAL  %d LIVES", maxLives),
		fmt.Sprintf("TAP TO PLAY %s   [M] MUTE", ModeTitle(lastMode)),
	}
}

// ResultSummary 结算界面的统计行
func ResultSummary(result game.RoundResult) string {
	return fmt.Sprintf("SLICED %d   MISSED %d   BEST COMBO %d",
		result.Stats.TotalSliced(), result.Stats.Missed, result.Stats.BestCombo)
}

// ScoreColor 排行榜行颜色，刚结束的这一局高亮
func ScoreColor(e game.LeaderboardEntry, result *game.RoundResult) color.RGBA {
	if result != nil && result.Recorded && e.ID != "" && e.ID == result.ID {
		return ColorGold
	}
	return ColorText
}

// ScoreLines 排行榜行
func ScoreLines(entries []game.LeaderboardEntry) []string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("#%d  %6d  %s", i+1, e.Score, e.Date.Format("2006-01-02")))
	}
	return lines
}
