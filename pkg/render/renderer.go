package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/hud"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/gonewx/slicehero/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debug 字体的字形尺寸
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// maxCachedLabels 文字缓存上限，超过后整体清空
const maxCachedLabels = 256

// 刀身配色
var (
	colorBlade      = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorBladeEdge  = color.RGBA{0x99, 0x99, 0x99, 0xff}
	colorHandle     = color.RGBA{0x33, 0x33, 0x33, 0xff}
	colorHandleTrim = color.RGBA{0xd4, 0xaf, 0x37, 0xff}
	colorPanel      = color.NRGBA{0x00, 0x00, 0x00, 0x99}
)

// Renderer 用 ebiten 矢量图元绘制游戏画面
//
// 水果用类别颜色的圆表示，文字用 ebitenutil 的调试字体预渲染后缩放上色。
type Renderer struct {
	width  float32
	height float32
	table  types.CategoryTable

	labels map[string]*ebiten.Image
}

// NewRenderer 创建渲染器
//
// 参数:
//   - width, height: 逻辑画布尺寸
//   - table: 类别数据表（提供颜色）
func NewRenderer(width, height int, table types.CategoryTable) *Renderer {
	return &Renderer{
		width:  float32(width),
		height: float32(height),
		table:  table,
		labels: make(map[string]*ebiten.Image),
	}
}

// Draw 绘制一帧
func (r *Renderer) Draw(screen *ebiten.Image, v hud.View) {
	screen.Fill(hud.ColorBackground)

	session := v.Snapshot.Session
	tint := hud.ColorDim
	if v.State == game.StatePlaying {
		tint = hud.SceneTint(session)
	}
	vector.DrawFilledRect(screen, 0, 0, r.width, r.height, tint, false)

	switch v.State {
	case game.StateIdle:
		r.drawIdle(screen, v)
	case game.StateReady:
		r.drawKnife(screen, v.Snapshot.Trail, false)
		r.drawMenu(screen, v)
	case game.StatePlaying:
		r.drawWorld(screen, v)
		r.drawBanners(screen, session)
		r.drawKnife(screen, v.Snapshot.Trail, session.FrenzyTimer > 0)
		r.drawHUD(screen, v)
	case game.StateFinished:
		r.drawWorld(screen, v)
		vector.DrawFilledRect(screen, 0, 0, r.width, r.height, color.NRGBA{0, 0, 0, 0xcc}, false)
		r.drawResult(screen, v)
	}

	// 指针源在开局后出现问题（如追踪端断开）时在底部提示
	if v.State != game.StateIdle && v.Message != "" {
		r.drawLabel(screen, v.Message, float64(r.width)/2, float64(r.height)-40, 1.5, hud.ColorWarning, 1, true)
	}
	if v.Muted {
		r.drawLabel(screen, "MUTED", float64(r.width)-40, float64(r.height)-16, 1, hud.ColorMuted, 1, true)
	}
}

func (r *Renderer) drawWorld(screen *ebiten.Image, v hud.View) {
	for _, f := range v.Snapshot.Fruits {
		r.drawFruit(screen, f)
	}

	for _, p := range v.Snapshot.Particles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size/2),
			utils.WithAlpha(p.Color, p.Life), true)
	}

	for _, t := range v.Snapshot.Texts {
		r.drawLabel(screen, t.Text, t.X, t.Y, 2*hud.TextScale(t.Life), t.Color, t.Life, true)
	}
}

// drawFruit 绘制单个物体，旋转通过表面高光的位置体现
func (r *Renderer) drawFruit(screen *ebiten.Image, f components.FruitComponent) {
	data := r.table.Get(f.Category)
	x, y := float32(f.X), float32(f.Y)
	radius := float32(hud.FruitDrawRadius(f))

	switch {
	case f.Category.IsChill():
		vector.DrawFilledCircle(screen, x, y, radius+10, utils.WithAlpha(data.Color, 0.3), true)
	case f.Category.IsFrenzy():
		vector.DrawFilledCircle(screen, x, y, radius+12, utils.WithAlpha(data.Color, 0.35), true)
	}

	vector.DrawFilledCircle(screen, x, y, radius, data.Color, true)

	cos, sin := float32(math.Cos(f.Rotation)), float32(math.Sin(f.Rotation))
	if f.Category.IsHazard() {
		// 炸弹：灰色描边 + 随旋转摆动的引信
		vector.StrokeCircle(screen, x, y, radius, 3, colorBladeEdge, true)
		fx, fy := x+sin*radius, y-cos*radius
		tx, ty := x+sin*(radius+14), y-cos*(radius+14)
		vector.StrokeLine(screen, fx, fy, tx, ty, 3, colorHandleTrim, true)
		vector.DrawFilledCircle(screen, tx, ty, 4, hud.ColorWarning, true)
		return
	}

	hx, hy := x+cos*radius*0.45, y+sin*radius*0.45
	vector.DrawFilledCircle(screen, hx, hy, radius*0.25, color.NRGBA{0xff, 0xff, 0xff, 0x70}, true)
}

// drawKnife 绘制轨迹拖尾和刀身
func (r *Renderer) drawKnife(screen *ebiten.Image, trail components.PointerTrailComponent, frenzy bool) {
	if !trail.Valid || trail.X < 0 || trail.Y < 0 {
		return
	}

	n := len(trail.Samples)
	for i := 1; i < n; i++ {
		a, b := trail.Samples[i-1], trail.Samples[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			6, hud.TrailColor(i, n, frenzy), true)
	}

	// 刀尖方向 = 运动方向旋转 45 度后的 -Y 轴
	rot := trail.Angle + math.Pi/4
	dirX, dirY := float32(math.Sin(rot)), float32(-math.Cos(rot))
	x, y := float32(trail.X), float32(trail.Y)

	tipX, tipY := x+dirX*45, y+dirY*45
	vector.StrokeLine(screen, x, y, tipX, tipY, 9, colorBladeEdge, true)
	vector.StrokeLine(screen, x, y, tipX, tipY, 6, colorBlade, true)

	hx, hy := x-dirX*25, y-dirY*25
	vector.StrokeLine(screen, x, y, hx, hy, 10, colorHandle, true)
	for _, d := range []float32{8, 16} {
		vector.StrokeLine(screen, x-dirX*d, y-dirY*d, x-dirX*(d+3), y-dirY*(d+3), 10, colorHandleTrim, true)
	}
}

func (r *Renderer) drawBanners(screen *ebiten.Image, session components.SessionState) {
	cx := float64(r.width) / 2
	for i, b := range hud.Banners(session) {
		r.drawLabel(screen, b, cx, 100+float64(i)*40, 3, hud.BannerColor(b), 1, true)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, v hud.View) {
	session := v.Snapshot.Session
	vector.DrawFilledRect(screen, 16, 16, 160, 48, colorPanel, false)
	r.drawLabel(screen, fmt.Sprintf("%d", session.Score), 96, 40, 3, hud.ColorText, 1, true)

	right := float64(r.width) - 16
	if session.Mode == types.ModeTimeAttack {
		vector.DrawFilledRect(screen, float32(right)-160, 16, 160, 48, colorPanel, false)
		r.drawLabel(screen, hud.FormatClock(session.RemainingTime), right-80, 40, 3,
			hud.ClockColor(session.RemainingTime), 1, true)
		return
	}

	maxLives := max(v.MaxLives, session.Lives)
	width := float32(maxLives*36 + 16)
	vector.DrawFilledRect(screen, float32(right)-width, 16, width, 48, colorPanel, false)
	for i := 0; i < maxLives; i++ {
		cx := float32(right) - width + 26 + float32(i)*36
		if i < session.Lives {
			vector.DrawFilledCircle(screen, cx, 40, 13, hud.ColorWarning, true)
		} else {
			vector.DrawFilledCircle(screen, cx, 40, 9, hud.ColorHeartOff, true)
		}
	}
}

func (r *Renderer) drawIdle(screen *ebiten.Image, v hud.View) {
	msg := v.Message
	if msg == "" {
		msg = "STARTING POINTER..."
	}
	r.drawLabel(screen, msg, float64(r.width)/2, float64(r.height)/2, 2, hud.ColorAccent, 1, true)
}

func (r *Renderer) drawMenu(screen *ebiten.Image, v hud.View) {
	cx, cy := float64(r.width)/2, float64(r.height)/2
	r.drawLabel(screen, "SLICE HERO", cx, cy-160, 5, hud.ColorAccent, 1, true)

	lines := hud.MenuLines(v.Mode, v.RoundSeconds, v.MaxLives)
	r.drawLabel(screen, lines[0], cx, cy-90, 1.5, hud.ColorMuted, 1, true)
	r.drawLabel(screen, lines[1], cx, cy-30, 2, hud.ColorText, 1, true)
	r.drawLabel(screen, lines[2], cx, cy+10, 2, hud.ColorText, 1, true)
	r.drawLabel(screen, lines[3]+"   [F11] FULLSCREEN", cx, cy+60, 1.5, hud.ColorMuted, 1, true)
	r.drawScores(screen, v.HighScores, nil, cx, cy+110)
}

func (r *Renderer) drawResult(screen *ebiten.Image, v hud.View) {
	cx, cy := float64(r.width)/2, float64(r.height)/2
	score := v.Snapshot.Session.Score
	mode := v.Mode
	if v.Result != nil {
		score, mode = v.Result.Score, v.Result.Mode
	}

	r.drawLabel(screen, hud.EndReason(mode), cx, cy-170, 2, hud.ColorGold, 1, true)
	r.drawLabel(screen, fmt.Sprintf("%d", score), cx, cy-110, 7, hud.ColorText, 1, true)
	r.drawLabel(screen, "FINAL SCORE", cx, cy-60, 1.5, hud.ColorMuted, 1, true)
	if v.Result != nil {
		r.drawLabel(screen, hud.ResultSummary(*v.Result), cx, cy-30, 1.5, hud.ColorMuted, 1, true)
	}
	r.drawScores(screen, v.HighScores, v.Result, cx, cy+10)
	r.drawLabel(screen, "[R] / TAP  PLAY AGAIN   [ENTER] MENU", cx, cy+170, 2, hud.ColorText, 1, true)
}

func (r *Renderer) drawScores(screen *ebiten.Image, entries []game.LeaderboardEntry, result *game.RoundResult, cx, top float64) {
	if len(entries) == 0 {
		return
	}
	r.drawLabel(screen, "HIGH SCORES", cx, top, 1.5, hud.ColorAccent, 1, true)
	for i, line := range hud.ScoreLines(entries) {
		r.drawLabel(screen, line, cx, top+26+float64(i)*22, 1.5, hud.ScoreColor(entries[i], result), 1, true)
	}
}

// drawLabel 绘制一行文字
//
// 参数:
//   - x, y: 位置；centered 为 true 时为文字中心，否则为左上角
//   - scale: 相对调试字体的缩放
//   - alpha: 透明度 0~1
func (r *Renderer) drawLabel(screen *ebiten.Image, text string, x, y, scale float64, col color.RGBA, alpha float64, centered bool) {
	if text == "" || alpha <= 0 {
		return
	}
	img := r.label(text)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	if centered {
		w := float64(img.Bounds().Dx()) * scale
		h := float64(img.Bounds().Dy()) * scale
		op.GeoM.Translate(x-w/2, y-h/2)
	} else {
		op.GeoM.Translate(x, y)
	}
	op.ColorScale.ScaleWithColor(col)
	op.ColorScale.ScaleAlpha(float32(utils.Clamp(alpha, 0, 1)))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// label 返回缓存的文字图像（白色调试字体）
func (r *Renderer) label(text string) *ebiten.Image {
	if img, ok := r.labels[text]; ok {
		return img
	}
	if len(r.labels) >= maxCachedLabels {
		for k, img := range r.labels {
			img.Deallocate()
			delete(r.labels, k)
		}
	}

	img := ebiten.NewImage(len(text)*glyphWidth+2, glyphHeight)
	ebitenutil.DebugPrint(img, text)
	r.labels[text] = img
	return img
}
