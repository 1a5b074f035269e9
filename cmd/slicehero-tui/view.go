package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/hud"
	"github.com/gonewx/slicehero/pkg/types"
)

// termView 把快照画到终端上，实现 game.RenderSink
//
// Present 在调度循环的 goroutine 中调用，可以安全读取 RoundController。
type termView struct {
	screen       tcell.Screen
	controller   *game.RoundController
	leaderboard  *game.LeaderboardManager
	sound        *soundBoard
	settings     *game.SettingsManager
	table        types.CategoryTable
	canvasW      float64
	canvasH      float64
	maxLives     int
	roundSeconds float64
}

// Present 实现 game.RenderSink
func (v *termView) Present(snap ecs.Snapshot) {
	v.sound.PlayFeedback(snap.Events)
	mode := v.controller.Mode()
	if v.controller.State() == game.StateReady {
		mode = v.settings.GetSettings().LastMode
	}

	view := hud.View{
		Snapshot:     snap,
		State:        v.controller.State(),
		Mode:         mode,
		Message:      v.controller.Message(),
		Result:       v.controller.Result(),
		MaxLives:     v.maxLives,
		RoundSeconds: v.roundSeconds,
		Muted:        !v.settings.GetSettings().SoundEnabled,
	}
	if v.leaderboard != nil {
		view.HighScores = v.leaderboard.TopForMode(view.Mode, hud.HighScoreRows)
	}
	v.draw(view)
}

func (v *termView) draw(view hud.View) {
	cols, rows := v.screen.Size()
	g := newGrid(cols, rows, v.canvasW, v.canvasH)
	v.screen.Clear()

	switch view.State {
	case game.StateIdle:
		msg := view.Message
		if msg == "" {
			msg = "STARTING POINTER..."
		}
		v.centered(g, rows/2, msg, hud.ColorAccent)
	case game.StateReady:
		v.drawKnife(g, view.Snapshot.Trail, false)
		v.drawMenu(g, view)
	case game.StatePlaying:
		v.drawWorld(g, view.Snapshot)
		for i, b := range hud.Banners(view.Snapshot.Session) {
			v.centered(g, 2+i, b, hud.BannerColor(b))
		}
		v.drawKnife(g, view.Snapshot.Trail, view.Snapshot.Session.FrenzyTimer > 0)
		v.drawHUD(g, view)
	case game.StateFinished:
		v.drawResult(g, view)
	}
	if view.State != game.StateIdle && view.Message != "" {
		v.centered(g, rows-1, view.Message, hud.ColorWarning)
	}

	v.screen.Show()
}

func (v *termView) drawWorld(g grid, snap ecs.Snapshot) {
	for _, f := range snap.Fruits {
		data := v.table.Get(f.Category)
		style := tcell.StyleDefault.Background(toTcell(data.Color))
		ch := ' '
		switch {
		case f.Category.IsHazard():
			style = tcell.StyleDefault.Foreground(toTcell(hud.ColorWarning)).Background(tcell.ColorDarkGray)
			ch = 'X'
		case f.Category.IsChill():
			style = style.Foreground(tcell.ColorWhite)
			ch = '*'
		case f.Category.IsFrenzy():
			style = style.Foreground(tcell.ColorWhite)
			ch = '$'
		}
		for _, c := range g.cellsInCircle(f.X, f.Y, hud.FruitDrawRadius(f)) {
			v.screen.SetContent(c[0], c[1], ch, nil, style)
		}
	}

	for _, p := range snap.Particles {
		col, row := g.toCell(p.X, p.Y)
		if g.contains(col, row) {
			v.screen.SetContent(col, row, '.', nil, tcell.StyleDefault.Foreground(fade(p.Color, p.Life)))
		}
	}

	for _, t := range snap.Texts {
		col, row := g.toCell(t.X, t.Y)
		v.text(g, col-len(t.Text)/2, row, t.Text, tcell.StyleDefault.Foreground(fade(t.Color, t.Life)).Bold(true))
	}
}

func (v *termView) drawKnife(g grid, trail components.PointerTrailComponent, frenzy bool) {
	if !trail.Valid {
		return
	}
	n := len(trail.Samples)
	for i := 1; i < n; i++ {
		c := hud.TrailColor(i, n, frenzy)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
			int32(c.R)*int32(c.A)/255, int32(c.G)*int32(c.A)/255, int32(c.B)*int32(c.A)/255))
		for _, cell := range g.lineCells(trail.Samples[i-1], trail.Samples[i]) {
			v.screen.SetContent(cell[0], cell[1], '#', nil, style)
		}
	}

	col, row := g.toCell(trail.X, trail.Y)
	if g.contains(col, row) {
		v.screen.SetContent(col, row, '/', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	}
}

func (v *termView) drawHUD(g grid, view hud.View) {
	session := view.Snapshot.Session
	v.text(g, 1, 0, fmt.Sprintf("SCORE %d", session.Score), tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	if session.Mode == types.ModeTimeAttack {
		clock := hud.FormatClock(session.RemainingTime)
		v.text(g, g.cols-len(clock)-1, 0, clock,
			tcell.StyleDefault.Foreground(toTcell(hud.ClockColor(session.RemainingTime))).Bold(true))
		return
	}

	hearts := max(view.MaxLives, session.Lives)
	for i := 0; i < hearts; i++ {
		style := tcell.StyleDefault.Foreground(toTcell(hud.ColorHeartOff))
		if i < session.Lives {
			style = tcell.StyleDefault.Foreground(toTcell(hud.ColorWarning))
		}
		v.screen.SetContent(g.cols-2*(hearts-i), 0, '♥', nil, style)
	}
}

func (v *termView) drawMenu(g grid, view hud.View) {
	top := max(g.rows/2-6, 0)
	v.centered(g, top, "SLICE HERO", hud.ColorAccent)
	for i, line := range hud.MenuLines(view.Mode, view.RoundSeconds, view.MaxLives) {
		v.centered(g, top+2+i, line, hud.ColorText)
	}
	v.centered(g, top+7, "[Q] QUIT", hud.ColorMuted)
	v.drawScores(g, view.HighScores, nil, top+9)
}

func (v *termView) drawResult(g grid, view hud.View) {
	top := max(g.rows/2-6, 0)
	score, mode := view.Snapshot.Session.Score, view.Mode
	if view.Result != nil {
		score, mode = view.Result.Score, view.Result.Mode
	}
	v.centered(g, top, hud.EndReason(mode), hud.ColorGold)
	v.centered(g, top+2, fmt.Sprintf("FINAL SCORE %d", score), hud.ColorText)
	if view.Result != nil {
		v.centered(g, top+3, hud.ResultSummary(*view.Result), hud.ColorMuted)
	}
	v.drawScores(g, view.HighScores, view.Result, top+5)
	v.centered(g, top+10, "[R] PLAY AGAIN   [ENTER] MENU   [Q] QUIT", hud.ColorText)
}

func (v *termView) drawScores(g grid, entries []game.LeaderboardEntry, result *game.RoundResult, top int) {
	if len(entries) == 0 {
		return
	}
	v.centered(g, top, "HIGH SCORES", hud.ColorAccent)
	for i, line := range hud.ScoreLines(entries) {
		v.centered(g, top+1+i, line, hud.ScoreColor(entries[i], result))
	}
}

func (v *termView) centered(g grid, row int, s string, c color.RGBA) {
	v.text(g, (g.cols-len(s))/2, row, s, tcell.StyleDefault.Foreground(toTcell(c)))
}

// text 从 (col, row) 开始写一行 ASCII 文字，超出屏幕的部分被裁掉
func (v *termView) text(g grid, col, row int, s string, style tcell.Style) {
	for i, r := range s {
		if g.contains(col+i, row) {
			v.screen.SetContent(col+i, row, r, nil, style)
		}
	}
}
