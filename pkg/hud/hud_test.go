package hud

import (
	"testing"
	"time"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{60, "01:00"},
		{59.2, "01:00"},
		{58.9, "00:59"},
		{9.5, "00:10"},
		{0.01, "00:01"},
		{0, "00:00"},
		{-3, "00:00"},
		{125, "02:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds), "FormatClock(%v)", tt.seconds)
	}
}

func TestClockColor(t *testing.T) {
	assert.Equal(t, ColorWarning, ClockColor(9.9))
	assert.Equal(t, ColorText, ClockColor(10))
}

func TestSceneTintPriority(t *testing.T) {
	both := components.SessionState{SlowMotionTimer: 10, FrenzyTimer: 10}
	assert.Equal(t, colorChillTint, SceneTint(both), "chill tint wins over frenzy")

	frenzy := SceneTint(components.SessionState{FrenzyTimer: 5})
	assert.Equal(t, uint8(0xff), frenzy.R)
	assert.Equal(t, uint8(0xd7), frenzy.G)
	assert.GreaterOrEqual(t, frenzy.A, uint8(25))
	assert.LessOrEqual(t, frenzy.A, uint8(52))

	assert.Equal(t, ColorDim, SceneTint(components.SessionState{}))
}

func TestBanners(t *testing.T) {
	assert.Empty(t, Banners(components.SessionState{}))
	assert.Equal(t, []string{BannerFrozen}, Banners(components.SessionState{SlowMotionTimer: 1}))
	assert.Equal(t, []string{BannerFrozen, BannerFrenzy},
		Banners(components.SessionState{SlowMotionTimer: 1, FrenzyTimer: 1}))
}

func TestTrailColorGradient(t *testing.T) {
	first := TrailColor(0, 8, false)
	last := TrailColor(7, 8, false)
	assert.Equal(t, uint8(0), first.A, "oldest segment is transparent")
	assert.Equal(t, uint8(229), last.A)
	assert.Equal(t, uint8(0xff), last.B)

	gold := TrailColor(7, 8, true)
	assert.Equal(t, uint8(0xd7), gold.G)
	assert.Equal(t, uint8(0x00), gold.B)
}

func TestTextScaleSettles(t *testing.T) {
	assert.InDelta(t, 1.4, TextScale(1), 1e-9)
	assert.InDelta(t, 1.0, TextScale(0.5), 1e-9)
	assert.InDelta(t, 1.0, TextScale(0), 1e-9)
}

func TestFruitDrawRadius(t *testing.T) {
	giant := components.FruitComponent{Category: types.CategoryGiant, Radius: 60}
	apple := components.FruitComponent{Category: types.CategoryApple, Radius: 35}
	assert.Equal(t, 90.0, FruitDrawRadius(giant))
	assert.Equal(t, 35.0, FruitDrawRadius(apple))
}

func TestModeLabels(t *testing.T) {
	assert.Equal(t, "TIME UP", EndReason(types.ModeTimeAttack))
	assert.Equal(t, "OUT OF LIVES", EndReason(types.ModeSurvival))
	assert.Equal(t, "SURVIVAL", ModeTitle(types.ModeSurvival))
}

func TestMenuLinesFollowConfig(t *testing.T) {
	lines := MenuLines(types.ModeSurvival, 90, 5)
	assert.Len(t, lines, 4)
	assert.Equal(t, "[1] TIME ATTACK  90 SECONDS", lines[1])
	assert.Equal(t, "[2] SURVIVAL  5 LIVES", lines[2])
	assert.Contains(t, lines[3], "SURVIVAL")
}

func TestScoreLines(t *testing.T) {
	day := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	lines := ScoreLines([]game.LeaderboardEntry{
		{Score: 120, Date: day},
		{Score: -10, Date: day},
	})
	assert.Equal(t, []string{
		"#1     120  2024-03-09",
		"#2     -10  2024-03-09",
	}, lines)
}

func TestScoreColorHighlightsOwnRound(t *testing.T) {
	own := game.LeaderboardEntry{ID: "round-a", Score: 10}
	other := game.LeaderboardEntry{ID: "round-b", Score: 20}
	legacy := game.LeaderboardEntry{Score: 30}
	result := &game.RoundResult{ID: "round-a", Recorded: true}

	assert.Equal(t, ColorGold, ScoreColor(own, result))
	assert.Equal(t, ColorText, ScoreColor(other, result))
	assert.Equal(t, ColorText, ScoreColor(legacy, &game.RoundResult{Recorded: true}))
	assert.Equal(t, ColorText, ScoreColor(own, nil))
	assert.Equal(t, ColorText, ScoreColor(own, &game.RoundResult{ID: "round-a"}), "not recorded")
}

func TestResultSummary(t *testing.T) {
	stats := components.NewRoundStats()
	stats.AddSlice(types.CategoryApple)
	stats.AddSlice(types.CategoryKiwi)
	stats.Missed = 4
	stats.BestCombo = 2

	got := ResultSummary(game.RoundResult{Stats: stats})
	assert.Equal(t, "SLICED 2   MISSED 4   BEST COMBO 2", got)
}

func TestBannerColor(t *testing.T) {
	assert.Equal(t, ColorGold, BannerColor(BannerFrenzy))
	assert.Equal(t, ColorAccent, BannerColor(BannerFrozen))
}
