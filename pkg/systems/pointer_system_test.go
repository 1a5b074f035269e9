package systems

import (
	"math"
	"testing"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestPointerTrailBounded(t *testing.T) {
	ps := NewPointerSystem(config.DefaultGameConfig().Pointer)

	for i := 0; i < 20; i++ {
		ps.Update(components.Point{X: float64(i), Y: 0}, true)
	}

	trail := ps.Trail()
	assert.Len(t, trail.Samples, 8)
	assert.Equal(t, 12.0, trail.Samples[0].X, "oldest samples are evicted first")
	assert.Equal(t, 19.0, trail.Samples[7].X)
	assert.True(t, trail.Valid)
}

func TestPointerAngleNeedsDisplacement(t *testing.T) {
	ps := NewPointerSystem(config.DefaultGameConfig().Pointer)

	ps.Update(components.Point{X: 0, Y: 0}, true)
	ps.Update(components.Point{X: 0, Y: 10}, true)
	assert.InDelta(t, math.Pi/2, ps.Trail().Angle, 1e-9)

	// 位移不超过 2 像素，朝向保持不变
	ps.Update(components.Point{X: 1, Y: 11}, true)
	assert.InDelta(t, math.Pi/2, ps.Trail().Angle, 1e-9)

	ps.Update(components.Point{X: 11, Y: 11}, true)
	assert.InDelta(t, 0, ps.Trail().Angle, 1e-9)
}

func TestPointerSegment(t *testing.T) {
	ps := NewPointerSystem(config.DefaultGameConfig().Pointer)

	_, _, ok := ps.Segment()
	assert.False(t, ok)

	ps.Update(components.Point{X: 1, Y: 2}, true)
	ps.Update(components.Point{X: 3, Y: 4}, true)
	p1, p2, ok := ps.Segment()
	assert.True(t, ok)
	assert.Equal(t, components.Point{X: 1, Y: 2}, p1)
	assert.Equal(t, components.Point{X: 3, Y: 4}, p2)

	ps.Reset()
	_, _, ok = ps.Segment()
	assert.False(t, ok)
}

func TestPointerMissingSampleKeepsTrail(t *testing.T) {
	ps := NewPointerSystem(config.DefaultGameConfig().Pointer)
	ps.Update(components.Point{X: 1, Y: 2}, true)
	ps.Update(components.Point{X: 30, Y: 4}, true)

	for i := 0; i < 10; i++ {
		ps.Update(components.Point{}, false)
	}

	assert.Len(t, ps.Trail().Samples, 2)
	assert.Equal(t, 10, ps.Trail().IdleTicks)
}

func TestPointerStaleness(t *testing.T) {
	cfg := config.DefaultGameConfig().Pointer
	cfg.StaleAfterTicks = 3
	ps := NewPointerSystem(cfg)
	ps.Update(components.Point{X: 1, Y: 2}, true)
	ps.Update(components.Point{X: 30, Y: 4}, true)

	ps.Update(components.Point{}, false)
	ps.Update(components.Point{}, false)
	assert.Len(t, ps.Trail().Samples, 2)

	ps.Update(components.Point{}, false)
	assert.Empty(t, ps.Trail().Samples)
	assert.False(t, ps.Trail().Valid, "stale knife is hidden")

	ps.Update(components.Point{X: 50, Y: 60}, true)
	assert.True(t, ps.Trail().Valid)
	assert.Equal(t, 50.0, ps.Trail().X)
}

// TestPointerResetHidesKnife 开局后收到新采样前不绘制上一局的刀刃
func TestPointerResetHidesKnife(t *testing.T) {
	ps := NewPointerSystem(config.DefaultGameConfig().Pointer)
	ps.Update(components.Point{X: 1, Y: 2}, true)
	ps.Update(components.Point{X: 30, Y: 4}, true)
	assert.True(t, ps.Trail().Valid)

	ps.Reset()
	assert.False(t, ps.Trail().Valid)
	assert.Empty(t, ps.Trail().Samples)
	assert.Zero(t, ps.Trail().IdleTicks)

	ps.Update(components.Point{X: 7, Y: 8}, true)
	assert.True(t, ps.Trail().Valid)
}
