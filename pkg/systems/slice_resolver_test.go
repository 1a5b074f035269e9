package systems

import (
	"testing"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlain(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	f := placeFruit(sim, types.CategoryCoconut, 100, 200)

	sim.Resolver.Resolve(f)

	s := sim.Store.Session
	assert.Equal(t, 30, s.Score)
	assert.Equal(t, 1, s.Stats.SlicedCount(types.CategoryCoconut))
	require.Len(t, sim.Store.Texts, 1)
	assert.Equal(t, "+30", sim.Store.Texts[0].Text)
	assert.Len(t, sim.Store.Particles, 12)
	assert.Equal(t, sim.Table().Get(types.CategoryCoconut).Color, sim.Store.Particles[0].Color)
	require.Len(t, sim.Store.Events, 1)
	assert.Equal(t, components.FeedbackSlice, sim.Store.Events[0].Kind)
}

func TestResolveHazard(t *testing.T) {
	t.Run("time attack", func(t *testing.T) {
		sim := newTestSimulation(t, types.ModeTimeAttack)
		sim.Resolver.Resolve(placeFruit(sim, types.CategoryBomb, 100, 200))

		assert.Equal(t, -50, sim.Store.Session.Score)
		assert.Equal(t, 3, sim.Store.Session.Lives)
		assert.Equal(t, "-50", sim.Store.Texts[0].Text)
		assert.Len(t, sim.Store.Particles, 25)
	})

	t.Run("survival", func(t *testing.T) {
		sim := newTestSimulation(t, types.ModeSurvival)
		sim.Resolver.Resolve(placeFruit(sim, types.CategoryBomb, 100, 200))

		assert.Equal(t, 0, sim.Store.Session.Score)
		assert.Equal(t, 2, sim.Store.Session.Lives)
		assert.Equal(t, "-1 LIFE", sim.Store.Texts[0].Text)
		assert.Equal(t, components.FeedbackHazard, sim.Store.Events[0].Kind)
	})

	t.Run("survival floor", func(t *testing.T) {
		sim := newTestSimulation(t, types.ModeSurvival)
		sim.Store.Session.Lives = 0
		sim.Resolver.Resolve(placeFruit(sim, types.CategoryBomb, 100, 200))
		assert.Equal(t, 0, sim.Store.Session.Lives)
	})
}

// 慢动作剩 100 帧时再切寒冰，重置为完整时长而不是累加
func TestResolveChillResetsToFullDuration(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	sim.Store.Session.SlowMotionTimer = 100

	sim.Resolver.Resolve(placeFruit(sim, types.CategoryIce, 100, 200))

	assert.Equal(t, 300, sim.Store.Session.SlowMotionTimer)
	assert.Equal(t, 0, sim.Store.Session.Score)
	assert.Equal(t, "FREEZE!", sim.Store.Texts[0].Text)
	assert.Len(t, sim.Store.Particles, 20)
	assert.Equal(t, components.FeedbackChill, sim.Store.Events[0].Kind)
}

func TestResolveFrenzy(t *testing.T) {
	sim := newTestSimulation(t, types.ModeSurvival)

	sim.Resolver.Resolve(placeFruit(sim, types.CategoryGiant, 100, 200))

	assert.Equal(t, 300, sim.Store.Session.FrenzyTimer)
	assert.Equal(t, 50, sim.Store.Session.Score)
	assert.Equal(t, "FRENZY!", sim.Store.Texts[0].Text)
	assert.Len(t, sim.Store.Particles, 30)
	assert.Equal(t, components.FeedbackFrenzy, sim.Store.Events[0].Kind)
}
