package systems

import (
	"testing"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSegment(sim *Simulation, p1, p2 components.Point) {
	sim.Pointer.Reset()
	sim.Pointer.Update(p1, true)
	sim.Pointer.Update(p2, true)
}

// 线段穿过圆心必定命中
func TestSliceThroughCenterHits(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	placeFruit(sim, types.CategoryApple, 400, 300)

	setSegment(sim, components.Point{X: 398, Y: 300}, components.Point{X: 402, Y: 300})

	assert.Equal(t, 1, sim.Slicer.Update())
	assert.Equal(t, 10, sim.Store.Session.Score)
}

// 距离超过 半径+宽容距离 不会命中
func TestSliceBeyondMarginMisses(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	f := placeFruit(sim, types.CategoryApple, 400, 300)

	// 半径 35 + 15 = 50
	setSegment(sim, components.Point{X: 300, Y: 350.01}, components.Point{X: 500, Y: 350.01})
	assert.Equal(t, 0, sim.Slicer.Update())
	assert.False(t, f.Remove)

	setSegment(sim, components.Point{X: 300, Y: 349.99}, components.Point{X: 500, Y: 349.99})
	assert.Equal(t, 1, sim.Slicer.Update())
	assert.True(t, f.Remove)
}

// 线段过短视为静止
func TestSliceBelowSpeedThreshold(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	placeFruit(sim, types.CategoryApple, 400, 300)

	setSegment(sim, components.Point{X: 399, Y: 300}, components.Point{X: 401.9, Y: 300})
	assert.Equal(t, 0, sim.Slicer.Update())

	setSegment(sim, components.Point{X: 399, Y: 300}, components.Point{X: 402, Y: 300})
	assert.Equal(t, 1, sim.Slicer.Update())
}

func TestSliceNeedsTwoSamples(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	placeFruit(sim, types.CategoryApple, 400, 300)

	sim.Pointer.Update(components.Point{X: 400, Y: 300}, true)
	assert.Equal(t, 0, sim.Slicer.Update())
}

// 已标记删除的水果不会再次结算
func TestSliceSkipsFlaggedFruit(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	f := placeFruit(sim, types.CategoryApple, 400, 300)
	setSegment(sim, components.Point{X: 300, Y: 300}, components.Point{X: 500, Y: 300})

	require.Equal(t, 1, sim.Slicer.Update())
	assert.True(t, f.Remove)

	// 同一线段再检测一次（未清理）
	assert.Equal(t, 0, sim.Slicer.Update())
	assert.Equal(t, 10, sim.Store.Session.Score)
}

// 命中按插入顺序结算
func TestSliceResolvesInInsertionOrder(t *testing.T) {
	sim := newTestSimulation(t, types.ModeTimeAttack)
	placeFruit(sim, types.CategoryCoconut, 450, 300)
	placeFruit(sim, types.CategoryKiwi, 350, 300)

	setSegment(sim, components.Point{X: 300, Y: 300}, components.Point{X: 500, Y: 300})
	require.Equal(t, 2, sim.Slicer.Update())

	require.Len(t, sim.Store.Events, 2)
	assert.Equal(t, types.CategoryCoconut, sim.Store.Events[0].Category)
	assert.Equal(t, types.CategoryKiwi, sim.Store.Events[1].Category)
	assert.Equal(t, 50, sim.Store.Session.Score)
}
