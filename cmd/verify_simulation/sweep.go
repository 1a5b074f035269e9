package main

import (
	"fmt"
	"math"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/ecs"
)

// 可选的挥刀脚本
const (
	PatternIdle   = "idle"
	PatternZigzag = "zigzag"
	PatternHunt   = "hunt"
)

// scriptedPointer 按脚本生成刀刃采样，实现 game.PointerSource
type scriptedPointer struct {
	pattern string
	width   float64
	height  float64
	speed   float64 // hunt 模式每帧最大移动距离

	tick  int
	pos   components.Point
	world func() ecs.Snapshot // hunt 模式读取当前物体位置
}

func newScriptedPointer(pattern string, width, height float64, world func() ecs.Snapshot) (*scriptedPointer, error) {
	switch pattern {
	case PatternIdle, PatternZigzag, PatternHunt:
	default:
		return nil, fmt.Errorf("unknown sweep pattern: %s", pattern)
	}
	return &scriptedPointer{
		pattern: pattern,
		width:   width,
		height:  height,
		speed:   45,
		pos:     components.Point{X: width / 2, Y: height / 2},
		world:   world,
	}, nil
}

// Sample 实现 game.PointerSource
func (s *scriptedPointer) Sample() (components.Point, bool) {
	s.tick++
	switch s.pattern {
	case PatternZigzag:
		t := float64(s.tick)
		s.pos = components.Point{
			X: s.width/2 + (s.width/2-60)*math.Sin(t*0.09),
			Y: s.height*0.4 + s.height*0.25*math.Sin(t*0.023),
		}
		return s.pos, true
	case PatternHunt:
		if target, ok := s.target(); ok {
			s.pos = stepToward(s.pos, target, s.speed)
		}
		return s.pos, true
	default:
		return components.Point{}, false
	}
}

// target 选择离刀刃最近的非炸弹物体
func (s *scriptedPointer) target() (components.Point, bool) {
	if s.world == nil {
		return components.Point{}, false
	}
	best := math.Inf(1)
	var out components.Point
	found := false
	for _, f := range s.world().Fruits {
		if f.Category.IsHazard() || f.Y > s.height {
			continue
		}
		d := math.Hypot(f.X-s.pos.X, f.Y-s.pos.Y)
		if d < best {
			best, out, found = d, components.Point{X: f.X, Y: f.Y}, true
		}
	}
	return out, found
}

// stepToward 从 from 向 to 移动，最多移动 maxStep
// 到达目标后继续穿过 maxStep/2，保证每帧都有足够长的切割线段
func stepToward(from, to components.Point, maxStep float64) components.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return components.Point{X: from.X + maxStep/2, Y: from.Y}
	}
	step := math.Min(maxStep, d+maxStep/2)
	return components.Point{X: from.X + dx/d*step, Y: from.Y + dy/d*step}
}
