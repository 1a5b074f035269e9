package systems

import (
	"math"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/utils"
)

// SliceSystem 用指针轨迹最新的线段检测切中的水果
//
// 必须在 PhysicsSystem 之后运行，使用移动后的水果位置。
type SliceSystem struct {
	store    *ecs.EntityStore
	pointer  *PointerSystem
	resolver *SliceResolver
	cfg      config.SliceConfig
}

// NewSliceSystem 创建切割检测系统
func NewSliceSystem(store *ecs.EntityStore, pointer *PointerSystem, resolver *SliceResolver, cfg config.SliceConfig) *SliceSystem {
	return &SliceSystem{
		store:    store,
		pointer:  pointer,
		resolver: resolver,
		cfg:      cfg,
	}
}

// Hit 判断线段 (p1, p2) 是否切中圆心 (cx, cy)、半径 radius 的物体
func (s *SliceSystem) Hit(p1, p2 components.Point, cx, cy, radius float64) bool {
	d := utils.PointToSegmentDistance(cx, cy, p1.X, p1.Y, p2.X, p2.Y)
	return d < radius+s.cfg.HitMargin
}

// Update 执行一次切割检测
//
// 线段长度低于 MinSegmentLength 时视为刀刃静止，不做检测。
// 按插入顺序遍历水果，命中的水果立即标记删除并交给 SliceResolver 处理，
// 已标记的水果在本轮后续遍历中跳过。
//
// 返回:
//   - int: 本帧切中的数量
func (s *SliceSystem) Update() int {
	p1, p2, ok := s.pointer.Segment()
	if !ok {
		return 0
	}
	if math.Hypot(p2.X-p1.X, p2.Y-p1.Y) < s.cfg.MinSegmentLength {
		return 0
	}

	hits := 0
	for _, f := range s.store.Fruits {
		if f.Remove {
			continue
		}
		if !s.Hit(p1, p2, f.X, f.Y, f.Radius) {
			continue
		}
		s.store.DestroyFruit(f)
		s.resolver.Resolve(f)
		hits++
	}

	if hits > s.store.Session.Stats.BestCombo {
		s.store.Session.Stats.BestCombo = hits
	}
	return hits
}
