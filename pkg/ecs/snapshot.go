package ecs

import "github.com/gonewx/slicehero/pkg/components"

// Snapshot 某一帧结束时的只读副本
//
// 渲染层若与模拟分线程运行，只能读取 Snapshot，不能直接访问 EntityStore。
// 所有字段均为值拷贝，模拟继续运行不会影响已发出的快照。
type Snapshot struct {
	Fruits    []components.FruitComponent
	Particles []components.ParticleComponent
	Texts     []components.FloatingTextComponent
	Events    []components.FeedbackEvent
	Session   components.SessionState
	Trail     components.PointerTrailComponent
}

// Snapshot 生成当前状态的深拷贝
//
// 参数:
//   - trail: 当前指针轨迹，可为 nil
func (s *EntityStore) Snapshot(trail *components.PointerTrailComponent) Snapshot {
	snap := Snapshot{
		Fruits:    make([]components.FruitComponent, 0, len(s.Fruits)),
		Particles: make([]components.ParticleComponent, 0, len(s.Particles)),
		Texts:     make([]components.FloatingTextComponent, 0, len(s.Texts)),
		Events:    append([]components.FeedbackEvent(nil), s.Events...),
		Session:   s.Session,
	}
	for _, f := range s.Fruits {
		if !f.Remove {
			snap.Fruits = append(snap.Fruits, *f)
		}
	}
	for _, p := range s.Particles {
		snap.Particles = append(snap.Particles, *p)
	}
	for _, t := range s.Texts {
		snap.Texts = append(snap.Texts, *t)
	}
	snap.Session.Stats = s.Session.Stats.Clone()

	if trail != nil {
		snap.Trail = *trail
		snap.Trail.Samples = append([]components.Point(nil), trail.Samples...)
	}
	return snap
}
