package systems

import (
	"math"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
)

// PointerSystem 维护指针轨迹
//
// 没有新采样的帧里轨迹保持不变，最后两个采样点仍构成切割线段；
// 配置了 StaleAfterTicks 时，超过该帧数仍无采样则清空轨迹。
type PointerSystem struct {
	trail *components.PointerTrailComponent
	cfg   config.PointerConfig
}

// NewPointerSystem 创建指针轨迹系统
func NewPointerSystem(cfg config.PointerConfig) *PointerSystem {
	return &PointerSystem{
		trail: &components.PointerTrailComponent{
			Samples: make([]components.Point, 0, cfg.TrailLength),
		},
		cfg: cfg,
	}
}

// Trail 返回当前轨迹（只读使用）
func (s *PointerSystem) Trail() *components.PointerTrailComponent {
	return s.trail
}

// Update 处理本帧的指针采样
//
// 参数:
//   - p: 采样点（画布坐标）
//   - ok: 本帧是否有采样
func (s *PointerSystem) Update(p components.Point, ok bool) {
	t := s.trail
	if !ok {
		t.IdleTicks++
		if s.cfg.StaleAfterTicks > 0 && t.IdleTicks >= s.cfg.StaleAfterTicks {
			t.Samples = t.Samples[:0]
			t.Valid = false
		}
		return
	}

	if n := len(t.Samples); n > 0 {
		last := t.Samples[n-1]
		dx, dy := p.X-last.X, p.Y-last.Y
		if math.Hypot(dx, dy) > s.cfg.AngleThreshold {
			t.Angle = math.Atan2(dy, dx)
		}
	}

	if len(t.Samples) >= s.cfg.TrailLength {
		// 淘汰最旧的点
		copy(t.Samples, t.Samples[1:])
		t.Samples = t.Samples[:len(t.Samples)-1]
	}
	t.Samples = append(t.Samples, p)

	t.X, t.Y = p.X, p.Y
	t.Valid = true
	t.IdleTicks = 0
}

// Segment 返回本帧的切割线段（倒数第二个点 -> 最后一个点）
// 采样不足两个时 ok 为 false
func (s *PointerSystem) Segment() (p1, p2 components.Point, ok bool) {
	n := len(s.trail.Samples)
	if n < 2 {
		return components.Point{}, components.Point{}, false
	}
	return s.trail.Samples[n-2], s.trail.Samples[n-1], true
}

// Reset 清空轨迹历史（开局时调用），收到新采样前不绘制刀刃
func (s *PointerSystem) Reset() {
	s.trail.Samples = s.trail.Samples[:0]
	s.trail.Valid = false
	s.trail.Angle = 0
	s.trail.IdleTicks = 0
}
