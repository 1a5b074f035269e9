package systems

import (
	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/entities"
	"github.com/gonewx/slicehero/pkg/types"
)

// PhysicsSystem 每帧推进一次所有实体的运动
//
// 处理顺序固定：
//  1. 效果倒计时减一（不低于 0）
//  2. 根据慢动作确定时间缩放
//  3. 生成计时
//  4. 水果运动与掉出判定
//  5. 粒子运动与衰减（受时间缩放）
//  6. 浮动文字上浮与衰减（不受时间缩放）
//  7. 限时模式扣减剩余时间（真实秒数）
//
// 本系统只修改运动学字段和掉出标记，不负责清理。
type PhysicsSystem struct {
	store   *ecs.EntityStore
	spawner *SpawnSystem
	screen  config.ScreenConfig
	physics config.PhysicsConfig
	table   types.CategoryTable
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - store: 实体存储
//   - spawner: 生成系统，由本系统在第 3 步驱动
//   - cfg: 游戏配置
//   - table: 类别表（掉出判定需要区分普通水果）
//
// 返回:
//   - *PhysicsSystem: 物理系统实例
func NewPhysicsSystem(store *ecs.EntityStore, spawner *SpawnSystem, cfg *config.GameConfig, table types.CategoryTable) *PhysicsSystem {
	return &PhysicsSystem{
		store:   store,
		spawner: spawner,
		screen:  cfg.Screen,
		physics: cfg.Physics,
		table:   table,
	}
}

// TimeScale 返回当前时间缩放
func (ps *PhysicsSystem) TimeScale() float64 {
	if ps.store.Session.SlowMotionTimer > 0 {
		return ps.physics.SlowMotionScale
	}
	return 1.0
}

// Update 推进一帧
//
// 参数:
//   - deltaTime: 自上一帧以来经过的真实时间（秒），仅用于倒计时
//
// 返回:
//   - bool: 本帧是否生成了新水果
func (ps *PhysicsSystem) Update(deltaTime float64) bool {
	session := &ps.store.Session

	if session.SlowMotionTimer > 0 {
		session.SlowMotionTimer--
	}
	if session.FrenzyTimer > 0 {
		session.FrenzyTimer--
	}

	scale := ps.TimeScale()

	spawned := false
	if ps.spawner != nil {
		spawned = ps.spawner.Update()
	}

	ps.updateFruits(scale)
	ps.updateParticles(scale)
	ps.updateTexts()

	if session.Mode == types.ModeTimeAttack {
		session.RemainingTime -= deltaTime
		if session.RemainingTime < 0 {
			session.RemainingTime = 0
		}
	}

	return spawned
}

func (ps *PhysicsSystem) updateFruits(scale float64) {
	session := &ps.store.Session
	bottom := ps.screen.Height + ps.physics.FalloutMargin

	for _, f := range ps.store.Fruits {
		if f.Remove {
			continue
		}

		f.X += f.VX * scale
		f.Y += f.VY * scale
		f.VY += ps.physics.Gravity * scale
		f.Rotation += f.RotationSpeed * scale

		if f.Y <= bottom {
			continue
		}

		// 只有存活模式下漏掉普通水果才扣命，炸弹和特殊水果掉出无惩罚
		if session.Mode == types.ModeSurvival && f.Category.IsPlain() {
			if session.Lives > 0 {
				session.Lives--
			}
			session.Stats.Missed++
			entities.NewFloatingText(ps.store, f.X, ps.screen.Height-ps.physics.FalloutMargin,
				entities.TextLifeLost, entities.ColorPenalty)
			ps.store.Emit(components.FeedbackEvent{
				Kind:     components.FeedbackMiss,
				Category: f.Category,
				X:        f.X,
				Y:        f.Y,
			})
		}
		ps.store.DestroyFruit(f)
	}
}

func (ps *PhysicsSystem) updateParticles(scale float64) {
	g := ps.physics.Gravity * ps.physics.ParticleGravityFactor
	for _, p := range ps.store.Particles {
		p.X += p.VX * scale
		p.Y += p.VY * scale
		p.VY += g * scale
		p.Life -= ps.physics.ParticleDecay * scale
	}
}

func (ps *PhysicsSystem) updateTexts() {
	for _, t := range ps.store.Texts {
		t.Y -= ps.physics.TextRise
		t.Life -= ps.physics.TextDecay
	}
}
