package systems

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/types"
)

// StepInput 一帧的外部输入
type StepInput struct {
	Pointer    components.Point // 指针采样（画布坐标）
	HasPointer bool             // 本帧是否有采样
	DeltaTime  float64          // 距上一帧的真实时间（秒）
}

// StepResult 一帧的执行结果
type StepResult struct {
	Hits    int  // 本帧切中数量
	Spawned bool // 本帧是否生成了水果

	// Session 帧结束时的会话状态副本（Stats 与存储共享，需要保存时调用 Clone）
	Session components.SessionState
}

// Simulation 按固定顺序组合各系统，每帧调用一次 Step
//
// 一帧的顺序：清空事件 -> 指针轨迹 -> 物理（含生成）-> 切割检测与结算 -> 清理。
// Step 返回前整帧已经完成，外部观察不到中间状态。
type Simulation struct {
	cfg   *config.GameConfig
	table types.CategoryTable

	Store    *ecs.EntityStore
	Pointer  *PointerSystem
	Spawner  *SpawnSystem
	Physics  *PhysicsSystem
	Slicer   *SliceSystem
	Resolver *SliceResolver
}

// NewRand 创建随机数源，seed 为 0 时按当前时间取种
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSimulation 创建模拟
//
// 参数:
//   - cfg: 游戏配置（会先做校验）
//   - rng: 随机数源，为 nil 时按 cfg.Spawn.Seed 创建
//
// 返回:
//   - *Simulation: 处于限时模式初始状态的模拟
//   - error: 配置不合法时返回错误
func NewSimulation(cfg *config.GameConfig, rng *rand.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	table, err := cfg.CategoryTable()
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	if rng == nil {
		rng = NewRand(cfg.Spawn.Seed)
	}

	store := ecs.NewEntityStore()
	pointer := NewPointerSystem(cfg.Pointer)
	spawner := NewSpawnSystem(store, rng, cfg, table)
	resolver := NewSliceResolver(store, rng, cfg, table)

	sim := &Simulation{
		cfg:      cfg,
		table:    table,
		Store:    store,
		Pointer:  pointer,
		Spawner:  spawner,
		Physics:  NewPhysicsSystem(store, spawner, cfg, table),
		Slicer:   NewSliceSystem(store, pointer, resolver, cfg.Slice),
		Resolver: resolver,
	}
	sim.Reset(types.ModeTimeAttack)
	return sim, nil
}

// Config 返回模拟使用的配置
func (s *Simulation) Config() *config.GameConfig {
	return s.cfg
}

// Table 返回合并后的类别表
func (s *Simulation) Table() types.CategoryTable {
	return s.table
}

// InitialSession 返回指定模式的开局状态
func (s *Simulation) InitialSession(mode types.GameMode) components.SessionState {
	return components.SessionState{
		Mode:          mode,
		RemainingTime: s.cfg.Session.RoundSeconds,
		Lives:         s.cfg.Session.MaxLives,
		Stats:         components.NewRoundStats(),
	}
}

// Reset 清空所有实体和轨迹历史，按模式重新开局
func (s *Simulation) Reset(mode types.GameMode) {
	s.Store.Reset(s.InitialSession(mode))
	s.Pointer.Reset()
}

// Step 执行完整的一帧
func (s *Simulation) Step(in StepInput) StepResult {
	s.Store.ClearEvents()
	s.Pointer.Update(in.Pointer, in.HasPointer)

	spawned := s.Physics.Update(in.DeltaTime)
	hits := s.Slicer.Update()

	s.Store.Compact()
	s.Store.Session.Tick++

	return StepResult{Hits: hits, Spawned: spawned, Session: s.Store.Session}
}

// StepPointerOnly 只更新指针轨迹（准备界面的刀刃演示，不生成、不计分）
func (s *Simulation) StepPointerOnly(in StepInput) {
	s.Store.ClearEvents()
	s.Pointer.Update(in.Pointer, in.HasPointer)
}

// RoundOver 判断当前局是否满足结束条件
//   - 限时模式：剩余时间为 0
//   - 存活模式：生命为 0
func (s *Simulation) RoundOver() bool {
	session := &s.Store.Session
	if session.Mode == types.ModeSurvival {
		return session.Lives <= 0
	}
	return session.RemainingTime <= 0
}

// Snapshot 返回当前帧的只读副本
func (s *Simulation) Snapshot() ecs.Snapshot {
	return s.Store.Snapshot(s.Pointer.Trail())
}
