package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/entities"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/gonewx/slicehero/pkg/utils"
)

// SpawnSystem 管理水果的加权抽取和定时生成
//
// 计时以帧为单位且不受时间缩放影响：慢动作期间阈值变小，
// 因此画面上的物体依然足够密集。
type SpawnSystem struct {
	store  *ecs.EntityStore
	rng    *rand.Rand
	screen config.ScreenConfig
	spawn  config.SpawnConfig
	table  types.CategoryTable

	weights     []float64
	totalWeight float64
}

// NewSpawnSystem 创建一个新的生成系统
//
// 参数:
//   - store: 实体存储
//   - rng: 随机数源（注入以保证可复现）
//   - cfg: 游戏配置
//   - table: 已合并覆盖项的类别表
func NewSpawnSystem(store *ecs.EntityStore, rng *rand.Rand, cfg *config.GameConfig, table types.CategoryTable) *SpawnSystem {
	weights := table.Weights()
	total := utils.TotalWeight(weights)
	log.Printf("[SpawnSystem] Initialized with interval=%.0f/%.0f/%.1f ticks, totalWeight=%.0f",
		cfg.Spawn.BaseInterval, cfg.Spawn.FrenzyInterval, cfg.Spawn.BaseInterval*cfg.Spawn.SlowMotionFactor, total)
	return &SpawnSystem{
		store:       store,
		rng:         rng,
		screen:      cfg.Screen,
		spawn:       cfg.Spawn,
		table:       table,
		weights:     weights,
		totalWeight: total,
	}
}

// DrawCategory 按权重抽取一个类别
//
// 参数:
//   - frenzy: 狂热是否生效；生效时抽到的危险品替换为默认类别
func (s *SpawnSystem) DrawCategory(frenzy bool) types.Category {
	r := s.rng.Float64() * s.totalWeight
	category := types.Category(utils.WeightedIndex(s.weights, r))
	if frenzy && category.IsHazard() {
		category = types.DefaultCategory
	}
	return category
}

// Spawn 立即生成一个水果
// 返回: 新水果的 ID
func (s *SpawnSystem) Spawn() ecs.EntityID {
	category := s.DrawCategory(s.store.Session.FrenzyTimer > 0)
	return entities.NewFruitEntity(s.store, s.rng, s.screen, s.spawn, category, s.table.Get(category))
}

// Threshold 返回当前效果下的生成阈值（帧）
func (s *SpawnSystem) Threshold() float64 {
	session := &s.store.Session
	return s.spawn.SpawnThreshold(session.FrenzyTimer > 0, session.SlowMotionTimer > 0)
}

// Update 推进生成计时器，每帧调用一次
//
// 计时器超过阈值时生成一个水果并归零（超出部分丢弃）。
//
// 返回: 本帧是否生成了水果
func (s *SpawnSystem) Update() bool {
	session := &s.store.Session
	session.SpawnTimer++
	if session.SpawnTimer > s.Threshold() {
		s.Spawn()
		session.SpawnTimer = 0
		return true
	}
	return false
}
