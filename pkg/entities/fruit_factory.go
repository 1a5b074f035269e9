package entities

import (
	"math/rand"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/types"
)

// NewFruitEntity 创建一个从屏幕底部下方抛出的水果
//
// 参数:
//   - store: 实体存储
//   - rng: 随机数源
//   - screen: 画布尺寸
//   - spawn: 生成参数（出生点与初速度分布）
//   - category: 已抽取好的类别
//   - data: 该类别的数值数据
//
// 返回: 新水果的 ID
func NewFruitEntity(store *ecs.EntityStore, rng *rand.Rand, screen config.ScreenConfig, spawn config.SpawnConfig,
	category types.Category, data types.CategoryData) ecs.EntityID {
	fruit := &components.FruitComponent{
		Category: category,
		X:        rng.Float64()*(screen.Width-2*spawn.EdgeInset) + spawn.EdgeInset,
		Y:        screen.Height + spawn.BottomMargin,
		Radius:   data.Radius,
	}
	fruit.VX = (rng.Float64() - 0.5) * spawn.HorizontalSpread
	fruit.VY = -(rng.Float64()*spawn.LaunchSpeedRange + spawn.LaunchSpeedMin)
	fruit.RotationSpeed = (rng.Float64() - 0.5) * spawn.RotationSpread

	return store.AddFruit(fruit)
}
