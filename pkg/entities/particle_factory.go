package entities

import (
	"image/color"
	"math/rand"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
)

// NewExplosion 在 (x, y) 生成一团向四周飞散的粒子
//
// 参数:
//   - store: 实体存储
//   - rng: 随机数源
//   - fb: 粒子速度与尺寸分布
//   - x, y: 爆炸中心
//   - col: 粒子颜色
//   - count: 粒子数量
func NewExplosion(store *ecs.EntityStore, rng *rand.Rand, fb config.FeedbackConfig, x, y float64, col color.RGBA, count int) {
	for i := 0; i < count; i++ {
		store.AddParticle(&components.ParticleComponent{
			X:     x,
			Y:     y,
			VX:    (rng.Float64() - 0.5) * fb.ParticleSpeed,
			VY:    (rng.Float64() - 0.5) * fb.ParticleSpeed,
			Life:  1.0,
			Color: col,
			Size:  rng.Float64()*fb.ParticleSizeRange + fb.ParticleSizeMin,
		})
	}
}
