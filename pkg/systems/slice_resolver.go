package systems

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/entities"
	"github.com/gonewx/slicehero/pkg/types"
)

// SliceResolver 按类别结算一次切中
//
// 每次切中都会：在水果位置生成浮动文字和粒子、记录统计、发出反馈事件。
// 删除标记由 SliceSystem 负责。
type SliceResolver struct {
	store     *ecs.EntityStore
	rng       *rand.Rand
	table     types.CategoryTable
	feedback  config.FeedbackConfig
	modifiers config.ModifiersConfig
}

// NewSliceResolver 创建结算器
func NewSliceResolver(store *ecs.EntityStore, rng *rand.Rand, cfg *config.GameConfig, table types.CategoryTable) *SliceResolver {
	return &SliceResolver{
		store:     store,
		rng:       rng,
		table:     table,
		feedback:  cfg.Feedback,
		modifiers: cfg.Modifiers,
	}
}

// Resolve 结算一个被切中的水果
func (r *SliceResolver) Resolve(f *components.FruitComponent) {
	session := &r.store.Session
	data := r.table.Get(f.Category)

	var (
		kind  components.FeedbackKind
		text  string
		col   = entities.ColorScore
		burst int
	)

	switch {
	case f.Category.IsHazard():
		kind = components.FeedbackHazard
		burst = r.feedback.HazardBurst
		col = entities.ColorPenalty
		if session.Mode == types.ModeSurvival {
			if session.Lives > 0 {
				session.Lives--
			}
			text = entities.TextLifeLost
		} else {
			session.Score += data.Score
			text = fmt.Sprintf("%d", data.Score)
		}

	case f.Category.IsChill():
		// 重置为完整时长，不累加
		kind = components.FeedbackChill
		burst = r.feedback.ChillBurst
		session.SlowMotionTimer = r.modifiers.SlowMotionTicks
		text, col = entities.TextFreeze, entities.ColorFreeze

	case f.Category.IsFrenzy():
		kind = components.FeedbackFrenzy
		burst = r.feedback.FrenzyBurst
		session.FrenzyTimer = r.modifiers.FrenzyTicks
		session.Score += data.Score
		text, col = entities.TextFrenzy, entities.ColorFrenzy

	default:
		kind = components.FeedbackSlice
		burst = r.feedback.PlainBurst
		session.Score += data.Score
		text = fmt.Sprintf("+%d", data.Score)
	}

	entities.NewFloatingText(r.store, f.X, f.Y, text, col)
	entities.NewExplosion(r.store, r.rng, r.feedback, f.X, f.Y, data.Color, burst)
	session.Stats.AddSlice(f.Category)
	r.store.Emit(components.FeedbackEvent{
		Kind:     kind,
		Category: f.Category,
		X:        f.X,
		Y:        f.Y,
	})
}
