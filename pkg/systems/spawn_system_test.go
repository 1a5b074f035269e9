package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpawner(seed int64) (*SpawnSystem, *ecs.EntityStore) {
	cfg := config.DefaultGameConfig()
	store := ecs.NewEntityStore()
	return NewSpawnSystem(store, rand.New(rand.NewSource(seed)), cfg, types.DefaultCategoryTable()), store
}

// 大样本下各类别出现频率收敛到 weight/total
func TestDrawCategoryFrequency(t *testing.T) {
	spawner, _ := newTestSpawner(42)
	table := types.DefaultCategoryTable()
	weights := table.Weights()
	total := 0.0
	for _, w := range weights {
		total += w
	}

	const samples = 200000
	counts := make([]int, types.NumCategories)
	for i := 0; i < samples; i++ {
		counts[spawner.DrawCategory(false)]++
	}

	for i, c := range counts {
		expected := weights[i] / total
		observed := float64(c) / samples
		assert.InDelta(t, expected, observed, 0.01, "category %s", types.Category(i))
	}
}

// 狂热期间不会生成炸弹
func TestFrenzyNeverSpawnsHazard(t *testing.T) {
	spawner, store := newTestSpawner(3)
	store.Session.FrenzyTimer = 300

	for i := 0; i < 5000; i++ {
		spawner.Spawn()
	}
	for _, f := range store.Fruits {
		require.False(t, f.Category.IsHazard(), "hazard spawned during frenzy")
	}
	assert.Greater(t, countCategory(store, types.DefaultCategory), 5000/6)
}

func countCategory(store *ecs.EntityStore, c types.Category) int {
	n := 0
	for _, f := range store.Fruits {
		if f.Category == c {
			n++
		}
	}
	return n
}

func TestSpawnCadence(t *testing.T) {
	tests := []struct {
		name   string
		frenzy int
		slow   int
	}{
		{name: "normal"},
		{name: "frenzy", frenzy: 1000},
		{name: "slow motion", slow: 1000},
		{name: "frenzy wins", frenzy: 1000, slow: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner, store := newTestSpawner(5)
			store.Session.FrenzyTimer = tt.frenzy
			store.Session.SlowMotionTimer = tt.slow

			want := int(math.Floor(spawner.Threshold())) + 1
			for tick := 1; tick < want; tick++ {
				require.False(t, spawner.Update(), "unexpected spawn at tick %d", tick)
			}
			assert.True(t, spawner.Update(), "expected spawn at tick %d", want)
			assert.Equal(t, 0.0, store.Session.SpawnTimer)
			assert.Len(t, store.Fruits, 1)
		})
	}
}

func TestSpawnThresholdByModifier(t *testing.T) {
	spawner, store := newTestSpawner(1)
	assert.Equal(t, 55.0, spawner.Threshold())

	store.Session.SlowMotionTimer = 10
	assert.InDelta(t, 33.0, spawner.Threshold(), 1e-9)

	store.Session.FrenzyTimer = 10
	assert.Equal(t, 6.0, spawner.Threshold())
}
