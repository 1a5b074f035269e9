package game

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/config"
	"github.com/gonewx/slicehero/pkg/systems"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 在临时目录中创建 gdata Manager
// 创建失败（受限环境）时跳过测试
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("slicehero_test_%s_%d", testName, time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// newTestController 创建使用固定种子的状态机
func newTestController(t *testing.T, lb Leaderboard) *RoundController {
	t.Helper()
	sim, err := systems.NewSimulation(config.DefaultGameConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return NewRoundController(sim, lb)
}

// sliceBomb 在场上放一个静止炸弹，并用两帧划过它
func sliceBomb(rc *RoundController) {
	sim := rc.Simulation()
	sim.Store.AddFruit(&components.FruitComponent{
		Category: types.CategoryBomb,
		X:        400,
		Y:        300,
		Radius:   35,
	})
	sim.Pointer.Reset()
	rc.Tick(systems.StepInput{Pointer: components.Point{X: 300, Y: 300}, HasPointer: true, DeltaTime: 1.0 / 60})
	rc.Tick(systems.StepInput{Pointer: components.Point{X: 500, Y: 300}, HasPointer: true, DeltaTime: 1.0 / 60})
}

// fakeLeaderboard 记录所有写入的成绩
type fakeLeaderboard struct {
	entries []LeaderboardEntry
	err     error
	onCall  func()
}

func (f *fakeLeaderboard) Record(entry LeaderboardEntry) error {
	if f.onCall != nil {
		f.onCall()
	}
	f.entries = append(f.entries, entry)
	return f.err
}
