package game

import (
	"errors"
	"testing"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/systems"
	"github.com/gonewx/slicehero/pkg/types"
)

// TestSourceReadiness 指针源未就绪时保持 idle 并暴露原因
func TestSourceReadiness(t *testing.T) {
	rc := newTestController(t, nil)

	if rc.State() != StateIdle {
		t.Fatalf("initial state: got %s, want idle", rc.State())
	}

	rc.SetSourceReady(false, "camera not found")
	if rc.State() != StateIdle {
		t.Errorf("state after failure: got %s, want idle", rc.State())
	}
	if rc.Message() != "camera not found" {
		t.Errorf("message: got %q", rc.Message())
	}

	rc.SetSourceReady(true, "")
	if rc.State() != StateReady {
		t.Errorf("state after ready: got %s, want ready", rc.State())
	}
}

// TestInvalidTransitions 非法操作返回 ErrInvalidTransition 且不改变状态
func TestInvalidTransitions(t *testing.T) {
	rc := newTestController(t, nil)

	if err := rc.StartRound(types.ModeTimeAttack); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("StartRound from idle: got %v", err)
	}
	if err := rc.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart from idle: got %v", err)
	}
	if err := rc.AcknowledgeEnd(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("AcknowledgeEnd from idle: got %v", err)
	}
	if rc.State() != StateIdle {
		t.Errorf("state changed to %s", rc.State())
	}

	rc.SetSourceReady(true, "")
	if err := rc.StartRound(types.ModeSurvival); err != nil {
		t.Fatalf("StartRound from ready: %v", err)
	}
	rc.Simulation().Store.Session.Score = 42

	if err := rc.StartRound(types.ModeTimeAttack); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("StartRound while playing: got %v", err)
	}
	if err := rc.AcknowledgeEnd(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("AcknowledgeEnd while playing: got %v", err)
	}
	if rc.State() != StatePlaying || rc.Mode() != types.ModeSurvival {
		t.Errorf("illegal call mutated state: %s %s", rc.State(), rc.Mode())
	}
	if rc.Simulation().Store.Session.Score != 42 {
		t.Error("illegal call reset the session")
	}
}

// TestReadyTickIsDemoOnly 准备界面只更新刀刃，不生成、不计时
func TestReadyTickIsDemoOnly(t *testing.T) {
	rc := newTestController(t, nil)
	rc.SetSourceReady(true, "")

	for i := 0; i < 300; i++ {
		rc.Tick(systems.StepInput{Pointer: components.Point{X: float64(i), Y: 100}, HasPointer: true, DeltaTime: 1.0 / 60})
	}

	sim := rc.Simulation()
	if len(sim.Store.Fruits) != 0 {
		t.Errorf("ready state spawned %d fruits", len(sim.Store.Fruits))
	}
	if !sim.Pointer.Trail().Valid {
		t.Error("ready state should still track the knife")
	}
}

// TestTimeAttackFinishesOnce 倒计时归零后只结束一次
func TestTimeAttackFinishesOnce(t *testing.T) {
	lb := &fakeLeaderboard{}
	rc := newTestController(t, lb)
	finished := 0
	rc.OnFinish = func(RoundResult) { finished++ }

	rc.SetSourceReady(true, "")
	if err := rc.StartRound(types.ModeTimeAttack); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	ended := 0
	for i := 0; i < 100; i++ {
		if rc.Tick(systems.StepInput{DeltaTime: 1}) {
			ended++
		}
		if i == 58 && rc.State() != StatePlaying {
			t.Fatalf("round ended early at tick %d", i+1)
		}
	}

	if rc.State() != StateFinished {
		t.Fatalf("state: got %s, want finished", rc.State())
	}
	if ended != 1 || finished != 1 {
		t.Errorf("round should end exactly once, got Tick=%d OnFinish=%d", ended, finished)
	}
	if len(lb.entries) != 1 {
		t.Fatalf("expected 1 leaderboard entry, got %d", len(lb.entries))
	}
	if lb.entries[0].Mode != types.ModeTimeAttack {
		t.Errorf("recorded mode: got %s", lb.entries[0].Mode)
	}
	if rc.Result() == nil || !rc.Result().Recorded {
		t.Error("result should be exposed and marked recorded")
	}
}

// TestSurvivalHazardsFinishRound 存活模式：两次炸弹后仍在进行，第三次结束
func TestSurvivalHazardsFinishRound(t *testing.T) {
	rc := newTestController(t, nil)
	rc.SetSourceReady(true, "")
	if err := rc.StartRound(types.ModeSurvival); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	sliceBomb(rc)
	sliceBomb(rc)
	if lives := rc.Simulation().Store.Session.Lives; lives != 1 {
		t.Fatalf("lives after two hazards: got %d, want 1", lives)
	}
	if rc.State() != StatePlaying {
		t.Fatalf("state after two hazards: got %s, want playing", rc.State())
	}

	sliceBomb(rc)
	if lives := rc.Simulation().Store.Session.Lives; lives != 0 {
		t.Errorf("lives after three hazards: got %d, want 0", lives)
	}
	if rc.State() != StateFinished {
		t.Errorf("state after three hazards: got %s, want finished", rc.State())
	}
}

// TestLeaderboardRecordedBeforeResult 结果在写入排行榜之后才对外可见
func TestLeaderboardRecordedBeforeResult(t *testing.T) {
	lb := &fakeLeaderboard{}
	rc := newTestController(t, lb)
	lb.onCall = func() {
		if rc.Result() != nil {
			t.Error("result exposed before the leaderboard was written")
		}
		if rc.State() != StatePlaying {
			t.Errorf("state during record: got %s, want playing", rc.State())
		}
	}

	rc.SetSourceReady(true, "")
	rc.StartRound(types.ModeSurvival)
	rc.Simulation().Store.Session.Score = 70
	for i := 0; i < 3; i++ {
		sliceBomb(rc)
	}

	if len(lb.entries) != 1 || lb.entries[0].Score != 70 {
		t.Fatalf("unexpected leaderboard entries: %+v", lb.entries)
	}
}

// TestRoundIDLinksResultAndEntry 每局有独立 ID，并写入排行榜条目
func TestRoundIDLinksResultAndEntry(t *testing.T) {
	lb := &fakeLeaderboard{}
	rc := newTestController(t, lb)
	rc.SetSourceReady(true, "")

	var ids []string
	for round := 0; round < 2; round++ {
		if err := rc.StartRound(types.ModeSurvival); err != nil {
			t.Fatalf("StartRound failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			sliceBomb(rc)
		}
		res := rc.Result()
		if res == nil || res.ID == "" {
			t.Fatalf("round %d: missing result id: %+v", round, res)
		}
		if lb.entries[round].ID != res.ID {
			t.Errorf("round %d: entry id %q, result id %q", round, lb.entries[round].ID, res.ID)
		}
		ids = append(ids, res.ID)
	}
	if ids[0] == ids[1] {
		t.Errorf("round ids should differ, both %q", ids[0])
	}
}

// TestLeaderboardFailureIsNotFatal 排行榜写入失败不影响结算
func TestLeaderboardFailureIsNotFatal(t *testing.T) {
	lb := &fakeLeaderboard{err: errors.New("disk full")}
	rc := newTestController(t, lb)
	rc.SetSourceReady(true, "")
	rc.StartRound(types.ModeSurvival)
	for i := 0; i < 3; i++ {
		sliceBomb(rc)
	}

	if rc.State() != StateFinished {
		t.Fatalf("state: got %s, want finished", rc.State())
	}
	if rc.Result().Recorded {
		t.Error("result should not be marked recorded")
	}
}

// TestFinishedIsFrozen 结算状态下模拟不再推进
func TestFinishedIsFrozen(t *testing.T) {
	rc := newTestController(t, nil)
	rc.SetSourceReady(true, "")
	rc.StartRound(types.ModeSurvival)
	for i := 0; i < 3; i++ {
		sliceBomb(rc)
	}
	tick := rc.Simulation().Store.Session.Tick

	for i := 0; i < 10; i++ {
		if rc.Tick(systems.StepInput{DeltaTime: 1}) {
			t.Fatal("finished round ended again")
		}
	}
	if rc.Simulation().Store.Session.Tick != tick {
		t.Error("simulation advanced while finished")
	}
}

// TestRestartAndAcknowledge 结算后重开或回到菜单
func TestRestartAndAcknowledge(t *testing.T) {
	rc := newTestController(t, nil)
	rc.SetSourceReady(true, "")
	rc.StartRound(types.ModeSurvival)
	for i := 0; i < 3; i++ {
		sliceBomb(rc)
	}

	if err := rc.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if rc.State() != StatePlaying || rc.Mode() != types.ModeSurvival {
		t.Errorf("after restart: %s %s", rc.State(), rc.Mode())
	}
	if rc.Simulation().Store.Session.Lives != 3 {
		t.Errorf("restart should restore lives, got %d", rc.Simulation().Store.Session.Lives)
	}
	if rc.Result() != nil {
		t.Error("restart should clear the previous result")
	}

	for i := 0; i < 3; i++ {
		sliceBomb(rc)
	}
	if err := rc.AcknowledgeEnd(); err != nil {
		t.Fatalf("AcknowledgeEnd: %v", err)
	}
	if rc.State() != StateReady {
		t.Errorf("after acknowledge: got %s, want ready", rc.State())
	}

	if err := rc.StartRound(types.ModeTimeAttack); err != nil {
		t.Fatalf("StartRound after acknowledge: %v", err)
	}
	if rc.Mode() != types.ModeTimeAttack {
		t.Errorf("mode: got %s", rc.Mode())
	}
}
