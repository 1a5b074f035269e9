package game

import (
	"testing"
	"time"

	"github.com/gonewx/slicehero/pkg/types"
)

// TestLeaderboardKeepsTopEntries 只保留前 5 名并按分数降序
func TestLeaderboardKeepsTopEntries(t *testing.T) {
	lm := NewLeaderboardManager(nil, 0)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	scores := []int{30, -40, 120, 80, 80, 10, 200}
	for i, s := range scores {
		if err := lm.Record(LeaderboardEntry{Score: s, Mode: types.ModeTimeAttack, Date: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("Record failed in degraded mode: %v", err)
		}
	}

	entries := lm.Entries()
	want := []int{200, 120, 80, 80, 30}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Score != want[i] {
			t.Errorf("entry %d: got %d, want %d", i, e.Score, want[i])
		}
	}
	// 同分时先达成的在前
	if !entries[2].Date.Before(entries[3].Date) {
		t.Error("ties should keep the earlier entry first")
	}
}

func TestLeaderboardEntriesIsCopy(t *testing.T) {
	lm := NewLeaderboardManager(nil, 3)
	lm.Record(LeaderboardEntry{Score: 10})

	entries := lm.Entries()
	entries[0].Score = 999

	if lm.Entries()[0].Score != 10 {
		t.Error("Entries() should return a copy")
	}
}

func TestLeaderboardBest(t *testing.T) {
	lm := NewLeaderboardManager(nil, 5)
	lm.Record(LeaderboardEntry{Score: 50, Mode: types.ModeSurvival})
	lm.Record(LeaderboardEntry{Score: 90, Mode: types.ModeTimeAttack})
	lm.Record(LeaderboardEntry{Score: 70, Mode: types.ModeSurvival})

	best, ok := lm.Best(types.ModeSurvival)
	if !ok || best.Score != 70 {
		t.Errorf("Best(survival): got %+v %v", best, ok)
	}

	lm2 := NewLeaderboardManager(nil, 5)
	if _, ok := lm2.Best(types.ModeTimeAttack); ok {
		t.Error("empty leaderboard should have no best entry")
	}
}

// TestLeaderboardPersistence 通过 gdata 持久化
func TestLeaderboardPersistence(t *testing.T) {
	manager := createTestGdataManager(t, "leaderboard")
	date := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	lm1 := NewLeaderboardManager(manager, 5)
	if err := lm1.Record(LeaderboardEntry{Score: 150, Mode: types.ModeSurvival, Date: date}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := lm1.Record(LeaderboardEntry{Score: 60, Mode: types.ModeTimeAttack, Date: date}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	lm2 := NewLeaderboardManager(manager, 5)
	entries := lm2.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", len(entries))
	}
	if entries[0].Score != 150 || entries[0].Mode != types.ModeSurvival {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if !entries[0].Date.Equal(date) {
		t.Errorf("date not preserved: %v", entries[0].Date)
	}
	if entries[1].Mode != types.ModeTimeAttack {
		t.Errorf("mode not preserved: %v", entries[1].Mode)
	}
}

// TestLeaderboardCorruptData 存档损坏时从空榜开始
func TestLeaderboardCorruptData(t *testing.T) {
	manager := createTestGdataManager(t, "leaderboard_corrupt")
	if err := manager.SaveObjectProp(leaderboardObject, leaderboardProperty, []byte("{not: [valid")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	lm := NewLeaderboardManager(manager, 5)
	if len(lm.Entries()) != 0 {
		t.Errorf("expected empty leaderboard, got %d entries", len(lm.Entries()))
	}
}

// TestLeaderboardTopForMode 按模式过滤并截断
func TestLeaderboardTopForMode(t *testing.T) {
	lm := NewLeaderboardManager(nil, 10)
	lm.Record(LeaderboardEntry{Score: 50, Mode: types.ModeTimeAttack})
	lm.Record(LeaderboardEntry{Score: 90, Mode: types.ModeSurvival})
	lm.Record(LeaderboardEntry{Score: 70, Mode: types.ModeTimeAttack})
	lm.Record(LeaderboardEntry{Score: 20, Mode: types.ModeTimeAttack})

	top := lm.TopForMode(types.ModeTimeAttack, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Score != 70 || top[1].Score != 50 {
		t.Errorf("unexpected order: %+v", top)
	}
	if got := lm.TopForMode(types.ModeSurvival, 0); len(got) != 1 || got[0].Score != 90 {
		t.Errorf("survival entries: %+v", got)
	}
}
