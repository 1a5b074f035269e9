package game

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/gonewx/slicehero/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	ID    string         `yaml:"id,omitempty"` // 对应 RoundResult.ID，旧存档为空
	Score int            `yaml:"score"`
	Mode  types.GameMode `yaml:"mode"`
	Date  time.Time      `yaml:"date"`
}

// Leaderboard 成绩记录接口
type Leaderboard interface {
	Record(entry LeaderboardEntry) error
}

// DefaultLeaderboardSize 默认保留的条目数
const DefaultLeaderboardSize = 5

// 存储路径常量
const (
	leaderboardObject   = "leaderboard"
	leaderboardProperty = "entries"
)

// LeaderboardManager 本地排行榜
//
// 只保留分数最高的若干条，按分数降序排列，同分时先达成的在前。
// gdataManager 为 nil 时只在内存中保存（降级模式）。
type LeaderboardManager struct {
	gdataManager *gdata.Manager
	size         int
	entries      []LeaderboardEntry
}

// NewLeaderboardManager 创建排行榜并加载已保存的记录
//
// 参数：
//   - gdataManager: 存储管理器，可为 nil
//   - size: 保留条目数，<= 0 时使用 DefaultLeaderboardSize
func NewLeaderboardManager(gdataManager *gdata.Manager, size int) *LeaderboardManager {
	if size <= 0 {
		size = DefaultLeaderboardSize
	}
	lm := &LeaderboardManager{
		gdataManager: gdataManager,
		size:         size,
	}
	if err := lm.Load(); err != nil {
		// 加载失败不是致命错误，从空榜开始
		log.Printf("[LeaderboardManager] Warning: Failed to load leaderboard: %v (starting empty)", err)
	}
	return lm
}

// Load 从 gdata 读取排行榜
func (lm *LeaderboardManager) Load() error {
	lm.entries = nil
	if lm.gdataManager == nil {
		return nil
	}
	if !lm.gdataManager.ObjectPropExists(leaderboardObject, leaderboardProperty) {
		return nil
	}

	data, err := lm.gdataManager.LoadObjectProp(leaderboardObject, leaderboardProperty)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	var entries []LeaderboardEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	lm.entries = lm.normalize(entries)
	log.Printf("[LeaderboardManager] Loaded %d entries", len(lm.entries))
	return nil
}

// Record 加入一条成绩并持久化
//
// 内存中的排行榜总会更新；只有持久化失败时返回错误。
func (lm *LeaderboardManager) Record(entry LeaderboardEntry) error {
	lm.entries = lm.normalize(append(lm.entries, entry))
	return lm.save()
}

// Entries 返回排行榜副本（降序）
func (lm *LeaderboardManager) Entries() []LeaderboardEntry {
	return slices.Clone(lm.entries)
}

// Best 返回指定模式的最高分
func (lm *LeaderboardManager) Best(mode types.GameMode) (LeaderboardEntry, bool) {
	for _, e := range lm.entries {
		if e.Mode == mode {
			return e, true
		}
	}
	return LeaderboardEntry{}, false
}

// TopForMode 返回指定模式的前 n 条（n <= 0 时返回全部）
func (lm *LeaderboardManager) TopForMode(mode types.GameMode, n int) []LeaderboardEntry {
	var out []LeaderboardEntry
	for _, e := range lm.entries {
		if e.Mode != mode {
			continue
		}
		out = append(out, e)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// normalize 排序并截断
func (lm *LeaderboardManager) normalize(entries []LeaderboardEntry) []LeaderboardEntry {
	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		return b.Score - a.Score
	})
	if len(entries) > lm.size {
		entries = entries[:lm.size]
	}
	return entries
}

func (lm *LeaderboardManager) save() error {
	if lm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(lm.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := lm.gdataManager.SaveObjectProp(leaderboardObject, leaderboardProperty, data); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}
