package components

import (
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/kamstrup/intmap"
)

// SessionState 一局游戏的全局状态
//
// 开局时由 EntityStore.Reset 初始化，游戏过程中由各系统修改，结算时冻结。
type SessionState struct {
	Mode  types.GameMode
	Score int // 可以为负

	RemainingTime float64 // 限时模式剩余秒数
	Lives         int     // 存活模式剩余生命

	SlowMotionTimer int     // 慢动作剩余帧数
	FrenzyTimer     int     // 狂热剩余帧数
	SpawnTimer      float64 // 生成计时累加器（帧）

	Tick  uint64 // 本局已执行帧数
	Stats RoundStats
}

// RoundStats 一局的统计数据
type RoundStats struct {
	Sliced    *intmap.Map[types.Category, int] // 各类别切中次数
	Missed    int                              // 存活模式漏掉的普通水果数
	BestCombo int                              // 单帧内最多切中数
}

// NewRoundStats 创建空统计
func NewRoundStats() RoundStats {
	return RoundStats{Sliced: intmap.New[types.Category, int](int(types.NumCategories))}
}

// AddSlice 记录一次切中
func (s *RoundStats) AddSlice(c types.Category) {
	if s.Sliced == nil {
		s.Sliced = intmap.New[types.Category, int](int(types.NumCategories))
	}
	n, _ := s.Sliced.Get(c)
	s.Sliced.Put(c, n+1)
}

// SlicedCount 返回某类别的切中次数
func (s *RoundStats) SlicedCount(c types.Category) int {
	if s.Sliced == nil {
		return 0
	}
	n, _ := s.Sliced.Get(c)
	return n
}

// TotalSliced 返回切中总数
func (s *RoundStats) TotalSliced() int {
	total := 0
	for _, c := range types.AllCategories() {
		total += s.SlicedCount(c)
	}
	return total
}

// Clone 深拷贝统计（Sliced 为指针类型，按值复制会共享）
func (s RoundStats) Clone() RoundStats {
	out := NewRoundStats()
	for _, c := range types.AllCategories() {
		if n := s.SlicedCount(c); n > 0 {
			out.Sliced.Put(c, n)
		}
	}
	out.Missed = s.Missed
	out.BestCombo = s.BestCombo
	return out
}
