package components

import "github.com/gonewx/slicehero/pkg/types"

// FeedbackKind 反馈事件类型
type FeedbackKind int

const (
	// FeedbackSlice 切中普通水果
	FeedbackSlice FeedbackKind = iota
	// FeedbackHazard 切中炸弹
	FeedbackHazard
	// FeedbackChill 切中寒冰水果
	FeedbackChill
	// FeedbackFrenzy 切中巨型水果
	FeedbackFrenzy
	// FeedbackMiss 存活模式下漏掉普通水果
	FeedbackMiss
)

// String 返回事件类型名
func (k FeedbackKind) String() string {
	switch k {
	case FeedbackSlice:
		return "slice"
	case FeedbackHazard:
		return "hazard"
	case FeedbackChill:
		return "chill"
	case FeedbackFrenzy:
		return "frenzy"
	case FeedbackMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// FeedbackEvent 每帧产生的反馈事件，供音效/渲染层消费
// 每帧开始时清空
type FeedbackEvent struct {
	Kind     FeedbackKind
	Category types.Category
	X, Y     float64
}
