package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/systems"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/google/uuid"
)

// RoundState 一局游戏的外层状态
type RoundState int

const (
	// StateIdle 等待指针源就绪（加载中或出错）
	StateIdle RoundState = iota
	// StateReady 菜单/准备界面，刀刃可以演示但不计分
	StateReady
	// StatePlaying 游戏中
	StatePlaying
	// StateFinished 结算界面，模拟冻结
	StateFinished
)

// String 返回状态名
func (s RoundState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition 当前状态不允许该操作
var ErrInvalidTransition = errors.New("invalid round state transition")

// RoundResult 一局的最终结果
type RoundResult struct {
	ID       string // 本局唯一标识，同时写入排行榜条目
	Mode     types.GameMode
	Score    int
	Stats    components.RoundStats
	EndedAt  time.Time
	Recorded bool // 是否成功写入排行榜
}

// RoundController 管理 idle -> ready -> playing -> finished 状态机
//
// 只在持有者的 goroutine 中调用；渲染层通过 Snapshot 读取状态。
type RoundController struct {
	sim         *systems.Simulation
	leaderboard Leaderboard // 可为 nil
	now         func() time.Time

	state   RoundState
	roundID string
	mode    types.GameMode
	message string
	result  *RoundResult

	// OnFinish 一局结束时回调（结果已写入排行榜之后）
	OnFinish func(RoundResult)
}

// NewRoundController 创建状态机，初始为 idle
//
// 参数:
//   - sim: 模拟实例
//   - leaderboard: 排行榜，可为 nil（不记录成绩）
func NewRoundController(sim *systems.Simulation, leaderboard Leaderboard) *RoundController {
	return &RoundController{
		sim:         sim,
		leaderboard: leaderboard,
		now:         time.Now,
		state:       StateIdle,
	}
}

// State 返回当前状态
func (rc *RoundController) State() RoundState { return rc.state }

// Mode 返回当前（或最近一局）的模式
func (rc *RoundController) Mode() types.GameMode { return rc.mode }

// Message 返回指针源未就绪时的提示信息
func (rc *RoundController) Message() string { return rc.message }

// Result 返回最近一局的结果，尚未结束时为 nil
func (rc *RoundController) Result() *RoundResult { return rc.result }

// Simulation 返回内部模拟（测试和调试用）
func (rc *RoundController) Simulation() *systems.Simulation { return rc.sim }

// SetSourceReady 报告指针源状态
//
// 参数:
//   - ok: 指针源是否可用
//   - message: 不可用时展示给用户的原因
func (rc *RoundController) SetSourceReady(ok bool, message string) {
	rc.message = message
	if rc.state != StateIdle {
		return
	}
	if ok {
		rc.state = StateReady
		log.Printf("[RoundController] Pointer source ready")
		return
	}
	log.Printf("[RoundController] Pointer source unavailable: %s", message)
}

// StartRound 以指定模式开局
// 只允许在 ready 或 finished 状态调用
func (rc *RoundController) StartRound(mode types.GameMode) error {
	if rc.state != StateReady && rc.state != StateFinished {
		return fmt.Errorf("start round from %s: %w", rc.state, ErrInvalidTransition)
	}
	rc.begin(mode)
	return nil
}

// Restart 结算界面直接以相同模式再来一局
func (rc *RoundController) Restart() error {
	if rc.state != StateFinished {
		return fmt.Errorf("restart from %s: %w", rc.state, ErrInvalidTransition)
	}
	rc.begin(rc.mode)
	return nil
}

// AcknowledgeEnd 离开结算界面回到菜单
func (rc *RoundController) AcknowledgeEnd() error {
	if rc.state != StateFinished {
		return fmt.Errorf("acknowledge end from %s: %w", rc.state, ErrInvalidTransition)
	}
	rc.state = StateReady
	return nil
}

func (rc *RoundController) begin(mode types.GameMode) {
	rc.mode = mode
	rc.roundID = uuid.NewString()
	rc.result = nil
	rc.sim.Reset(mode)
	rc.state = StatePlaying
	log.Printf("[RoundController] Round started: mode=%s id=%s", mode, rc.roundID)
}

// Tick 推进一帧
//
// idle 与 finished 状态下不做任何事；ready 状态只更新刀刃轨迹；
// playing 状态执行完整模拟，整帧结束后再检查结束条件。
//
// 返回:
//   - bool: 本帧是否刚刚结束一局
func (rc *RoundController) Tick(in systems.StepInput) bool {
	switch rc.state {
	case StateReady:
		rc.sim.StepPointerOnly(in)
		return false
	case StatePlaying:
		rc.sim.Step(in)
		if rc.sim.RoundOver() {
			rc.finish()
			return true
		}
		return false
	default:
		return false
	}
}

// finish 冻结模拟、写入排行榜，只会在 playing 状态调用一次
func (rc *RoundController) finish() {
	session := rc.sim.Store.Session
	result := RoundResult{
		ID:      rc.roundID,
		Mode:    session.Mode,
		Score:   session.Score,
		Stats:   session.Stats.Clone(),
		EndedAt: rc.now(),
	}

	if rc.leaderboard != nil {
		entry := LeaderboardEntry{ID: result.ID, Score: result.Score, Mode: result.Mode, Date: result.EndedAt}
		if err := rc.leaderboard.Record(entry); err != nil {
			log.Printf("[RoundController] Warning: Failed to record score: %v", err)
		} else {
			result.Recorded = true
		}
	}

	rc.result = &result
	rc.state = StateFinished
	log.Printf("[RoundController] Round finished: mode=%s score=%d sliced=%d missed=%d",
		result.Mode, result.Score, result.Stats.TotalSliced(), result.Stats.Missed)

	if rc.OnFinish != nil {
		rc.OnFinish(result)
	}
}

// Snapshot 返回当前帧的只读副本
func (rc *RoundController) Snapshot() ecs.Snapshot {
	return rc.sim.Snapshot()
}
