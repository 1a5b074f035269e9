package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/ecs"
	"github.com/gonewx/slicehero/pkg/systems"
)

// PointerSource 指针（刀刃）位置来源
//
// Sample 返回自上次调用以来的最新采样；没有新采样时 ok 为 false。
type PointerSource interface {
	Sample() (p components.Point, ok bool)
}

// RenderSink 接收每帧结束时的快照
type RenderSink interface {
	Present(snapshot ecs.Snapshot)
}

// LatestPointer 在输入线程和模拟线程之间传递最新的指针位置
//
// 输入线程调用 Update，模拟线程每帧调用 Sample；同一个采样只会被取走一次。
type LatestPointer struct {
	mu    sync.Mutex
	p     components.Point
	fresh bool
}

// Update 写入新的采样
func (lp *LatestPointer) Update(p components.Point) {
	lp.mu.Lock()
	lp.p = p
	lp.fresh = true
	lp.mu.Unlock()
}

// Sample 实现 PointerSource
func (lp *LatestPointer) Sample() (components.Point, bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if !lp.fresh {
		return lp.p, false
	}
	lp.fresh = false
	return lp.p, true
}

// Command 在模拟线程中执行的状态机操作（开局、重开、返回菜单等）
type Command func(rc *RoundController) error

// maxTickDelta 单帧最多计入的真实时间，防止挂起恢复后倒计时瞬间归零
const maxTickDelta = 0.25

// Loop 以固定频率驱动 RoundController
//
// 取消只在两帧之间检查，正在执行的一帧总会完整结束。
type Loop struct {
	controller *RoundController
	source     PointerSource
	sink       RenderSink // 可为 nil
	interval   time.Duration
	commands   chan Command
}

// NewLoop 创建调度循环
//
// 参数:
//   - rc: 状态机
//   - source: 指针来源
//   - sink: 快照接收者，可为 nil
//   - tps: 每秒帧数
func NewLoop(rc *RoundController, source PointerSource, sink RenderSink, tps int) *Loop {
	if tps <= 0 {
		tps = 60
	}
	return &Loop{
		controller: rc,
		source:     source,
		sink:       sink,
		interval:   time.Second / time.Duration(tps),
		commands:   make(chan Command, 16),
	}
}

// Post 提交一条命令，在下一帧之前执行
// 队列已满时丢弃并返回 false
func (l *Loop) Post(cmd Command) bool {
	select {
	case l.commands <- cmd:
		return true
	default:
		log.Printf("[Loop] Warning: command queue full, dropping command")
		return false
	}
}

// Run 运行直到 ctx 取消
//
// 返回:
//   - error: ctx.Err()
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-l.commands:
			l.exec(cmd)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			l.Step(min(dt, maxTickDelta))
		}
	}
}

// Step 执行一帧：执行排队命令、采样指针、推进状态机、发布快照
func (l *Loop) Step(deltaTime float64) {
	l.drain()

	p, ok := l.source.Sample()
	l.controller.Tick(systems.StepInput{Pointer: p, HasPointer: ok, DeltaTime: deltaTime})

	if l.sink != nil {
		l.sink.Present(l.controller.Snapshot())
	}
}

func (l *Loop) drain() {
	for {
		select {
		case cmd := <-l.commands:
			l.exec(cmd)
		default:
			return
		}
	}
}

func (l *Loop) exec(cmd Command) {
	if err := cmd(l.controller); err != nil {
		log.Printf("[Loop] Command rejected: %v", err)
	}
}
