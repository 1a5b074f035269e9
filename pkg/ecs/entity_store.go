package ecs

import (
	"github.com/gonewx/slicehero/pkg/components"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityStore 保存一局中所有实体和会话状态
//
// 三个集合均保持插入顺序（切割检测按插入顺序遍历）。
// 删除一律延迟：系统只设置标记或耗尽生命，由 Compact 统一清理，
// 避免遍历过程中修改切片导致跳过或重复处理元素。
type EntityStore struct {
	nextID uint64

	Fruits    []*components.FruitComponent
	Particles []*components.ParticleComponent
	Texts     []*components.FloatingTextComponent

	// Events 本帧产生的反馈事件，每帧开始时清空
	Events []components.FeedbackEvent

	Session components.SessionState
}

// NewEntityStore 创建一个新的 EntityStore 实例
func NewEntityStore() *EntityStore {
	return &EntityStore{
		nextID:    1, // ID从1开始,0保留为无效ID
		Fruits:    make([]*components.FruitComponent, 0, 32),
		Particles: make([]*components.ParticleComponent, 0, 256),
		Texts:     make([]*components.FloatingTextComponent, 0, 16),
		Events:    make([]components.FeedbackEvent, 0, 8),
		Session:   components.SessionState{Stats: components.NewRoundStats()},
	}
}

// AddFruit 添加水果并分配唯一ID
func (s *EntityStore) AddFruit(f *components.FruitComponent) EntityID {
	id := EntityID(s.nextID)
	s.nextID++
	f.ID = uint64(id)
	s.Fruits = append(s.Fruits, f)
	return id
}

// AddParticle 添加粒子
func (s *EntityStore) AddParticle(p *components.ParticleComponent) {
	s.Particles = append(s.Particles, p)
}

// AddText 添加浮动文字
func (s *EntityStore) AddText(t *components.FloatingTextComponent) {
	s.Texts = append(s.Texts, t)
}

// Emit 记录一条反馈事件
func (s *EntityStore) Emit(e components.FeedbackEvent) {
	s.Events = append(s.Events, e)
}

// DestroyFruit 标记水果待删除(不立即删除)
func (s *EntityStore) DestroyFruit(f *components.FruitComponent) {
	f.Remove = true
}

// LiveFruitCount 返回未标记删除的水果数量
func (s *EntityStore) LiveFruitCount() int {
	n := 0
	for _, f := range s.Fruits {
		if !f.Remove {
			n++
		}
	}
	return n
}

// Compact 清理所有标记删除的水果、生命耗尽的粒子和文字
// 幸存者保持原有相对顺序；连续调用两次与调用一次效果相同
func (s *EntityStore) Compact() {
	s.Fruits = compactFruits(s.Fruits)
	s.Particles = compactParticles(s.Particles)
	s.Texts = compactTexts(s.Texts)
}

// ClearEvents 清空本帧事件
func (s *EntityStore) ClearEvents() {
	s.Events = s.Events[:0]
}

// Reset 清空所有集合并用给定初始状态重新开始一局
func (s *EntityStore) Reset(initial components.SessionState) {
	clear(s.Fruits)
	clear(s.Particles)
	clear(s.Texts)
	s.Fruits = s.Fruits[:0]
	s.Particles = s.Particles[:0]
	s.Texts = s.Texts[:0]
	s.Events = s.Events[:0]
	s.nextID = 1

	if initial.Stats.Sliced == nil {
		initial.Stats = components.NewRoundStats()
	}
	s.Session = initial
}

func compactFruits(list []*components.FruitComponent) []*components.FruitComponent {
	n := 0
	for _, f := range list {
		if !f.Remove {
			list[n] = f
			n++
		}
	}
	clear(list[n:]) // 释放引用
	return list[:n]
}

func compactParticles(list []*components.ParticleComponent) []*components.ParticleComponent {
	n := 0
	for _, p := range list {
		if p.Life > 0 {
			list[n] = p
			n++
		}
	}
	clear(list[n:])
	return list[:n]
}

func compactTexts(list []*components.FloatingTextComponent) []*components.FloatingTextComponent {
	n := 0
	for _, t := range list {
		if t.Life > 0 {
			list[n] = t
			n++
		}
	}
	clear(list[n:])
	return list[:n]
}
