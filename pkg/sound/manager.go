// Package sound 把模拟产生的反馈事件播放为音效
//
// 与 pkg/game 分开，使无窗口的工具和终端前端不必链接 ebiten 的音频后端。
package sound

import (
	"log"
	"time"

	sfx "github.com/gonewx/slicehero/internal/audio"
	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// maxEffectLength 单个音效的最长时长
const maxEffectLength = 2 * time.Second

// Manager 把每帧的反馈事件转成音效
//
// 音效由 internal/audio 合成，开局前一次性渲染为 PCM 并缓存播放器。
// context 为 nil 时所有播放调用都是空操作（无声卡或测试环境）。
type Manager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager // 可为 nil
	players         map[sfx.Effect]*audio.Player
}

// NewManager 创建音效管理器并预渲染全部音效
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: 设置管理器，可为 nil
func NewManager(ctx *audio.Context, sm *game.SettingsManager) *Manager {
	am := &Manager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[sfx.Effect]*audio.Player),
	}
	if ctx == nil {
		return am
	}

	sr := beep.SampleRate(ctx.SampleRate())
	for _, e := range sfx.AllEffects() {
		stream, err := sfx.NewEffect(e, sr, 1.0)
		if err != nil {
			log.Printf("[Sound] Warning: Failed to synthesize %s: %v", e, err)
			continue
		}
		pcm := sfx.Render(stream, sr.N(maxEffectLength))
		player, err := ctx.NewPlayer(sfx.NewPCMStream(pcm))
		if err != nil {
			log.Printf("[Sound] Warning: Failed to create player for %s: %v", e, err)
			continue
		}
		am.players[e] = player
	}
	log.Printf("[Sound] Prepared %d sound effects", len(am.players))
	return am
}

// EffectForFeedback 返回反馈事件对应的音效
func EffectForFeedback(kind components.FeedbackKind) sfx.Effect {
	switch kind {
	case components.FeedbackHazard:
		return sfx.EffectHazard
	case components.FeedbackChill:
		return sfx.EffectChill
	case components.FeedbackFrenzy:
		return sfx.EffectFrenzy
	case components.FeedbackMiss:
		return sfx.EffectMiss
	default:
		return sfx.EffectSlice
	}
}

// EffectsForEvents 按首次出现顺序返回本帧需要播放的音效（同类只播一次）
func EffectsForEvents(events []components.FeedbackEvent) []sfx.Effect {
	var out []sfx.Effect
	seen := make(map[sfx.Effect]bool, len(events))
	for _, ev := range events {
		e := EffectForFeedback(ev.Kind)
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// PlayFeedback 播放本帧反馈事件对应的音效
//
// 返回：
//   - int: 实际播放的音效数
func (am *Manager) PlayFeedback(events []components.FeedbackEvent) int {
	played := 0
	for _, e := range EffectsForEvents(events) {
		if am.PlayEffect(e) {
			played++
		}
	}
	return played
}

// PlayEffect 从头播放一个音效
func (am *Manager) PlayEffect(e sfx.Effect) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player, ok := am.players[e]
	if !ok {
		return false
	}

	player.SetVolume(am.soundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[Sound] Warning: Failed to rewind %s: %v", e, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量并同步到设置
func (am *Manager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.players {
		player.SetVolume(am.soundVolume())
	}
}

func (am *Manager) soundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return game.DefaultSettings().SoundVolume
}
