package main

import (
	"log"
	"time"

	sfx "github.com/gonewx/slicehero/internal/audio"
	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gopxl/beep/speaker"
)

// soundBoard 通过 beep speaker 播放合成音效
// speaker 初始化失败时静默运行
type soundBoard struct {
	settings    *game.SettingsManager
	initialized bool
}

func newSoundBoard(settings *game.SettingsManager) *soundBoard {
	sb := &soundBoard{settings: settings}
	sr := sfx.SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		// Non-fatal, game can run without sound
		log.Printf("[Sound] Audio initialization failed: %v", err)
		return sb
	}
	sb.initialized = true
	return sb
}

// PlayFeedback 播放一帧的反馈事件，同类事件只响一次
func (sb *soundBoard) PlayFeedback(events []components.FeedbackEvent) {
	for _, e := range game.EffectsForEvents(events) {
		sb.Play(e)
	}
}

// Play 播放单个音效
func (sb *soundBoard) Play(e sfx.Effect) {
	if !sb.initialized || !sb.settings.GetSettings().SoundEnabled {
		return
	}
	s, err := sfx.NewEffect(e, sfx.SampleRate, sb.settings.GetSettings().SoundVolume)
	if err != nil {
		log.Printf("[Sound] Failed to build %s: %v", e, err)
		return
	}
	speaker.Play(s)
}

// Close 停止播放并释放设备
func (sb *soundBoard) Close() {
	if !sb.initialized {
		return
	}
	speaker.Close()
}
