// Package audio 合成游戏音效
//
// 所有音效都由振荡器实时合成，不依赖音频文件。
// 终端前端直接把 beep.Streamer 交给 speaker 播放；
// 桌面前端先用 Render 转成 16 位 PCM，再交给 ebiten 的 audio.Player。
package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate 默认采样率
const SampleRate = beep.SampleRate(44100)

// Effect 音效种类
type Effect int

const (
	// EffectSlice 切中普通水果
	EffectSlice Effect = iota
	// EffectHazard 切中炸弹
	EffectHazard
	// EffectChill 切中寒冰水果
	EffectChill
	// EffectFrenzy 切中巨型水果
	EffectFrenzy
	// EffectMiss 漏掉水果
	EffectMiss
	// EffectRoundEnd 一局结束
	EffectRoundEnd

	numEffects
)

var effectNames = [numEffects]string{"slice", "hazard", "chill", "frenzy", "miss", "round_end"}

// String 返回音效名
func (e Effect) String() string {
	if e < 0 || e >= numEffects {
		return "unknown"
	}
	return effectNames[e]
}

// AllEffects 返回全部音效
func AllEffects() []Effect {
	all := make([]Effect, numEffects)
	for i := range all {
		all[i] = Effect(i)
	}
	return all
}

// NewEffect 创建一个音效流
//
// 参数:
//   - e: 音效种类
//   - sr: 采样率
//   - volume: 音量 0.0 ~ 1.0，0 为静音
//
// 返回:
//   - beep.Streamer: 有限长度的音效流
//   - error: 未知音效或频率超出采样率范围
func NewEffect(e Effect, sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch e {
	case EffectSlice:
		s, err = sliceSound(sr)
	case EffectHazard:
		s, err = hazardSound(sr)
	case EffectChill:
		s, err = chillSound(sr)
	case EffectFrenzy:
		s, err = arpeggio(sr, 70*time.Millisecond, 523.25, 659.25, 783.99, 1046.5)
	case EffectMiss:
		s, err = tone(sr, 220, 160*time.Millisecond, 5*time.Millisecond, 120*time.Millisecond)
	case EffectRoundEnd:
		s, err = arpeggio(sr, 140*time.Millisecond, 783.99, 659.25, 523.25, 392.0)
	default:
		return nil, fmt.Errorf("unknown effect: %d", e)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s effect: %w", e, err)
	}
	return withVolume(s, volume), nil
}

// sliceSound 短促的风声加高音
func sliceSound(sr beep.SampleRate) (beep.Streamer, error) {
	d := 90 * time.Millisecond
	high, err := tone(sr, 1320, d, 2*time.Millisecond, 70*time.Millisecond)
	if err != nil {
		return nil, err
	}
	whoosh := shape(noise(sr, d), d, 10*time.Millisecond, 60*time.Millisecond, sr)
	return beep.Mix(withVolume(whoosh, 0.6), withVolume(high, 0.3)), nil
}

// hazardSound 低频加噪声的爆炸声
func hazardSound(sr beep.SampleRate) (beep.Streamer, error) {
	d := 350 * time.Millisecond
	boom, err := tone(sr, 70, d, 5*time.Millisecond, 300*time.Millisecond)
	if err != nil {
		return nil, err
	}
	crackle := shape(noise(sr, d), d, 1*time.Millisecond, 320*time.Millisecond, sr)
	return beep.Mix(withVolume(boom, 0.8), withVolume(crackle, 0.5)), nil
}

// chillSound 带泛音的铃声
func chillSound(sr beep.SampleRate) (beep.Streamer, error) {
	d := 450 * time.Millisecond
	fund, err := tone(sr, 1318.5, d, 3*time.Millisecond, 400*time.Millisecond)
	if err != nil {
		return nil, err
	}
	over, err := tone(sr, 2637.0, d, 3*time.Millisecond, 250*time.Millisecond)
	if err != nil {
		return nil, err
	}
	return beep.Mix(withVolume(fund, 0.6), withVolume(over, 0.25)), nil
}

// arpeggio 依次播放若干个音
func arpeggio(sr beep.SampleRate, step time.Duration, freqs ...float64) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		n, err := tone(sr, f, step, 3*time.Millisecond, step/2)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return beep.Seq(notes...), nil
}

// tone 带包络的正弦音
func tone(sr beep.SampleRate, freq float64, d, attack, release time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return shape(beep.Take(sr.N(d), sine), d, attack, release, sr), nil
}

// noise 白噪声
func noise(sr beep.SampleRate, d time.Duration) beep.Streamer {
	remaining := sr.N(d)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if remaining <= 0 {
			return 0, false
		}
		n := min(len(samples), remaining)
		for i := 0; i < n; i++ {
			v := rand.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		remaining -= n
		return n, true
	})
}

// envelope 线性起音/释音包络
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func shape(s beep.Streamer, d, attack, release time.Duration, sr beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   sr.N(attack),
		release:  sr.N(release),
		total:    sr.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, false
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if e.release > 0 && e.pos >= e.total-e.release {
			vol = math.Min(vol, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume 线性音量转换为 effects.Volume（以 2 为底）
// math.Log2(0) 为 -Inf，音量 <= 0 时直接静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
