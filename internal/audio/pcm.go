package audio

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
)

// renderChunk 每次从音效流读取的采样数
const renderChunk = 512

// Render 把有限长度的音效流转成 16 位小端双声道 PCM
//
// 参数:
//   - s: 音效流
//   - maxSamples: 最多读取的采样数，防止误传无限流
//
// 返回:
//   - []byte: PCM 数据，每个采样 4 字节
func Render(s beep.Streamer, maxSamples int) []byte {
	out := make([]byte, 0, 4*renderChunk)
	buf := make([][2]float64, renderChunk)

	for total := 0; total < maxSamples; {
		want := min(renderChunk, maxSamples-total)
		n, ok := s.Stream(buf[:want])
		for i := 0; i < n; i++ {
			l := toInt16(buf[i][0])
			r := toInt16(buf[i][1])
			out = append(out, byte(l), byte(l>>8), byte(r), byte(r>>8))
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// PCMStream 可重复播放的内存 PCM 流
// 实现 io.ReadSeeker，并提供 ebiten audio.Player 需要的 Length
type PCMStream struct {
	data   []byte
	offset int64
}

// NewPCMStream 包装 Render 的输出
func NewPCMStream(data []byte) *PCMStream {
	return &PCMStream{data: data}
}

// Read 实现 io.Reader
func (p *PCMStream) Read(b []byte) (n int, err error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n = copy(b, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (p *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = p.offset + offset
	case io.SeekEnd:
		next = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	p.offset = next
	return next, nil
}

// Length 返回 PCM 总字节数
func (p *PCMStream) Length() int64 {
	return int64(len(p.data))
}
