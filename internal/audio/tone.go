// Package audio 生成编辑器提示音的 PCM 数据
//
// 输出格式为 16 位有符号小端立体声，可直接交给 Ebitengine 的 audio.Player。
package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

const (
	// SampleRate 提示音采样率
	SampleRate = 44100
	// CueDuration 单个提示音的时长
	CueDuration = 50 * time.Millisecond

	bytesPerFrame = 4   // 2 声道 × 16 位
	amplitude     = 0.3 // 相对满幅
	fadeFrames    = 64  // 首尾淡入淡出，避免爆音
)

// 提示音频率（Hz）
const (
	FreqPlaced   = 660.0
	FreqMoved    = 880.0
	FreqCleared  = 440.0
	FreqRejected = 220.0
)

// ToneStream 正弦波 PCM 数据流
type ToneStream struct {
	data       []byte
	sampleRate int
	offset     int64
}

// NewTone 生成指定频率和时长的正弦波
//
// 参数:
//   - freq: 频率（Hz）
//   - d: 时长
//   - sampleRate: 采样率（Hz）
func NewTone(freq float64, d time.Duration, sampleRate int) *ToneStream {
	frames := int(float64(sampleRate) * d.Seconds())
	if frames < 0 {
		frames = 0
	}
	data := make([]byte, frames*bytesPerFrame)
	for i := 0; i < frames; i++ {
		gain := amplitude
		if edge := min(i, frames-1-i); edge < fadeFrames {
			gain *= float64(edge) / fadeFrames
		}
		v := int16(gain * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		off := i * bytesPerFrame
		// 左右声道相同
		data[off] = byte(v)
		data[off+1] = byte(v >> 8)
		data[off+2] = byte(v)
		data[off+3] = byte(v >> 8)
	}
	return &ToneStream{data: data, sampleRate: sampleRate}
}

// Read 实现 io.Reader
func (t *ToneStream) Read(p []byte) (n int, err error) {
	if t.offset >= int64(len(t.data)) {
		return 0, io.EOF
	}
	n = copy(p, t.data[t.offset:])
	t.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (t *ToneStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = t.offset + offset
	case io.SeekEnd:
		next = int64(len(t.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	t.offset = next
	return next, nil
}

// Length 返回数据总字节数
func (t *ToneStream) Length() int64 {
	return int64(len(t.data))
}

// SampleRate 返回采样率
func (t *ToneStream) SampleRate() int {
	return t.sampleRate
}

// Sample 返回第 i 帧左声道的采样值，越界时返回 0
func (t *ToneStream) Sample(i int) int16 {
	off := i * bytesPerFrame
	if i < 0 || off+1 >= len(t.data) {
		return 0
	}
	return int16(uint16(t.data[off]) | uint16(t.data[off+1])<<8)
}
