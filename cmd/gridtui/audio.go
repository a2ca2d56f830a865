package main

import (
	"time"

	"github.com/decker502/ceilplan/internal/audio"
	"github.com/decker502/ceilplan/pkg/systems"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const cueSampleRate = beep.SampleRate(audio.SampleRate)

// openCue 打开音频设备，测试中可替换
var openCue = newCue

// toneFor 交互结果对应的提示音频率
func toneFor(outcome systems.InteractionOutcome) (float64, bool) {
	switch outcome {
	case systems.OutcomePlaced:
		return audio.FreqPlaced, true
	case systems.OutcomeMoved:
		return audio.FreqMoved, true
	case systems.OutcomeCleared:
		return audio.FreqCleared, true
	case systems.OutcomeDropRejected:
		return audio.FreqRejected, true
	}
	return 0, false
}

// cue 放置、移动、拒绝放下时的短促提示音
// nil 表示音频不可用，所有方法都是空操作
type cue struct {
	sampleRate beep.SampleRate
}

func newCue() (*cue, error) {
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &cue{sampleRate: cueSampleRate}, nil
}

func (c *cue) play(freq float64) {
	if c == nil {
		return
	}
	sine, err := generators.SineTone(c.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.sampleRate.N(audio.CueDuration), sine))
}

func (c *cue) close() {
	if c == nil {
		return
	}
	speaker.Close()
}
