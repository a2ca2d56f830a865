package app

import (
	"github.com/decker502/ceilplan/internal/audio"
	"github.com/decker502/ceilplan/pkg/game"
	"github.com/decker502/ceilplan/pkg/systems"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// cuePlayer 把交互结果转换为提示音
// 每次播放前检查偏好设置，运行中切换静音立即生效
type cuePlayer struct {
	context  *ebitenaudio.Context
	settings *game.SettingsManager
	tones    map[float64][]byte
}

func newCuePlayer(settings *game.SettingsManager) *cuePlayer {
	// 每个进程只能有一个音频上下文
	ctx := ebitenaudio.CurrentContext()
	if ctx == nil {
		ctx = ebitenaudio.NewContext(audio.SampleRate)
	}
	return &cuePlayer{
		context:  ctx,
		settings: settings,
		tones:    make(map[float64][]byte),
	}
}

func (c *cuePlayer) onOutcome(outcome systems.InteractionOutcome) {
	if !c.settings.Settings().SoundEnabled {
		return
	}
	freq, ok := cueFrequency(outcome)
	if !ok {
		return
	}
	data, ok := c.tones[freq]
	if !ok {
		tone := audio.NewTone(freq, audio.CueDuration, audio.SampleRate)
		data = make([]byte, tone.Length())
		if _, err := tone.Read(data); err != nil {
			appLog.Warn().Err(err).Float64("freq", freq).Msg("failed to render cue")
			return
		}
		c.tones[freq] = data
	}
	c.context.NewPlayerFromBytes(data).Play()
}

// cueFrequency 交互结果对应的提示音频率，ok 为 false 表示不发声
func cueFrequency(outcome systems.InteractionOutcome) (freq float64, ok bool) {
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
