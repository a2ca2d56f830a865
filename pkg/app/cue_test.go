package app

import (
	"testing"

	"github.com/decker502/ceilplan/internal/audio"
	"github.com/decker502/ceilplan/pkg/systems"
)

// TestCueFrequency 拖拽中止和无结果不发声
func TestCueFrequency(t *testing.T) {
	tests := []struct {
		outcome systems.InteractionOutcome
		want    float64
		wantOK  bool
	}{
		{systems.OutcomePlaced, audio.FreqPlaced, true},
		{systems.OutcomeMoved, audio.FreqMoved, true},
		{systems.OutcomeCleared, audio.FreqCleared, true},
		{systems.OutcomeDropRejected, audio.FreqRejected, true},
		{systems.OutcomeDragAborted, 0, false},
		{systems.OutcomeNone, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			got, ok := cueFrequency(tt.outcome)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("cueFrequency() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
