package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framefuse/framefuse/internal/config"
)

// All 8 combinations of requested source and per-input audio presence.
func TestSelectAudio_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		requested  config.InputSlot
		hasAudio1  bool
		hasAudio2  bool
		wantMap    string
		wantSilent bool
	}{
		{"first requested, both have audio", config.InputFirst, true, true, "0:a:0", false},
		{"first requested, only first has audio", config.InputFirst, true, false, "0:a:0", false},
		{"first requested, only second has audio", config.InputFirst, false, true, "1:a:0", false},
		{"first requested, neither has audio", config.InputFirst, false, false, "2:a:0", true},
		{"second requested, both have audio", config.InputSecond, true, true, "1:a:0", false},
		{"second requested, only second has audio", config.InputSecond, false, true, "1:a:0", false},
		{"second requested, only first has audio", config.InputSecond, true, false, "0:a:0", false},
		{"second requested, neither has audio", config.InputSecond, false, false, "2:a:0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapSpec, silent := SelectAudio(tt.requested, tt.hasAudio1, tt.hasAudio2)
			assert.Equal(t, tt.wantMap, mapSpec)
			assert.Equal(t, tt.wantSilent, silent)
		})
	}
}
