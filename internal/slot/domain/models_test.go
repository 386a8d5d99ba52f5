package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentFull(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		capacity float64
		want     float64
	}{
		{"half full", 500, 1000, 50},
		{"empty", 0, 1000, 0},
		{"full", 1000, 1000, 100},
		{"overfilled clamps to 100", 1200, 1000, 100},
		{"negative clamps to 0", -10, 1000, 0},
		{"zero capacity", 500, 0, 0},
		{"negative capacity", 500, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := BottleSlot{CurrentVolumeML: tt.current, CapacityML: tt.capacity}
			assert.Equal(t, tt.want, slot.PercentFull())
		})
	}
}
