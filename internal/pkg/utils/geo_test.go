package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waste-management/internal/pkg/utils"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		d := utils.HaversineDistance(6.5244, 3.3792, 6.5244, 3.3792)
		assert.Equal(t, 0.0, d)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := utils.HaversineDistance(6.5244, 3.3792, 6.4550, 3.3841)
		d2 := utils.HaversineDistance(6.4550, 3.3841, 6.5244, 3.3792)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("known distance Lagos to Abuja", func(t *testing.T) {
		// Lagos (6.5244, 3.3792) -> Abuja (9.0765, 7.3986), примерно 526 км
		d := utils.HaversineDistance(6.5244, 3.3792, 9.0765, 7.3986)
		assert.InDelta(t, 525.9, d, 1.0)
	})

	t.Run("short distance within a city", func(t *testing.T) {
		d := utils.HaversineDistance(6.5244, 3.3792, 6.5344, 3.3792)
		assert.InDelta(t, 1.11, d, 0.05)
	})
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		lat   float64
		lng   float64
		valid bool
	}{
		{"valid point", 6.5244, 3.3792, true},
		{"lat upper bound", 90, 0, true},
		{"lat out of range", 90.01, 0, false},
		{"lng lower bound", 0, -180, true},
		{"lng out of range", 0, 180.5, false},
		{"both out of range", -91, 181, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, utils.ValidateCoordinates(tt.lat, tt.lng))
		})
	}
}
