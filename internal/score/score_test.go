package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   float64
		wantStars int
		wantCoins int
	}{
		{"instant", 0, 3, 150},
		{"just under three stars", 89.9, 3, 150},
		{"exactly ninety", 90.0, 2, 75},
		{"mid two stars", 120, 2, 75},
		{"just under two stars", 149.9, 2, 75},
		{"exactly one-fifty", 150.0, 1, 50},
		{"very slow", 1000, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Grade(tt.elapsed)
			assert.Equal(t, tt.wantStars, r.Stars)
			assert.Equal(t, tt.wantCoins, r.Coins)
			assert.Equal(t, tt.elapsed, r.Elapsed)
		})
	}
}
