package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAward(t *testing.T) {
	tests := []struct {
		name         string
		scorePercent int
		want         int
	}{
		{"zero score gets base", 0, 30},
		{"below high threshold", 67, 30},
		{"just under threshold", 79, 30},
		{"at threshold", 80, 40},
		{"above threshold", 99, 40},
		{"perfect", 100, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeAward(tt.scorePercent))
		})
	}
}

func TestMaxAwardXP(t *testing.T) {
	assert.Equal(t, 60, MaxAwardXP)
	assert.Equal(t, MaxAwardXP, ComputeAward(100))
}
