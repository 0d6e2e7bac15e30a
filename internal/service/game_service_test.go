package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGameSteps(t *testing.T) {
	steps := NewGameService().GetGameSteps()
	require.Len(t, steps, 8)

	total := 0
	for i, step := range steps {
		assert.Equal(t, i+1, step.StepID)
		assert.NotEmpty(t, step.Question)
		assert.NotEmpty(t, step.Options)
		assert.NotEmpty(t, step.Category)
		total += step.Points
	}
	// a user answering every step collects the full score
	assert.Equal(t, 90, total)
}

func TestGameScore(t *testing.T) {
	tests := []struct {
		name      string
		responses []any
		want      int
	}{
		{
			name: "sums points across entries",
			responses: []any{
				map[string]any{"stepId": float64(1), "points": float64(10)},
				map[string]any{"stepId": float64(3), "points": float64(15)},
				map[string]any{"stepId": float64(8), "points": float64(20)},
			},
			want: 45,
		},
		{
			name:      "nil responses score zero",
			responses: nil,
			want:      0,
		},
		{
			name: "malformed entries contribute zero",
			responses: []any{
				"not an object",
				float64(42),
				map[string]any{"points": "ten"},
				map[string]any{"stepId": float64(2)},
				map[string]any{"points": float64(5)},
			},
			want: 5,
		},
		{
			name: "fractional points truncate",
			responses: []any{
				map[string]any{"points": float64(9.9)},
			},
			want: 9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GameScore(tt.responses))
		})
	}
}
