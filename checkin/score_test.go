package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daypulse/daypulse/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		answers       models.CheckInAnswers
		wantAverage   float64
		wantToday     float64
		wantYesterday float64
	}{
		{
			name:          "perfect day with least draining yesterday",
			answers:       models.CheckInAnswers{Motivation: 5, Energy: 5, Clarity: 5, Execution: 5, Draining: 1},
			wantAverage:   5.00,
			wantToday:     5.00,
			wantYesterday: 5.00,
		},
		{
			name:          "worst day with most draining yesterday",
			answers:       models.CheckInAnswers{Motivation: 1, Energy: 1, Clarity: 1, Execution: 1, Draining: 5},
			wantAverage:   1.00,
			wantToday:     1.00,
			wantYesterday: 1.00,
		},
		{
			name:          "draining inverted before aggregation",
			answers:       models.CheckInAnswers{Motivation: 3, Energy: 4, Clarity: 4, Execution: 2, Draining: 5},
			wantAverage:   2.80, // (3+4+4+2+1)/5
			wantToday:     3.67, // 11/3 rounded
			wantYesterday: 1.50, // (2+1)/2
		},
		{
			name:          "repeating thirds round to two decimals",
			answers:       models.CheckInAnswers{Motivation: 2, Energy: 2, Clarity: 3, Execution: 4, Draining: 2},
			wantAverage:   3.00, // (2+2+3+4+4)/5
			wantToday:     2.33, // 7/3
			wantYesterday: 4.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAverage, got.AverageScore)
			assert.Equal(t, tt.wantToday, got.Sections.Today)
			assert.Equal(t, tt.wantYesterday, got.Sections.Yesterday)
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	answers := models.CheckInAnswers{Motivation: 4, Energy: 3, Clarity: 5, Execution: 2, Draining: 3}
	first, err := Score(answers)
	require.NoError(t, err)
	second, err := Score(answers)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreRejectsInvalidAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers models.CheckInAnswers
	}{
		{"missing motivation", models.CheckInAnswers{Energy: 3, Clarity: 3, Execution: 3, Draining: 3}},
		{"motivation above range", models.CheckInAnswers{Motivation: 6, Energy: 3, Clarity: 3, Execution: 3, Draining: 3}},
		{"draining below range", models.CheckInAnswers{Motivation: 3, Energy: 3, Clarity: 3, Execution: 3, Draining: 0}},
		{"negative energy", models.CheckInAnswers{Motivation: 3, Energy: -1, Clarity: 3, Execution: 3, Draining: 3}},
		{"all missing", models.CheckInAnswers{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.answers)
			assert.ErrorIs(t, err, ErrInvalidAnswer)
		})
	}
}
