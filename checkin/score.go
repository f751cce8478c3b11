package checkin

import (
	"math"

	"github.com/daypulse/daypulse/models"
)

// Scores is the derived output of one day's answers.
type Scores struct {
	AverageScore float64
	Sections     models.CheckInSections
}

// ValidateAnswers checks that all five ratings are present and within 1-5.
// A zero value means the field was not submitted.
func ValidateAnswers(a models.CheckInAnswers) error {
	for _, v := range []int{a.Motivation, a.Energy, a.Clarity, a.Execution, a.Draining} {
		if v < 1 || v > 5 {
			return ErrInvalidAnswer
		}
	}
	return nil
}

// Score turns a validated answer set into section scores and an overall
// average. The "draining" rating is inverted before aggregation so that a
// highly draining yesterday lowers the positive score. Pure and
// deterministic; out-of-range input is rejected, never clamped.
func Score(a models.CheckInAnswers) (Scores, error) {
	if err := ValidateAnswers(a); err != nil {
		return Scores{}, err
	}

	normalizedDraining := 6 - a.Draining

	todayScore := float64(a.Motivation+a.Energy+a.Clarity) / 3
	yesterdayScore := float64(a.Execution+normalizedDraining) / 2
	averageScore := float64(a.Motivation+a.Energy+a.Clarity+a.Execution+normalizedDraining) / 5

	return Scores{
		AverageScore: round2(averageScore),
		Sections: models.CheckInSections{
			Today:     round2(todayScore),
			Yesterday: round2(yesterdayScore),
		},
	}, nil
}

// round2 rounds half away from zero at 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds half away from zero at 1 decimal place. Used for the
// 7/30-day rolling averages.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
