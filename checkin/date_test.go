package checkin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateMetadata(t *testing.T) {
	tests := []struct {
		date string
		want DateMeta
	}{
		// 2023 starts on a Sunday, so weeks align with calendar weeks.
		{"2023-01-01", DateMeta{DayOfWeek: "Sunday", WeekNumber: 1, Month: "January", Year: 2023}},
		{"2023-01-07", DateMeta{DayOfWeek: "Saturday", WeekNumber: 1, Month: "January", Year: 2023}},
		{"2023-01-08", DateMeta{DayOfWeek: "Sunday", WeekNumber: 2, Month: "January", Year: 2023}},
		// 2024 starts on a Monday; Jan 1 still counts as week 1.
		{"2024-01-01", DateMeta{DayOfWeek: "Monday", WeekNumber: 1, Month: "January", Year: 2024}},
		{"2024-12-31", DateMeta{DayOfWeek: "Tuesday", WeekNumber: 53, Month: "December", Year: 2024}},
		{"2024-02-29", DateMeta{DayOfWeek: "Thursday", WeekNumber: 9, Month: "February", Year: 2024}},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			day, err := time.Parse(DateLayout, tt.date)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, DateMetadata(day))
		})
	}
}

func TestFormatDateZeroPadded(t *testing.T) {
	day := time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-07", FormatDate(day))
}
