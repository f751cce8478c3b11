package checkin

import "time"

// DateLayout is the wire format for calendar dates. Zero-padded ISO dates
// compare correctly as plain strings, which the store relies on for range
// queries.
const DateLayout = "2006-01-02"

// DateMeta is the calendar metadata stored on each record at submission
// time. It is never recomputed on read.
type DateMeta struct {
	DayOfWeek  string
	WeekNumber int
	Month      string
	Year       int
}

// FormatDate renders t as a calendar date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateMetadata derives day-of-week, week number, month name and year for t.
// The week number counts weeks starting Sunday, with the week containing
// January 1st as week 1: ceil((daysSinceJan1 + weekdayOfJan1 + 1) / 7).
func DateMetadata(t time.Time) DateMeta {
	firstOfYear := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	pastDays := t.YearDay() - 1
	weekNumber := (pastDays + int(firstOfYear.Weekday()) + 1 + 6) / 7

	return DateMeta{
		DayOfWeek:  t.Weekday().String(),
		WeekNumber: weekNumber,
		Month:      t.Month().String(),
		Year:       t.Year(),
	}
}
