package checkin

import (
	"context"
	"time"

	"github.com/daypulse/daypulse/models"
)

// Store is the persistence contract for day records. Implementations must
// return records ordered by date descending from QueryRange and QueryAll,
// and nil (not an error) from Get when no record exists for the key. Store
// errors are propagated to callers unmodified; the engine performs no retry.
type Store interface {
	// Upsert writes the record at its (user_id, date) key, overwriting the
	// answer, score, metadata and streak fields of an existing row while
	// preserving its creation timestamp, and returns the post-write record.
	Upsert(ctx context.Context, rec *models.CheckIn) (*models.CheckIn, error)
	Get(ctx context.Context, userID uint, date string) (*models.CheckIn, error)
	// QueryRange returns records with start <= date <= end, newest first.
	QueryRange(ctx context.Context, userID uint, start, end string) ([]models.CheckIn, error)
	// QueryAll returns every record for the user, newest first.
	QueryAll(ctx context.Context, userID uint) ([]models.CheckIn, error)
}

// Stats is the ephemeral statistics snapshot computed on demand for a user.
// It is never persisted; a zero-valued snapshot with a nil LastCheckInDate
// is the defined empty state for users with no history.
type Stats struct {
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	TotalCheckIns    int     `json:"total_check_ins"`
	SevenDayAverage  float64 `json:"seven_day_average"`
	ThirtyDayAverage float64 `json:"thirty_day_average"`
	LastCheckInDate  *string `json:"last_check_in_date"`
}

// Service computes streaks and rolling statistics over a user's history and
// orchestrates submissions. The user id is always passed in explicitly;
// there is no ambient session state.
type Service struct {
	store Store
	loc   *time.Location
}

// NewService creates a Service. loc determines what "today" means; nil
// falls back to the server's local timezone.
func NewService(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc}
}

// Now returns the current time in the service's check-in timezone.
func (s *Service) Now() time.Time {
	return time.Now().In(s.loc)
}

// Submit scores the answers, stamps today's date and calendar metadata, and
// upserts the record at (userID, today). precedingStreak is the streak
// before this submission as reported by the caller; the stored snapshot is
// precedingStreak+1 and is deliberately not verified against history.
// Validation happens before any store access, so invalid answers never
// write.
func (s *Service) Submit(ctx context.Context, userID uint, answers models.CheckInAnswers, precedingStreak int) (*models.CheckIn, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	scores, err := Score(answers)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	meta := DateMetadata(now)

	rec := &models.CheckIn{
		UserID:       userID,
		Date:         FormatDate(now),
		Answers:      answers,
		AverageScore: scores.AverageScore,
		Sections:     scores.Sections,
		DayOfWeek:    meta.DayOfWeek,
		WeekNumber:   meta.WeekNumber,
		Month:        meta.Month,
		Year:         meta.Year,
	}
	if precedingStreak >= 0 {
		rec.CurrentStreak = precedingStreak + 1
	} else {
		rec.CurrentStreak = 1
	}

	return s.store.Upsert(ctx, rec)
}

// Today returns the user's record for the current date, or nil.
func (s *Service) Today(ctx context.Context, userID uint) (*models.CheckIn, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	return s.store.Get(ctx, userID, FormatDate(s.Now()))
}

// ByDate returns the user's record for a specific date, or nil.
func (s *Service) ByDate(ctx context.Context, userID uint, date string) (*models.CheckIn, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	return s.store.Get(ctx, userID, date)
}

// Range returns the user's records between start and end inclusive, newest
// first. Used by the heatmap.
func (s *Service) Range(ctx context.Context, userID uint, start, end string) ([]models.CheckIn, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	return s.store.QueryRange(ctx, userID, start, end)
}

// CurrentStreak walks backward one calendar day at a time from asOf,
// counting consecutive days with a record. A missing record for asOf itself
// means the streak is 0. History length is unbounded; each day checked is
// one store lookup.
func (s *Service) CurrentStreak(ctx context.Context, userID uint, asOf time.Time) (int, error) {
	if userID == 0 {
		return 0, ErrNotAuthenticated
	}

	streak := 0
	day := asOf
	for {
		rec, err := s.store.Get(ctx, userID, FormatDate(day))
		if err != nil {
			return 0, err
		}
		if rec == nil {
			return streak, nil
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// LongestStreak scans records ordered by date ascending and returns the
// longest run of consecutive calendar days. Zero records yield 0, a single
// record yields 1.
func LongestStreak(records []models.CheckIn) int {
	longest := 0
	run := 0
	var prev time.Time

	for i, rec := range records {
		day, err := time.Parse(DateLayout, rec.Date)
		if err != nil {
			continue
		}
		if i == 0 || !prev.AddDate(0, 0, 1).Equal(day) {
			run = 1
		} else {
			run++
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	return longest
}

// Stats fetches the user's full history and derives the statistics
// snapshot. The 7- and 30-day averages are count-based: they average the
// most recent N check-ins performed, not the last N calendar days, so gaps
// do not dilute them.
func (s *Service) Stats(ctx context.Context, userID uint) (Stats, error) {
	if userID == 0 {
		return Stats{}, ErrNotAuthenticated
	}

	records, err := s.store.QueryAll(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	if len(records) == 0 {
		return Stats{}, nil
	}

	current, err := s.CurrentStreak(ctx, userID, s.Now())
	if err != nil {
		return Stats{}, err
	}

	ascending := make([]models.CheckIn, len(records))
	for i, rec := range records {
		ascending[len(records)-1-i] = rec
	}

	last := records[0].Date
	return Stats{
		CurrentStreak:    current,
		LongestStreak:    LongestStreak(ascending),
		TotalCheckIns:    len(records),
		SevenDayAverage:  rollingAverage(records, 7),
		ThirtyDayAverage: rollingAverage(records, 30),
		LastCheckInDate:  &last,
	}, nil
}

// rollingAverage averages AverageScore over the first n records of a
// descending-ordered history, rounded to 1 decimal. Fewer than n records is
// not an error; the mean is over what exists.
func rollingAverage(descending []models.CheckIn, n int) float64 {
	if len(descending) == 0 {
		return 0
	}
	if n > len(descending) {
		n = len(descending)
	}
	sum := 0.0
	for _, rec := range descending[:n] {
		sum += rec.AverageScore
	}
	return round1(sum / float64(n))
}
