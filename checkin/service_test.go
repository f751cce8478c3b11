package checkin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daypulse/daypulse/models"
)

// memoryStore is an in-memory Store used by the tests. It mirrors the real
// store's merge-upsert semantics: answers, scores, metadata and the streak
// snapshot are overwritten while CreatedAt survives.
type memoryStore struct {
	records map[string]*models.CheckIn
	writes  int
	failAll error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]*models.CheckIn{}}
}

func key(userID uint, date string) string {
	return fmt.Sprintf("%d_%s", userID, date)
}

func (m *memoryStore) Upsert(ctx context.Context, rec *models.CheckIn) (*models.CheckIn, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	m.writes++
	now := time.Now()
	stored := *rec
	if existing, ok := m.records[key(rec.UserID, rec.Date)]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = uint(len(m.records) + 1)
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	m.records[key(rec.UserID, rec.Date)] = &stored
	out := stored
	return &out, nil
}

func (m *memoryStore) Get(ctx context.Context, userID uint, date string) (*models.CheckIn, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	rec, ok := m.records[key(userID, date)]
	if !ok {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

func (m *memoryStore) QueryRange(ctx context.Context, userID uint, start, end string) ([]models.CheckIn, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	var recs []models.CheckIn
	for _, rec := range m.records {
		if rec.UserID == userID && rec.Date >= start && rec.Date <= end {
			recs = append(recs, *rec)
		}
	}
	sortByDateDesc(recs)
	return recs, nil
}

func (m *memoryStore) QueryAll(ctx context.Context, userID uint) ([]models.CheckIn, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	var recs []models.CheckIn
	for _, rec := range m.records {
		if rec.UserID == userID {
			recs = append(recs, *rec)
		}
	}
	sortByDateDesc(recs)
	return recs, nil
}

func sortByDateDesc(recs []models.CheckIn) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j].Date > recs[j-1].Date; j-- {
			recs[j], recs[j-1] = recs[j-1], recs[j]
		}
	}
}

// seed inserts a record dated daysAgo days before now with the given
// average score.
func seed(t *testing.T, store *memoryStore, userID uint, daysAgo int, avg float64) {
	t.Helper()
	date := FormatDate(time.Now().AddDate(0, 0, -daysAgo))
	_, err := store.Upsert(context.Background(), &models.CheckIn{
		UserID:       userID,
		Date:         date,
		AverageScore: avg,
	})
	require.NoError(t, err)
}

func validAnswers() models.CheckInAnswers {
	return models.CheckInAnswers{Motivation: 4, Energy: 3, Clarity: 5, Execution: 2, Draining: 3}
}

func TestLongestStreak(t *testing.T) {
	day := func(offset int) models.CheckIn {
		return models.CheckIn{Date: FormatDate(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset))}
	}

	tests := []struct {
		name    string
		records []models.CheckIn
		want    int
	}{
		{"no records", nil, 0},
		{"single record", []models.CheckIn{day(0)}, 1},
		{"gap splits the run", []models.CheckIn{day(0), day(1), day(2), day(4), day(5)}, 3},
		{"longest run at the end", []models.CheckIn{day(0), day(2), day(3), day(4), day(5)}, 4},
		{"all isolated days", []models.CheckIn{day(0), day(2), day(4)}, 1},
		{"crosses a month boundary", []models.CheckIn{day(28), day(29), day(30), day(31)}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LongestStreak(tt.records))
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	// Today plus the previous four days; the fifth day back is missing.
	for daysAgo := 0; daysAgo < 5; daysAgo++ {
		seed(t, store, 1, daysAgo, 3)
	}
	seed(t, store, 1, 6, 3)

	streak, err := svc.CurrentStreak(context.Background(), 1, svc.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, streak)
}

func TestCurrentStreakZeroWhenTodayMissing(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	// History exists, but not for today: the streak breaks immediately.
	seed(t, store, 1, 1, 3)
	seed(t, store, 1, 2, 3)

	streak, err := svc.CurrentStreak(context.Background(), 1, svc.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStatsEmptyHistory(t *testing.T) {
	svc := NewService(newMemoryStore(), time.Local)

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Nil(t, stats.LastCheckInDate)
}

func TestStatsRollingAveragesAreCountBased(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	// Only 3 check-ins in the whole history: the "7-day" average is the
	// mean of those 3 records, not padded with zeros or divided by 7.
	seed(t, store, 1, 0, 4.0)
	seed(t, store, 1, 10, 3.0)
	seed(t, store, 1, 20, 2.0)

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stats.SevenDayAverage)
	assert.Equal(t, 3.0, stats.ThirtyDayAverage)
	assert.Equal(t, 3, stats.TotalCheckIns)
	require.NotNil(t, stats.LastCheckInDate)
	assert.Equal(t, FormatDate(svc.Now()), *stats.LastCheckInDate)
}

func TestStatsSevenDayWindowLimitsToSevenRecords(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	// 10 consecutive days; the most recent 7 score 5.0, the older 3 score 1.0.
	for daysAgo := 0; daysAgo < 7; daysAgo++ {
		seed(t, store, 1, daysAgo, 5.0)
	}
	for daysAgo := 7; daysAgo < 10; daysAgo++ {
		seed(t, store, 1, daysAgo, 1.0)
	}

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, stats.SevenDayAverage)
	// (7*5 + 3*1) / 10 = 3.8
	assert.Equal(t, 3.8, stats.ThirtyDayAverage)
	assert.Equal(t, 10, stats.CurrentStreak)
	assert.Equal(t, 10, stats.LongestStreak)
}

func TestStatsIgnoresOtherUsers(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	seed(t, store, 1, 0, 4.0)
	seed(t, store, 2, 0, 1.0)
	seed(t, store, 2, 1, 1.0)

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCheckIns)
	assert.Equal(t, 4.0, stats.SevenDayAverage)
}

func TestStatsPropagatesStoreErrors(t *testing.T) {
	store := newMemoryStore()
	store.failAll = errors.New("store unavailable")
	svc := NewService(store, time.Local)

	_, err := svc.Stats(context.Background(), 1)
	assert.ErrorContains(t, err, "store unavailable")
}

func TestSubmitCreatesRecordForToday(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	rec, err := svc.Submit(context.Background(), 1, validAnswers(), 0)
	require.NoError(t, err)
	assert.Equal(t, FormatDate(svc.Now()), rec.Date)
	assert.Equal(t, uint(1), rec.UserID)
	assert.Equal(t, 1, rec.CurrentStreak)
	assert.InDelta(t, 3.4, rec.AverageScore, 0.001) // (4+3+5+2+3)/5 with draining inverted
	assert.Equal(t, 4.0, rec.Sections.Today)
	assert.Equal(t, 2.5, rec.Sections.Yesterday)

	meta := DateMetadata(svc.Now())
	assert.Equal(t, meta.DayOfWeek, rec.DayOfWeek)
	assert.Equal(t, meta.WeekNumber, rec.WeekNumber)
	assert.Equal(t, meta.Month, rec.Month)
	assert.Equal(t, meta.Year, rec.Year)
}

func TestSubmitTwiceUpsertsSingleRecord(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	first, err := svc.Submit(context.Background(), 1, models.CheckInAnswers{Motivation: 1, Energy: 1, Clarity: 1, Execution: 1, Draining: 5}, 0)
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), 1, models.CheckInAnswers{Motivation: 5, Energy: 5, Clarity: 5, Execution: 5, Draining: 1}, 0)
	require.NoError(t, err)

	all, err := store.QueryAll(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// The second submission fully supersedes the first.
	assert.Equal(t, 5, all[0].Answers.Motivation)
	assert.Equal(t, 5.0, all[0].AverageScore)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestSubmitStoresCallerSuppliedStreakSnapshot(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	// The engine trusts the caller's preceding streak and does not verify
	// it against history: an empty history still yields the snapshot 12+1.
	rec, err := svc.Submit(context.Background(), 1, validAnswers(), 12)
	require.NoError(t, err)
	assert.Equal(t, 13, rec.CurrentStreak)
}

func TestSubmitInvalidAnswersWritesNothing(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	_, err := svc.Submit(context.Background(), 1, models.CheckInAnswers{Motivation: 6, Energy: 3, Clarity: 3, Execution: 3, Draining: 3}, 0)
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	assert.Zero(t, store.writes)
}

func TestZeroUserIDRefused(t *testing.T) {
	svc := NewService(newMemoryStore(), time.Local)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 0, validAnswers(), 0)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Stats(ctx, 0)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Today(ctx, 0)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.CurrentStreak(ctx, 0, time.Now())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRangeInclusiveBounds(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, time.Local)

	for daysAgo := 0; daysAgo < 5; daysAgo++ {
		seed(t, store, 1, daysAgo, 3)
	}

	start := FormatDate(time.Now().AddDate(0, 0, -3))
	end := FormatDate(time.Now().AddDate(0, 0, -1))
	recs, err := svc.Range(context.Background(), 1, start, end)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, end, recs[0].Date)
	assert.Equal(t, start, recs[2].Date)
}
