package checkin

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daypulse/daypulse/models"
)

// GormStore persists day records through GORM. The (user_id, date) unique
// index turns concurrent same-day submissions into last-write-wins.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// upsertColumns are the fields a re-submission overwrites. created_at is
// deliberately absent so the first submission's timestamp survives.
var upsertColumns = []string{
	"motivation", "energy", "clarity", "execution", "draining",
	"average_score", "today_score", "yesterday_score",
	"day_of_week", "week_number", "month", "year",
	"current_streak", "updated_at",
}

// Upsert writes the record at its (user_id, date) key and returns the
// post-write row including server-assigned timestamps.
func (g *GormStore) Upsert(ctx context.Context, rec *models.CheckIn) (*models.CheckIn, error) {
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(rec).Error
	if err != nil {
		return nil, err
	}
	return g.Get(ctx, rec.UserID, rec.Date)
}

// Get returns the record for (userID, date), or nil when none exists.
func (g *GormStore) Get(ctx context.Context, userID uint, date string) (*models.CheckIn, error) {
	var rec models.CheckIn
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// QueryRange returns records with start <= date <= end, newest first. Dates
// are zero-padded ISO strings, so string comparison orders correctly.
func (g *GormStore) QueryRange(ctx context.Context, userID uint, start, end string) ([]models.CheckIn, error) {
	var recs []models.CheckIn
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// QueryAll returns the user's full history, newest first.
func (g *GormStore) QueryAll(ctx context.Context, userID uint) ([]models.CheckIn, error) {
	var recs []models.CheckIn
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
