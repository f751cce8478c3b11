package models

import "time"

// CheckInAnswers holds the five raw ratings of a daily check-in, each 1-5.
// "draining" is stored as submitted; inversion happens only during scoring.
type CheckInAnswers struct {
	Motivation int `gorm:"not null" json:"motivation"`
	Energy     int `gorm:"not null" json:"energy"`
	Clarity    int `gorm:"not null" json:"clarity"`
	Execution  int `gorm:"not null" json:"execution"`
	Draining   int `gorm:"not null" json:"draining"`
}

// CheckInSections holds the two derived section averages.
type CheckInSections struct {
	Today     float64 `gorm:"column:today_score" json:"today"`
	Yesterday float64 `gorm:"column:yesterday_score" json:"yesterday"`
}

// CheckIn is one user's record for one calendar date. The (user_id, date)
// pair is unique; re-submitting the same day overwrites answers, scores and
// metadata in place. CurrentStreak is a snapshot taken at submission time and
// is never recomputed retroactively.
type CheckIn struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_checkins_user_date;not null" json:"user_id"`
	Date   string `gorm:"size:10;uniqueIndex:idx_checkins_user_date;not null" json:"date"`

	Answers CheckInAnswers `gorm:"embedded" json:"answers"`

	AverageScore float64         `json:"average_score"`
	Sections     CheckInSections `gorm:"embedded" json:"sections"`

	// Calendar metadata, computed once when the record is written.
	DayOfWeek  string `gorm:"size:16" json:"day_of_week"`
	WeekNumber int    `json:"week_number"`
	Month      string `gorm:"size:16" json:"month"`
	Year       int    `json:"year"`

	CurrentStreak int `gorm:"default:0" json:"current_streak"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name so the unique index stays stable.
func (CheckIn) TableName() string {
	return "check_ins"
}
