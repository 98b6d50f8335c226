// Package checkin covers the daily stress check-in: one record per user per
// calendar date, plus the incrementally maintained daily statistic row.
package checkin

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinStressLevel = 1
	MaxStressLevel = 5
)

// CheckIn is a single daily stress record. At most one exists per user per
// calendar date; the database enforces this with a composite unique index.
type CheckIn struct {
	ID          uint
	PublicID    string
	UserID      uint
	CheckinDate time.Time
	StressLevel int
	Memo        string
	Emoji       string
	Causes      []string
	CreatedAt   time.Time
}

// DailyStatistic is the per-day aggregate maintained alongside check-ins. It
// feeds the dashboard without rescanning raw rows.
type DailyStatistic struct {
	ID             uint
	UserID         uint
	StatDate       time.Time
	AvgStressLevel float64
	CheckinCount   int
}

// New builds a check-in for the given date with a derived emoji. The date is
// truncated to midnight so the per-day uniqueness key is stable.
func New(userID uint, date time.Time, level int, causes []string, memo string) *CheckIn {
	return &CheckIn{
		PublicID:    "chk_" + uuid.NewString(),
		UserID:      userID,
		CheckinDate: Midnight(date),
		StressLevel: level,
		Memo:        memo,
		Emoji:       EmojiForLevel(level),
		Causes:      causes,
	}
}

// Midnight truncates a timestamp to the start of its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EmojiForLevel maps a stress level to its display emoji. Out-of-range levels
// fall back to neutral.
func EmojiForLevel(level int) string {
	switch level {
	case 1:
		return "😊"
	case 2:
		return "🙂"
	case 3:
		return "😐"
	case 4:
		return "😟"
	case 5:
		return "😫"
	default:
		return "😐"
	}
}
