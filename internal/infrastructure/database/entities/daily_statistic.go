package entities

import (
	"time"

	"softday/wellness-api/internal/domain/checkin"
)

// DailyStatistic represents the database schema for per-day aggregates
type DailyStatistic struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID         uint      `gorm:"uniqueIndex:idx_statistic_user_date;not null"`
	StatDate       time.Time `gorm:"type:date;uniqueIndex:idx_statistic_user_date;not null"`
	AvgStressLevel float64   `gorm:"type:numeric(4,2);not null;default:0"`
	CheckinCount   int       `gorm:"not null;default:0"`
}

// TableName specifies the table name for DailyStatistic.
func (DailyStatistic) TableName() string {
	return "daily_statistics"
}

// EtoD converts database entity to domain model
func (s *DailyStatistic) EtoD() *checkin.DailyStatistic {
	return &checkin.DailyStatistic{
		ID:             s.ID,
		UserID:         s.UserID,
		StatDate:       s.StatDate,
		AvgStressLevel: s.AvgStressLevel,
		CheckinCount:   s.CheckinCount,
	}
}

// NewSchemaDailyStatistic creates a database entity from domain model
func NewSchemaDailyStatistic(s *checkin.DailyStatistic) *DailyStatistic {
	return &DailyStatistic{
		ID:             s.ID,
		UserID:         s.UserID,
		StatDate:       s.StatDate,
		AvgStressLevel: s.AvgStressLevel,
		CheckinCount:   s.CheckinCount,
	}
}
