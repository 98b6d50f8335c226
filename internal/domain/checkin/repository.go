package checkin

import (
	"context"
	"time"
)

// Repository persists check-in records.
type Repository interface {
	Create(ctx context.Context, checkIn *CheckIn) error
	FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*CheckIn, error)
	// ListByUserBetween returns check-ins with from <= date <= to, oldest first.
	ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]CheckIn, error)
}

// StatisticRepository persists the per-day aggregates.
type StatisticRepository interface {
	FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*DailyStatistic, error)
	Save(ctx context.Context, stat *DailyStatistic) error
	// ListByUserBetween returns statistics with from <= date <= to, oldest first.
	ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]DailyStatistic, error)
}
