package checkin

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/utils/platformerrors"
)

// Service handles check-in creation and lookup.
type Service struct {
	checkIns   Repository
	statistics StatisticRepository
	now        func() time.Time
	log        zerolog.Logger
}

// NewService wires the check-in service.
func NewService(checkIns Repository, statistics StatisticRepository, log zerolog.Logger) *Service {
	return &Service{
		checkIns:   checkIns,
		statistics: statistics,
		now:        time.Now,
		log:        log.With().Str("component", "checkin-service").Logger(),
	}
}

// Create records today's check-in. A same-day duplicate fails with a conflict:
// the existence check is the fast path, the composite unique index in storage
// is the authoritative backstop under concurrent requests.
func (s *Service) Create(ctx context.Context, userID uint, level int, causes []string, memo string) (*CheckIn, error) {
	if level < MinStressLevel || level > MaxStressLevel {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("stress level must be between %d and %d", MinStressLevel, MaxStressLevel), nil)
	}

	today := Midnight(s.now())

	existing, err := s.checkIns.FindByUserAndDate(ctx, userID, today)
	if err != nil && !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"already checked in today", nil)
	}

	checkIn := New(userID, today, level, causes, memo)
	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	// Statistics maintenance never fails the check-in itself.
	if err := s.updateStatistics(ctx, userID, today, level); err != nil {
		s.log.Error().Err(err).Uint("user_id", userID).Msg("daily statistics update failed")
	}

	return checkIn, nil
}

// Today returns today's check-in, or a not-found error when the user has not
// checked in yet.
func (s *Service) Today(ctx context.Context, userID uint) (*CheckIn, error) {
	return s.checkIns.FindByUserAndDate(ctx, userID, Midnight(s.now()))
}

// updateStatistics folds one new check-in into the day's aggregate row.
func (s *Service) updateStatistics(ctx context.Context, userID uint, date time.Time, level int) error {
	stat, err := s.statistics.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
			return err
		}
		stat = &DailyStatistic{UserID: userID, StatDate: date}
	}

	total := stat.AvgStressLevel*float64(stat.CheckinCount) + float64(level)
	stat.CheckinCount++
	stat.AvgStressLevel = total / float64(stat.CheckinCount)

	return s.statistics.Save(ctx, stat)
}
