package checkin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/infrastructure/database/entities"
	"softday/wellness-api/internal/utils/platformerrors"
)

// StatisticRepository provides persistence for per-day aggregates.
type StatisticRepository struct {
	db *gorm.DB
}

// NewStatisticRepository constructs the repository.
func NewStatisticRepository(db *gorm.DB) *StatisticRepository {
	return &StatisticRepository{db: db}
}

// FindByUserAndDate fetches the aggregate row for one user and date.
func (r *StatisticRepository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*domain.DailyStatistic, error) {
	var entity entities.DailyStatistic
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND stat_date = ?", userID, date).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "daily statistic not found", err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find daily statistic", err)
	}
	return entity.EtoD(), nil
}

// Save upserts one aggregate row on the user+date key.
func (r *StatisticRepository) Save(ctx context.Context, stat *domain.DailyStatistic) error {
	entity := entities.NewSchemaDailyStatistic(stat)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "stat_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"avg_stress_level", "checkin_count", "updated_at"}),
		}).
		Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to save daily statistic", err)
	}
	stat.ID = entity.ID
	return nil
}

// ListByUserBetween fetches aggregate rows in the inclusive range, oldest first.
func (r *StatisticRepository) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.DailyStatistic, error) {
	var rows []entities.DailyStatistic
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND stat_date BETWEEN ? AND ?", userID, from, to).
		Order("stat_date ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list daily statistics", err)
	}

	stats := make([]domain.DailyStatistic, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, *row.EtoD())
	}
	return stats, nil
}

var _ domain.StatisticRepository = (*StatisticRepository)(nil)
