package checkin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/infrastructure/database/entities"
	"softday/wellness-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for daily check-ins.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new check-in. A duplicate same-day insert hits the
// composite unique index and surfaces as a conflict.
func (r *PostgresRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	entity := entities.NewSchemaCheckIn(checkIn)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict, "check-in already exists for this date", err)
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create check-in", err)
	}
	checkIn.ID = entity.ID
	checkIn.CreatedAt = entity.CreatedAt
	return nil
}

// FindByUserAndDate fetches one check-in for a user and calendar date.
func (r *PostgresRepository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*domain.CheckIn, error) {
	var entity entities.CheckIn
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND checkin_date = ?", userID, date).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "check-in not found", err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find check-in", err)
	}
	return entity.EtoD(), nil
}

// ListByUserBetween fetches check-ins in the inclusive date range, oldest first.
func (r *PostgresRepository) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.CheckIn, error) {
	var rows []entities.CheckIn
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND checkin_date BETWEEN ? AND ?", userID, from, to).
		Order("checkin_date ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list check-ins", err)
	}

	checkIns := make([]domain.CheckIn, 0, len(rows))
	for _, row := range rows {
		checkIns = append(checkIns, *row.EtoD())
	}
	return checkIns, nil
}

var _ domain.Repository = (*PostgresRepository)(nil)
