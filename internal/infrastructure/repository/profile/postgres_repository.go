package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "softday/wellness-api/internal/domain/profile"
	"softday/wellness-api/internal/infrastructure/database/entities"
	"softday/wellness-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for sentiment profiles.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByUserID fetches the profile for one user.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error) {
	var entity entities.SentimentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "sentiment profile not found", err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find sentiment profile", err)
	}
	return entity.EtoD(), nil
}

// Upsert creates or replaces the user's profile on the user_id key.
func (r *PostgresRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	entity := entities.NewSchemaSentimentProfile(profile)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"summary", "sentiment", "analyzed_at", "updated_at"}),
		}).
		Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to upsert sentiment profile", err)
	}
	return nil
}

var _ domain.Repository = (*PostgresRepository)(nil)
