package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "softday/wellness-api/internal/domain/user"
	"softday/wellness-api/internal/infrastructure/database/entities"
	"softday/wellness-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for users.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID fetches a user by internal ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "user not found", err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find user", err)
	}
	return entity.EtoD(), nil
}

// ListAll fetches every user. The alert scheduler iterates the full set once
// per day; the table is small enough that no paging is needed yet.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var rows []entities.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list users", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *row.EtoD())
	}
	return users, nil
}

// SavePushSubscription stores or replaces the user's push subscription.
func (r *PostgresRepository) SavePushSubscription(ctx context.Context, userID uint, sub domain.PushSubscription) error {
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"push_endpoint": sub.Endpoint,
			"push_p256dh":   sub.P256dh,
			"push_auth":     sub.Auth,
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to save push subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "user not found", nil)
	}
	return nil
}

// ClearPushSubscription removes the user's push subscription.
func (r *PostgresRepository) ClearPushSubscription(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"push_endpoint": nil,
			"push_p256dh":   nil,
			"push_auth":     nil,
		}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to clear push subscription", err)
	}
	return nil
}

var _ domain.Repository = (*PostgresRepository)(nil)
