package conversation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/infrastructure/database/entities"
	"softday/wellness-api/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for conversations.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new conversation record.
func (r *PostgresRepository) Create(ctx context.Context, conversation *chat.Conversation) error {
	entity := entities.NewSchemaConversation(conversation)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create conversation", err)
	}
	conversation.ID = entity.ID
	conversation.CreatedAt = entity.CreatedAt
	conversation.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByPublicID fetches a conversation by its public ID.
func (r *PostgresRepository) FindByPublicID(ctx context.Context, publicID string) (*chat.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "conversation not found", err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find conversation", err)
	}
	return entity.EtoD(), nil
}

// ListByUserID fetches the user's conversations, most recently updated first.
func (r *PostgresRepository) ListByUserID(ctx context.Context, userID uint) ([]chat.Conversation, error) {
	var rows []entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list conversations", err)
	}

	conversations := make([]chat.Conversation, 0, len(rows))
	for _, row := range rows {
		conversations = append(conversations, *row.EtoD())
	}
	return conversations, nil
}

var _ chat.ConversationRepository = (*PostgresRepository)(nil)
