package conversation

import (
	"context"

	"gorm.io/gorm"

	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/infrastructure/database/entities"
	"softday/wellness-api/internal/utils/platformerrors"
)

// MessageRepository provides persistence for conversation turns.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository constructs the repository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Insert appends one message to a conversation.
func (r *MessageRepository) Insert(ctx context.Context, message *chat.Message) error {
	entity := entities.NewSchemaMessage(message)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to insert message", err)
	}
	message.ID = entity.ID
	message.CreatedAt = entity.CreatedAt
	return nil
}

// ListRecent returns the newest limit messages in chronological order.
func (r *MessageRepository) ListRecent(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error) {
	// Fetch newest first, then reverse so callers see oldest-to-newest.
	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list recent messages", err)
	}

	messages := make([]chat.Message, len(rows))
	for i, row := range rows {
		messages[len(rows)-1-i] = *row.EtoD()
	}
	return messages, nil
}

// ListByConversationID returns the full history oldest first.
func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID uint) ([]chat.Message, error) {
	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list messages", err)
	}

	messages := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, *row.EtoD())
	}
	return messages, nil
}

var _ chat.MessageRepository = (*MessageRepository)(nil)
