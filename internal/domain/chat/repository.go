package chat

import "context"

// ConversationRepository persists conversation metadata.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	ListByUserID(ctx context.Context, userID uint) ([]Conversation, error)
}

// MessageRepository persists individual conversation turns.
type MessageRepository interface {
	Insert(ctx context.Context, message *Message) error
	// ListRecent returns the most recent limit messages in chronological
	// (oldest first) order.
	ListRecent(ctx context.Context, conversationID uint, limit int) ([]Message, error)
	ListByConversationID(ctx context.Context, conversationID uint) ([]Message, error)
}
