package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role indicates who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const titleMaxLen = 30

// Conversation is a chat thread owned by exactly one user. Conversations are
// never shared; every access must verify ownership first.
type Conversation struct {
	ID        uint
	PublicID  string
	UserID    uint
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one immutable turn of a conversation. Ordering is authoritative
// by CreatedAt ascending, not by request arrival.
type Message struct {
	ID             uint
	ConversationID uint
	Role           Role
	Content        string
	CreatedAt      time.Time
}

// Reply is the structured payload returned to the chat caller.
type Reply struct {
	Reply          string `json:"reply"`
	Emotion        string `json:"emotion"`
	StressCause    string `json:"stressCause"`
	ConversationID string `json:"conversationId"`
}

// NewConversation creates a conversation titled after the opening message.
func NewConversation(userID uint, firstMessage string) *Conversation {
	return &Conversation{
		PublicID: "conv_" + uuid.NewString(),
		UserID:   userID,
		Title:    deriveTitle(firstMessage),
	}
}

// deriveTitle takes the first 30 characters of the opening message, counted
// in runes so multi-byte text is not split mid-character.
func deriveTitle(message string) string {
	runes := []rune(strings.TrimSpace(message))
	if len(runes) <= titleMaxLen {
		return string(runes)
	}
	return string(runes[:titleMaxLen]) + "..."
}
