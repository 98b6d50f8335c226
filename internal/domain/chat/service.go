package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/llm"
	"softday/wellness-api/internal/domain/profile"
	"softday/wellness-api/internal/utils/platformerrors"
)

// degradedReply is returned whenever the AI flow fails after ownership
// checks have passed. The chat endpoint never propagates raw upstream
// errors to the caller.
const degradedReply = "Sorry, the AI companion is unavailable right now. Please try again in a moment."

// AnalysisScheduler accepts fire-and-forget analysis work. Submission must
// never block the request path.
type AnalysisScheduler interface {
	Schedule(userID uint, conversationPublicID string)
}

// Service orchestrates a single chat turn: resolve the conversation, build
// the prompt, call the completion provider, persist both turns, and hand the
// thread to the background analyzer.
type Service struct {
	conversations ConversationRepository
	messages      MessageRepository
	profiles      profile.Repository
	provider      llm.Provider
	analysis      AnalysisScheduler
	log           zerolog.Logger
}

// NewService wires the chat orchestrator.
func NewService(
	conversations ConversationRepository,
	messages MessageRepository,
	profiles profile.Repository,
	provider llm.Provider,
	analysis AnalysisScheduler,
	log zerolog.Logger,
) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		profiles:      profiles,
		provider:      provider,
		analysis:      analysis,
		log:           log.With().Str("component", "chat-service").Logger(),
	}
}

// assistantOutput is the JSON object the model is instructed to return.
type assistantOutput struct {
	Reply       string `json:"reply"`
	Emotion     string `json:"emotion"`
	StressCause string `json:"stressCause"`
}

// Chat processes one user message. Ownership violations and missing
// conversations surface as typed errors; every failure past that point
// degrades into a user-safe fallback reply instead of an error.
func (s *Service) Chat(ctx context.Context, userID uint, message, conversationPublicID string) (*Reply, error) {
	conversation, err := s.resolveConversation(ctx, userID, message, conversationPublicID)
	if err != nil {
		return nil, err
	}

	return s.complete(ctx, userID, conversation, message), nil
}

// ListConversations returns the user's threads, newest first.
func (s *Service) ListConversations(ctx context.Context, userID uint) ([]Conversation, error) {
	return s.conversations.ListByUserID(ctx, userID)
}

// ListMessages returns the full history of one owned conversation in
// chronological order.
func (s *Service) ListMessages(ctx context.Context, userID uint, conversationPublicID string) ([]Message, error) {
	conversation, err := s.ownedConversation(ctx, userID, conversationPublicID)
	if err != nil {
		return nil, err
	}
	return s.messages.ListByConversationID(ctx, conversation.ID)
}

// resolveConversation loads and ownership-checks an existing thread, or
// lazily creates one titled after the first message.
func (s *Service) resolveConversation(ctx context.Context, userID uint, message, conversationPublicID string) (*Conversation, error) {
	if conversationPublicID != "" {
		return s.ownedConversation(ctx, userID, conversationPublicID)
	}

	conversation := NewConversation(userID, message)
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create conversation")
	}
	return conversation, nil
}

func (s *Service) ownedConversation(ctx context.Context, userID uint, publicID string) (*Conversation, error) {
	conversation, err := s.conversations.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if conversation.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			fmt.Sprintf("conversation %s does not belong to the requesting user", publicID), nil)
	}
	return conversation, nil
}

// complete runs the AI round-trip. It never returns an error: anything that
// goes wrong yields the degraded fallback reply.
func (s *Service) complete(ctx context.Context, userID uint, conversation *Conversation, message string) *Reply {
	prof, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
			s.log.Warn().Err(err).Uint("user_id", userID).Msg("load sentiment profile failed, continuing without memory")
		}
		prof = profile.Empty(userID)
	}

	history, err := s.messages.ListRecent(ctx, conversation.ID, HistoryWindow)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversation.PublicID).Msg("load history failed")
		return s.degraded(conversation)
	}

	turns := BuildChatTurns(prof, history, message)

	text, err := s.provider.Generate(ctx, llm.GenerateRequest{Contents: turns})
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversation.PublicID).Msg("completion failed")
		return s.degraded(conversation)
	}

	var out assistantOutput
	if !llm.ExtractJSON(text, &out) || out.Reply == "" {
		// Do not persist a corrupted assistant turn.
		s.log.Error().Str("conversation_id", conversation.PublicID).Str("raw", text).
			Msg("no JSON object found in completion output")
		return s.degraded(conversation)
	}

	userTurn := &Message{ConversationID: conversation.ID, Role: RoleUser, Content: message}
	if err := s.messages.Insert(ctx, userTurn); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversation.PublicID).Msg("persist user turn failed")
		return s.degraded(conversation)
	}
	assistantTurn := &Message{ConversationID: conversation.ID, Role: RoleAssistant, Content: out.Reply}
	if err := s.messages.Insert(ctx, assistantTurn); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversation.PublicID).Msg("persist assistant turn failed")
		return s.degraded(conversation)
	}

	s.analysis.Schedule(userID, conversation.PublicID)

	return &Reply{
		Reply:          out.Reply,
		Emotion:        out.Emotion,
		StressCause:    out.StressCause,
		ConversationID: conversation.PublicID,
	}
}

func (s *Service) degraded(conversation *Conversation) *Reply {
	return &Reply{
		Reply:          degradedReply,
		Emotion:        "neutral",
		ConversationID: conversation.PublicID,
	}
}
