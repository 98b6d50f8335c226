// Package analysis summarizes recent conversation activity into the per-user
// sentiment profile. It runs off the request path, fed by the worker pool.
package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/domain/llm"
	"softday/wellness-api/internal/domain/profile"
	"softday/wellness-api/internal/utils/platformerrors"
)

// analysisWindow is how many trailing messages feed one summarization pass.
const analysisWindow = 10

// Service produces sentiment profiles from conversation history.
type Service struct {
	conversations chat.ConversationRepository
	messages      chat.MessageRepository
	profiles      profile.Repository
	provider      llm.Provider
	now           func() time.Time
	log           zerolog.Logger
}

// NewService wires the analysis service.
func NewService(
	conversations chat.ConversationRepository,
	messages chat.MessageRepository,
	profiles profile.Repository,
	provider llm.Provider,
	log zerolog.Logger,
) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		profiles:      profiles,
		provider:      provider,
		now:           time.Now,
		log:           log.With().Str("component", "analysis-service").Logger(),
	}
}

// profileOutput is the JSON object the summarization prompt asks for.
type profileOutput struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
}

// Analyze summarizes the tail of one conversation and upserts the owner's
// profile. On any failure the stored profile is left untouched so the prompt
// builder keeps using the last good summary.
func (s *Service) Analyze(ctx context.Context, userID uint, conversationPublicID string) error {
	conversation, err := s.conversations.FindByPublicID(ctx, conversationPublicID)
	if err != nil {
		return err
	}

	history, err := s.messages.ListRecent(ctx, conversation.ID, analysisWindow)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}

	text, err := s.provider.Generate(ctx, llm.GenerateRequest{
		Contents: []llm.Content{llm.NewUserTurn(summaryPrompt(history))},
		GenerationConfig: &llm.GenerationConfig{
			ResponseMIMEType: "application/json",
		},
	})
	if err != nil {
		return err
	}

	var out profileOutput
	if !llm.ExtractJSON(text, &out) || out.Summary == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"no usable JSON object in analysis output", nil)
	}

	updated := &profile.Profile{
		UserID:     userID,
		Summary:    out.Summary,
		Sentiment:  out.Sentiment,
		AnalyzedAt: s.now(),
	}
	if err := s.profiles.Upsert(ctx, updated); err != nil {
		return err
	}

	s.log.Debug().Uint("user_id", userID).Str("conversation_id", conversationPublicID).
		Msg("sentiment profile refreshed")
	return nil
}

// summaryPrompt renders the transcript and the strict output instruction.
func summaryPrompt(history []chat.Message) string {
	var sb strings.Builder

	sb.WriteString("Below is a recent conversation between a user and their wellness companion.\n")
	sb.WriteString("Summarize what matters about the user so a future conversation can pick up naturally.\n\n")
	sb.WriteString("[Conversation]\n")
	for _, msg := range history {
		if msg.Role == chat.RoleAssistant {
			sb.WriteString("assistant: ")
		} else {
			sb.WriteString("user: ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}

	sb.WriteString("\nRespond with exactly one JSON object containing these two keys:\n")
	sb.WriteString("1. 'summary': 2-3 sentences covering the user's situation, concerns, and stress factors\n")
	sb.WriteString("2. 'sentiment': one short phrase for the user's overall emotional state\n\n")
	sb.WriteString("Never include any text outside the JSON object.\n\nJSON response: ")

	return sb.String()
}
