package chat_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/domain/llm"
	"softday/wellness-api/internal/domain/profile"
	"softday/wellness-api/internal/utils/platformerrors"
)

type mockConversationRepo struct {
	CreateFunc         func(ctx context.Context, conversation *chat.Conversation) error
	FindByPublicIDFunc func(ctx context.Context, publicID string) (*chat.Conversation, error)
	ListByUserIDFunc   func(ctx context.Context, userID uint) ([]chat.Conversation, error)
}

func (m *mockConversationRepo) Create(ctx context.Context, conversation *chat.Conversation) error {
	return m.CreateFunc(ctx, conversation)
}

func (m *mockConversationRepo) FindByPublicID(ctx context.Context, publicID string) (*chat.Conversation, error) {
	return m.FindByPublicIDFunc(ctx, publicID)
}

func (m *mockConversationRepo) ListByUserID(ctx context.Context, userID uint) ([]chat.Conversation, error) {
	return m.ListByUserIDFunc(ctx, userID)
}

type mockMessageRepo struct {
	InsertFunc               func(ctx context.Context, message *chat.Message) error
	ListRecentFunc           func(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error)
	ListByConversationIDFunc func(ctx context.Context, conversationID uint) ([]chat.Message, error)
}

func (m *mockMessageRepo) Insert(ctx context.Context, message *chat.Message) error {
	return m.InsertFunc(ctx, message)
}

func (m *mockMessageRepo) ListRecent(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error) {
	return m.ListRecentFunc(ctx, conversationID, limit)
}

func (m *mockMessageRepo) ListByConversationID(ctx context.Context, conversationID uint) ([]chat.Message, error) {
	return m.ListByConversationIDFunc(ctx, conversationID)
}

type mockProfileRepo struct {
	FindByUserIDFunc func(ctx context.Context, userID uint) (*profile.Profile, error)
	UpsertFunc       func(ctx context.Context, p *profile.Profile) error
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID uint) (*profile.Profile, error) {
	return m.FindByUserIDFunc(ctx, userID)
}

func (m *mockProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	return m.UpsertFunc(ctx, p)
}

type mockProvider struct {
	GenerateFunc func(ctx context.Context, req llm.GenerateRequest) (string, error)
}

func (m *mockProvider) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	return m.GenerateFunc(ctx, req)
}

type mockScheduler struct {
	calls []string
}

func (m *mockScheduler) Schedule(userID uint, conversationPublicID string) {
	m.calls = append(m.calls, conversationPublicID)
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "not found", nil)
}

func TestChatRejectsForeignConversation(t *testing.T) {
	conversations := &mockConversationRepo{
		FindByPublicIDFunc: func(ctx context.Context, publicID string) (*chat.Conversation, error) {
			return &chat.Conversation{ID: 1, PublicID: publicID, UserID: 99}, nil
		},
	}
	service := chat.NewService(conversations, &mockMessageRepo{}, &mockProfileRepo{}, &mockProvider{}, &mockScheduler{}, zerolog.Nop())

	_, err := service.Chat(context.Background(), 1, "hi", "conv_foreign")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("Chat() error = %v, want FORBIDDEN", err)
	}
}

func TestChatSuccessPersistsBothTurnsAndSchedulesAnalysis(t *testing.T) {
	conversation := &chat.Conversation{ID: 5, PublicID: "conv_abc", UserID: 1}
	var inserted []chat.Message

	conversations := &mockConversationRepo{
		FindByPublicIDFunc: func(ctx context.Context, publicID string) (*chat.Conversation, error) {
			return conversation, nil
		},
	}
	messages := &mockMessageRepo{
		InsertFunc: func(ctx context.Context, message *chat.Message) error {
			inserted = append(inserted, *message)
			return nil
		},
		ListRecentFunc: func(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error) {
			return nil, nil
		},
	}
	profiles := &mockProfileRepo{
		FindByUserIDFunc: func(ctx context.Context, userID uint) (*profile.Profile, error) {
			return nil, notFound(ctx)
		},
	}
	provider := &mockProvider{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (string, error) {
			return `{"reply": "take a deep breath", "emotion": "stressed", "stressCause": "workload"}`, nil
		},
	}
	scheduler := &mockScheduler{}

	service := chat.NewService(conversations, messages, profiles, provider, scheduler, zerolog.Nop())
	reply, err := service.Chat(context.Background(), 1, "so much to do", "conv_abc")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if reply.Reply != "take a deep breath" || reply.Emotion != "stressed" || reply.StressCause != "workload" {
		t.Errorf("unexpected reply: %+v", reply)
	}
	if reply.ConversationID != "conv_abc" {
		t.Errorf("ConversationID = %q", reply.ConversationID)
	}
	if len(inserted) != 2 {
		t.Fatalf("inserted %d messages, want user and assistant turns", len(inserted))
	}
	if inserted[0].Role != chat.RoleUser || inserted[0].Content != "so much to do" {
		t.Errorf("first insert = %+v, want the user turn", inserted[0])
	}
	if inserted[1].Role != chat.RoleAssistant || inserted[1].Content != "take a deep breath" {
		t.Errorf("second insert = %+v, want the assistant turn", inserted[1])
	}
	if len(scheduler.calls) != 1 || scheduler.calls[0] != "conv_abc" {
		t.Errorf("scheduler calls = %v, want one for conv_abc", scheduler.calls)
	}
}

func TestChatDegradesOnUnparseableCompletion(t *testing.T) {
	conversation := &chat.Conversation{ID: 5, PublicID: "conv_abc", UserID: 1}
	var inserts int

	conversations := &mockConversationRepo{
		FindByPublicIDFunc: func(ctx context.Context, publicID string) (*chat.Conversation, error) {
			return conversation, nil
		},
	}
	messages := &mockMessageRepo{
		InsertFunc: func(ctx context.Context, message *chat.Message) error {
			inserts++
			return nil
		},
		ListRecentFunc: func(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error) {
			return nil, nil
		},
	}
	profiles := &mockProfileRepo{
		FindByUserIDFunc: func(ctx context.Context, userID uint) (*profile.Profile, error) {
			return profile.Empty(userID), nil
		},
	}
	provider := &mockProvider{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (string, error) {
			return "I cannot answer in JSON today", nil
		},
	}
	scheduler := &mockScheduler{}

	service := chat.NewService(conversations, messages, profiles, provider, scheduler, zerolog.Nop())
	reply, err := service.Chat(context.Background(), 1, "hi", "conv_abc")
	if err != nil {
		t.Fatalf("Chat() error = %v, degraded path must not fail", err)
	}

	if reply.Emotion != "neutral" {
		t.Errorf("Emotion = %q, want neutral fallback", reply.Emotion)
	}
	if reply.Reply == "" || reply.Reply == "I cannot answer in JSON today" {
		t.Errorf("Reply = %q, want fallback text", reply.Reply)
	}
	if inserts != 0 {
		t.Errorf("inserts = %d, corrupted turns must not be persisted", inserts)
	}
	if len(scheduler.calls) != 0 {
		t.Error("analysis must not be scheduled on a degraded turn")
	}
}

func TestChatDegradesOnProviderError(t *testing.T) {
	conversation := &chat.Conversation{ID: 5, PublicID: "conv_abc", UserID: 1}

	conversations := &mockConversationRepo{
		FindByPublicIDFunc: func(ctx context.Context, publicID string) (*chat.Conversation, error) {
			return conversation, nil
		},
	}
	messages := &mockMessageRepo{
		ListRecentFunc: func(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error) {
			return nil, nil
		},
	}
	profiles := &mockProfileRepo{
		FindByUserIDFunc: func(ctx context.Context, userID uint) (*profile.Profile, error) {
			return profile.Empty(userID), nil
		},
	}
	provider := &mockProvider{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (string, error) {
			return "", llm.ErrRateLimited
		},
	}

	service := chat.NewService(conversations, messages, profiles, provider, &mockScheduler{}, zerolog.Nop())
	reply, err := service.Chat(context.Background(), 1, "hi", "conv_abc")
	if err != nil {
		t.Fatalf("Chat() error = %v, provider failures must degrade", err)
	}
	if reply.Emotion != "neutral" {
		t.Errorf("Emotion = %q, want neutral fallback", reply.Emotion)
	}
}

func TestChatCreatesConversationWhenMissingID(t *testing.T) {
	var created *chat.Conversation

	conversations := &mockConversationRepo{
		CreateFunc: func(ctx context.Context, conversation *chat.Conversation) error {
			conversation.ID = 42
			created = conversation
			return nil
		},
	}
	messages := &mockMessageRepo{
		InsertFunc: func(ctx context.Context, message *chat.Message) error { return nil },
		ListRecentFunc: func(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error) {
			return nil, nil
		},
	}
	profiles := &mockProfileRepo{
		FindByUserIDFunc: func(ctx context.Context, userID uint) (*profile.Profile, error) {
			return profile.Empty(userID), nil
		},
	}
	provider := &mockProvider{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (string, error) {
			return `{"reply": "welcome", "emotion": "positive", "stressCause": "other"}`, nil
		},
	}

	service := chat.NewService(conversations, messages, profiles, provider, &mockScheduler{}, zerolog.Nop())
	reply, err := service.Chat(context.Background(), 3, "first message ever", "")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if created == nil {
		t.Fatal("a conversation should have been created")
	}
	if created.UserID != 3 {
		t.Errorf("created.UserID = %d, want 3", created.UserID)
	}
	if created.Title != "first message ever" {
		t.Errorf("created.Title = %q", created.Title)
	}
	if reply.ConversationID != created.PublicID {
		t.Errorf("ConversationID = %q, want %q", reply.ConversationID, created.PublicID)
	}
}
