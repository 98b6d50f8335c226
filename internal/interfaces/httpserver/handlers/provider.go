package handlers

import (
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/alert"
	"softday/wellness-api/internal/domain/analytics"
	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/domain/user"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat         *ChatHandler
	CheckIn      *CheckInHandler
	Dashboard    *DashboardHandler
	Notification *NotificationHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	chatService *chat.Service,
	checkInService *checkin.Service,
	analyticsService *analytics.Service,
	alertService *alert.Service,
	users user.Repository,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Chat:         NewChatHandler(chatService, log),
		CheckIn:      NewCheckInHandler(checkInService, log),
		Dashboard:    NewDashboardHandler(analyticsService, log),
		Notification: NewNotificationHandler(users, alertService, log),
	}
}
