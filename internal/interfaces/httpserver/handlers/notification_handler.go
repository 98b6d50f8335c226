package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/alert"
	"softday/wellness-api/internal/domain/user"
	"softday/wellness-api/internal/infrastructure/auth"
	"softday/wellness-api/internal/interfaces/httpserver/requests"
	"softday/wellness-api/internal/interfaces/httpserver/responses"
	"softday/wellness-api/internal/utils/platformerrors"
)

// NotificationHandler exposes push subscription and test-alert endpoints.
type NotificationHandler struct {
	users        user.Repository
	alertService *alert.Service
	log          zerolog.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(users user.Repository, alertService *alert.Service, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		users:        users,
		alertService: alertService,
		log:          log.With().Str("handler", "notification").Logger(),
	}
}

// SaveSubscription handles POST /v1/notifications/subscription
func (h *NotificationHandler) SaveSubscription(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	var req requests.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(),
			platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"endpoint and keys are required", err), "invalid subscription request")
		return
	}

	sub := user.PushSubscription{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if err := h.users.SavePushSubscription(c.Request.Context(), userID, sub); err != nil {
		responses.HandleError(c, err, "failed to save push subscription")
		return
	}

	h.log.Info().Uint("user_id", userID).Msg("push subscription saved")
	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}

// SendTest handles POST /v1/notifications/test. It runs the alert rules for
// the caller with testMode on, so a notification is always produced.
func (h *NotificationHandler) SendTest(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	decision, err := h.alertService.EvaluateUser(c.Request.Context(), userID, true)
	if err != nil {
		responses.HandleError(c, err, "failed to send test notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"triggered": decision.Triggered,
		"title":     decision.Title,
		"body":      decision.Body,
	})
}
