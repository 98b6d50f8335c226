package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/infrastructure/auth"
	"softday/wellness-api/internal/interfaces/httpserver/requests"
	"softday/wellness-api/internal/interfaces/httpserver/responses"
	"softday/wellness-api/internal/utils/platformerrors"
)

// ChatHandler exposes HTTP entrypoints for the companion chat.
type ChatHandler struct {
	service *chat.Service
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service *chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// Chat handles POST /v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(),
			platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"message is required", err), "invalid chat request")
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), userID, req.Message, req.ConversationID)
	if err != nil {
		responses.HandleError(c, err, "failed to process chat message")
		return
	}

	c.JSON(http.StatusOK, reply)
}

// ListConversations handles GET /v1/chat/conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	conversations, err := h.service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	payload := make([]responses.ConversationPayload, 0, len(conversations))
	for i := range conversations {
		payload = append(payload, responses.FromConversation(&conversations[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// ListMessages handles GET /v1/chat/conversations/:conversation_id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	messages, err := h.service.ListMessages(c.Request.Context(), userID, c.Param("conversation_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to list messages")
		return
	}

	payload := make([]responses.MessagePayload, 0, len(messages))
	for i := range messages {
		payload = append(payload, responses.FromMessage(&messages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

func unauthenticated(c *gin.Context) error {
	return platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
		platformerrors.ErrorTypeUnauthorized, "request has no authenticated user", nil)
}
