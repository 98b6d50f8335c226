package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/utils/platformerrors"
)

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code      string `json:"code"` // UUID from PlatformError
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError handles domain errors and returns appropriate HTTP responses
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:      domainErr.GetUUID(),
			Error:     message,
			Message:   message,
			RequestID: domainErr.GetRequestID(),
		})
		return
	}
	// Non-platform errors
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Message: message,
	})
}

// ConversationPayload is one chat thread summary.
type ConversationPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessagePayload is one conversation turn.
type MessagePayload struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckInPayload is the persisted check-in returned to the client.
type CheckInPayload struct {
	ID          string    `json:"id"`
	CheckinDate string    `json:"checkin_date"`
	StressLevel int       `json:"stress_level"`
	Memo        string    `json:"memo,omitempty"`
	Emoji       string    `json:"emoji"`
	Causes      []string  `json:"causes"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromConversation maps the domain conversation to DTO.
func FromConversation(c *chat.Conversation) ConversationPayload {
	return ConversationPayload{
		ID:        c.PublicID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromMessage maps the domain message to DTO.
func FromMessage(m *chat.Message) MessagePayload {
	return MessagePayload{
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// FromCheckIn maps the domain check-in to DTO.
func FromCheckIn(c *checkin.CheckIn) CheckInPayload {
	causes := c.Causes
	if causes == nil {
		causes = []string{}
	}
	return CheckInPayload{
		ID:          c.PublicID,
		CheckinDate: c.CheckinDate.Format("2006-01-02"),
		StressLevel: c.StressLevel,
		Memo:        c.Memo,
		Emoji:       c.Emoji,
		Causes:      causes,
		CreatedAt:   c.CreatedAt,
	}
}
