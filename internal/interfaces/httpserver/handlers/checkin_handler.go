package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/infrastructure/auth"
	"softday/wellness-api/internal/interfaces/httpserver/requests"
	"softday/wellness-api/internal/interfaces/httpserver/responses"
	"softday/wellness-api/internal/utils/platformerrors"
)

// CheckInHandler exposes HTTP entrypoints for daily check-ins.
type CheckInHandler struct {
	service *checkin.Service
	log     zerolog.Logger
}

// NewCheckInHandler constructs the handler.
func NewCheckInHandler(service *checkin.Service, log zerolog.Logger) *CheckInHandler {
	return &CheckInHandler{
		service: service,
		log:     log.With().Str("handler", "checkin").Logger(),
	}
}

// Create handles POST /v1/checkins
func (h *CheckInHandler) Create(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	var req requests.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(),
			platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"stress_level is required", err), "invalid check-in request")
		return
	}

	record, err := h.service.Create(c.Request.Context(), userID, req.StressLevel, req.Causes, req.Memo)
	if err != nil {
		responses.HandleError(c, err, "failed to create check-in")
		return
	}

	c.JSON(http.StatusCreated, responses.FromCheckIn(record))
}

// Today handles GET /v1/checkins/today
func (h *CheckInHandler) Today(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	record, err := h.service.Today(c.Request.Context(), userID)
	if err != nil {
		responses.HandleError(c, err, "no check-in found for today")
		return
	}

	c.JSON(http.StatusOK, responses.FromCheckIn(record))
}
