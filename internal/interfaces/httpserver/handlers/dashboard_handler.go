package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/analytics"
	"softday/wellness-api/internal/infrastructure/auth"
	"softday/wellness-api/internal/interfaces/httpserver/responses"
	"softday/wellness-api/internal/utils/platformerrors"
)

// DashboardHandler exposes the analytics dashboard endpoint.
type DashboardHandler struct {
	service *analytics.Service
	log     zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service *analytics.Service, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// Get handles GET /v1/dashboard?period=7
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		responses.HandleError(c, unauthenticated(c), "missing authenticated user")
		return
	}

	period := 7
	if raw := c.Query("period"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			responses.HandleError(c, platformerrors.NewError(c.Request.Context(),
				platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				"period must be a positive integer", err), "invalid period")
			return
		}
		period = parsed
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), userID, period)
	if err != nil {
		responses.HandleError(c, err, "failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
