package v1

import (
	"github.com/gin-gonic/gin"

	"softday/wellness-api/internal/interfaces/httpserver/handlers"
)

func registerDashboardRoutes(router gin.IRoutes, handler *handlers.DashboardHandler) {
	router.GET("/dashboard", handler.Get)
}
