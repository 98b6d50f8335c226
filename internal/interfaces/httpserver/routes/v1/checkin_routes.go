package v1

import (
	"github.com/gin-gonic/gin"

	"softday/wellness-api/internal/interfaces/httpserver/handlers"
)

func registerCheckInRoutes(router gin.IRoutes, handler *handlers.CheckInHandler) {
	router.POST("/checkins", handler.Create)
	router.GET("/checkins/today", handler.Today)
}
