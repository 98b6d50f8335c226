package v1

import (
	"github.com/gin-gonic/gin"

	"softday/wellness-api/internal/interfaces/httpserver/handlers"
)

func registerNotificationRoutes(router gin.IRoutes, handler *handlers.NotificationHandler) {
	router.POST("/notifications/subscription", handler.SaveSubscription)
	router.POST("/notifications/test", handler.SendTest)
}
