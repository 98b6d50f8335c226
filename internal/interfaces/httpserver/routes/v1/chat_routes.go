package v1

import (
	"github.com/gin-gonic/gin"

	"softday/wellness-api/internal/interfaces/httpserver/handlers"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat", handler.Chat)
	router.GET("/chat/conversations", handler.ListConversations)
	router.GET("/chat/conversations/:conversation_id/messages", handler.ListMessages)
}
