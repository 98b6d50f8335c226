package requests

// ChatRequest starts or continues a conversation turn.
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// CheckInRequest records today's stress check-in.
type CheckInRequest struct {
	StressLevel int      `json:"stress_level" binding:"required"`
	Causes      []string `json:"causes"`
	Memo        string   `json:"memo"`
}

// SubscriptionRequest stores the browser push subscription.
type SubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}
