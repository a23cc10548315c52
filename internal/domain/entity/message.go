package entity

import "time"

// Conversation one persisted chat exchange
type Conversation struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	ConversationID string    `json:"conversation_id"`
	UserMessage    string    `json:"user_message"`
	AIResponse     string    `json:"ai_response"`
	Timestamp      time.Time `json:"timestamp"`
}

// ChatReply result of a chat call
type ChatReply struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
}
