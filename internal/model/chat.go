package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ChatSession struct {
	ID         string
	Title      *string
	CreatedAt  time.Time
	LastActive time.Time
	Messages   []ChatMessage
}

type ChatMessage struct {
	ID        string
	SessionID string
	Role      string
	Content   string
	CreatedAt time.Time
}

// ChatTurn is the role/content pair relayed to a chat backend.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
