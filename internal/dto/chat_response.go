package dto

import (
	"time"

	"log-triage-backend/internal/model"
)

type SessionResponse struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionWithMessagesResponse struct {
	SessionResponse
	Messages []MessageResponse `json:"messages"`
}

type StatusResponse struct {
	Status     string `json:"status"`
	App        string `json:"app"`
	Backend    string `json:"backend"`
	ChatAPIURL string `json:"chat_api_url"`
}

func NewSessionResponse(s *model.ChatSession) SessionResponse {
	return SessionResponse{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt}
}

func NewMessageResponse(m *model.ChatMessage) MessageResponse {
	return MessageResponse{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
}

func NewSessionWithMessagesResponse(s *model.ChatSession) SessionWithMessagesResponse {
	messages := make([]MessageResponse, len(s.Messages))
	for i := range s.Messages {
		messages[i] = NewMessageResponse(&s.Messages[i])
	}
	return SessionWithMessagesResponse{
		SessionResponse: NewSessionResponse(s),
		Messages:        messages,
	}
}
