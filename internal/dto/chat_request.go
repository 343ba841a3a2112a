package dto

type SessionCreateRequest struct {
	Title *string `json:"title,omitempty"`
}

type MessageCreateRequest struct {
	Role    string `json:"role" binding:"omitempty,oneof=user assistant system"`
	Content string `json:"content" binding:"required"`
}
