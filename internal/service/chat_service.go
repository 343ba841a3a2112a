package service

import (
	"context"
	"fmt"

	"log-triage-backend/internal/dto"
	"log-triage-backend/internal/llm"
	"log-triage-backend/internal/model"
	"log-triage-backend/internal/store"

	"github.com/rs/zerolog/log"
)

type ChatService interface {
	CreateSession(ctx context.Context, req dto.SessionCreateRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionWithMessagesResponse, error)
	PostMessage(ctx context.Context, sessionID string, req dto.MessageCreateRequest) (*dto.MessageResponse, error)
	// AttachAnalysis records an upload and its analysis as a user/assistant exchange.
	AttachAnalysis(ctx context.Context, sessionID string, filename string, result *model.AnalysisResult) error
	SessionExists(ctx context.Context, sessionID string) bool
}

type chatService struct {
	sessions store.SessionStore
	backend  llm.Backend
}

func NewChatService(sessions store.SessionStore, backend llm.Backend) ChatService {
	return &chatService{
		sessions: sessions,
		backend:  backend,
	}
}

func (s *chatService) CreateSession(ctx context.Context, req dto.SessionCreateRequest) (*dto.SessionResponse, error) {
	session, err := s.sessions.CreateSession(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	log.Info().Str("session_id", session.ID).Msg("Chat session created")
	resp := dto.NewSessionResponse(session)
	return &resp, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionID string) (*dto.SessionWithMessagesResponse, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSessionWithMessagesResponse(session)
	return &resp, nil
}

func (s *chatService) SessionExists(ctx context.Context, sessionID string) bool {
	_, err := s.sessions.GetSession(ctx, sessionID)
	return err == nil
}

// PostMessage stores the turn, relays the whole history to the backend and stores its reply.
// A backend failure becomes the assistant's text instead of failing the request.
func (s *chatService) PostMessage(ctx context.Context, sessionID string, req dto.MessageCreateRequest) (*dto.MessageResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if _, err := s.sessions.AddMessage(ctx, sessionID, role, req.Content); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history := make([]model.ChatTurn, len(session.Messages))
	for i, m := range session.Messages {
		history[i] = model.ChatTurn{Role: m.Role, Content: m.Content}
	}

	log.Info().Str("session_id", sessionID).Int("history_len", len(history)).Str("backend", s.backend.Name()).Msg("Relaying chat turn")
	reply, err := s.backend.Reply(ctx, history)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Chat backend failed")
		reply = fmt.Sprintf("[LLM error: %s]", err.Error())
	}

	assistantMsg, err := s.sessions.AddMessage(ctx, sessionID, model.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}
	resp := dto.NewMessageResponse(assistantMsg)
	return &resp, nil
}

func (s *chatService) AttachAnalysis(ctx context.Context, sessionID string, filename string, result *model.AnalysisResult) error {
	if _, err := s.sessions.AddMessage(ctx, sessionID, model.RoleUser, "Uploaded file: "+filename); err != nil {
		return err
	}
	if _, err := s.sessions.AddMessage(ctx, sessionID, model.RoleAssistant, result.Analysis); err != nil {
		return err
	}
	log.Debug().Str("session_id", sessionID).Str("file", filename).Msg("Attached analysis to chat session")
	return nil
}
