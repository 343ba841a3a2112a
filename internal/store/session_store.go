package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"log-triage-backend/internal/model"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// SessionStore keeps chat sessions for the lifetime of the process.
type SessionStore interface {
	CreateSession(ctx context.Context, title *string) (*model.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error)
	AddMessage(ctx context.Context, sessionID string, role string, content string) (*model.ChatMessage, error)
	EvictIdle(ctx context.Context, idleSince time.Time) int
	Len() int
}

type inMemorySessionStore struct {
	sessions map[string]*model.ChatSession // map[sessionId]*Session
	mu       sync.RWMutex
	now      func() time.Time
}

func NewInMemorySessionStore() SessionStore {
	return NewInMemorySessionStoreWithClock(time.Now)
}

func NewInMemorySessionStoreWithClock(now func() time.Time) SessionStore {
	return &inMemorySessionStore{
		sessions: make(map[string]*model.ChatSession),
		now:      now,
	}
}

func (s *inMemorySessionStore) CreateSession(ctx context.Context, title *string) (*model.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	session := &model.ChatSession{
		ID:         uuid.NewString(),
		Title:      title,
		CreatedAt:  now,
		LastActive: now,
		Messages:   make([]model.ChatMessage, 0),
	}
	s.sessions[session.ID] = session
	return snapshot(session), nil
}

// GetSession returns a copy of the session with messages in insertion order.
func (s *inMemorySessionStore) GetSession(ctx context.Context, sessionID string) (*model.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[sessionID]; ok {
		return snapshot(session), nil
	}
	return nil, ErrSessionNotFound
}

func (s *inMemorySessionStore) AddMessage(ctx context.Context, sessionID string, role string, content string) (*model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now().UTC()
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}
	session.Messages = append(session.Messages, msg)
	session.LastActive = now
	return &msg, nil
}

// EvictIdle drops every session whose last activity is before idleSince.
func (s *inMemorySessionStore) EvictIdle(ctx context.Context, idleSince time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, session := range s.sessions {
		if session.LastActive.Before(idleSince) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *inMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func snapshot(session *model.ChatSession) *model.ChatSession {
	cp := *session
	cp.Messages = make([]model.ChatMessage, len(session.Messages))
	copy(cp.Messages, session.Messages)
	return &cp
}
