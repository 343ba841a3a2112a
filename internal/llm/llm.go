package llm

import (
	"context"
	"fmt"
	"net/http"

	"log-triage-backend/config"
	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	analysisTemperature = 0.2
	chatSystemPrompt    = "You are a helpful, concise assistant."
)

// Backend produces analysis text for a prompt and replies to chat history.
type Backend interface {
	Name() string
	Analyze(ctx context.Context, prompt analysis.Prompt) (string, error)
	Reply(ctx context.Context, history []model.ChatTurn) (string, error)
}

// Error wraps a failed remote call. Its message is the underlying one, unchanged.
type Error struct {
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(backend string, format string, args ...any) *Error {
	return &Error{Backend: backend, Err: fmt.Errorf(format, args...)}
}

// New picks the backend from configuration alone: a remote provider when its
// credential is set, the local summarizer otherwise.
func New(cfg *config.Config) Backend {
	if !cfg.LLM.HasCredential() {
		log.Info().Str("provider", cfg.LLM.Provider).Msg("No LLM credential configured, using local summarizer")
		return NewLocalBackend()
	}

	httpClient := &http.Client{Timeout: cfg.LLM.Timeout}

	var remote Backend
	switch cfg.LLM.Provider {
	case config.ProviderAnthropic:
		remote = NewAnthropicBackend(cfg.LLM, httpClient)
	default:
		remote = NewOpenAIBackend(cfg.LLM, httpClient)
	}
	log.Info().Str("backend", remote.Name()).Dur("timeout", cfg.LLM.Timeout).Msg("Remote LLM backend selected")

	if cfg.LLM.FallbackOnError {
		log.Info().Msg("Local summarizer fallback enabled for remote failures")
		return NewFallbackBackend(remote, NewLocalBackend())
	}
	return remote
}

// withSystemPrompt prepends the default chat system prompt unless history already has one.
func withSystemPrompt(history []model.ChatTurn) []model.ChatTurn {
	for _, turn := range history {
		if turn.Role == model.RoleSystem {
			return history
		}
	}
	turns := make([]model.ChatTurn, 0, len(history)+1)
	turns = append(turns, model.ChatTurn{Role: model.RoleSystem, Content: chatSystemPrompt})
	return append(turns, history...)
}
