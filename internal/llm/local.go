package llm

import (
	"context"

	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/model"
)

const localBackendName = "local"

type localBackend struct{}

// NewLocalBackend returns the network-free backend built on the keyword summarizer.
func NewLocalBackend() Backend {
	return localBackend{}
}

func (localBackend) Name() string {
	return localBackendName
}

func (localBackend) Analyze(_ context.Context, prompt analysis.Prompt) (string, error) {
	return analysis.Summarize(prompt.Flagged), nil
}

func (localBackend) Reply(_ context.Context, history []model.ChatTurn) (string, error) {
	lastUser := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == model.RoleUser {
			lastUser = history[i].Content
			break
		}
	}
	return "You said: " + lastUser, nil
}
