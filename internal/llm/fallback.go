package llm

import (
	"context"

	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/model"

	"github.com/rs/zerolog/log"
)

type fallbackBackend struct {
	primary  Backend
	fallback Backend
}

// NewFallbackBackend answers from fallback when primary fails. Primary is tried once.
func NewFallbackBackend(primary, fallback Backend) Backend {
	return &fallbackBackend{primary: primary, fallback: fallback}
}

func (b *fallbackBackend) Name() string {
	return b.primary.Name() + "+" + b.fallback.Name()
}

func (b *fallbackBackend) Analyze(ctx context.Context, prompt analysis.Prompt) (string, error) {
	text, err := b.primary.Analyze(ctx, prompt)
	if err == nil {
		return text, nil
	}
	log.Warn().Err(err).Str("primary", b.primary.Name()).Str("fallback", b.fallback.Name()).Msg("Primary backend failed, degrading analysis")
	return b.fallback.Analyze(ctx, prompt)
}

func (b *fallbackBackend) Reply(ctx context.Context, history []model.ChatTurn) (string, error) {
	text, err := b.primary.Reply(ctx, history)
	if err == nil {
		return text, nil
	}
	log.Warn().Err(err).Str("primary", b.primary.Name()).Msg("Primary backend failed, degrading chat reply")
	return b.fallback.Reply(ctx, history)
}
