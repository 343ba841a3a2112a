package scheduler

import (
	"context"
	"time"

	"log-triage-backend/config"
	"log-triage-backend/internal/store"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// NewCron returns a cron runner that accepts schedules with a leading seconds field.
func NewCron() *cron.Cron {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional | cron.Descriptor)
	return cron.New(cron.WithParser(parser))
}

// AddSessionSweep registers the idle-session eviction job on c.
func AddSessionSweep(c *cron.Cron, schedule string, ttl time.Duration, sessions store.SessionStore, now func() time.Time) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() {
		SweepSessions(context.Background(), sessions, ttl, now())
	})
}

// SweepSessions evicts every session idle for longer than ttl as of now.
func SweepSessions(ctx context.Context, sessions store.SessionStore, ttl time.Duration, now time.Time) int {
	evicted := sessions.EvictIdle(ctx, now.Add(-ttl))
	if evicted > 0 {
		log.Info().Int("evicted", evicted).Int("remaining", sessions.Len()).Msg("Evicted idle chat sessions")
	}
	return evicted
}

// NewSessionSweeper schedules idle-session eviction for the app lifetime.
// A zero SESSION_IDLE_TTL keeps sessions until the process exits.
func NewSessionSweeper(lc fx.Lifecycle, cfg *config.Config, sessions store.SessionStore) (*cron.Cron, error) {
	if cfg.Session.IdleTTL <= 0 {
		log.Info().Msg("Session idle TTL disabled, chat sessions are kept until shutdown")
		return nil, nil
	}

	c := NewCron()
	schedule := cfg.Session.SweepSchedule
	if _, err := AddSessionSweep(c, schedule, cfg.Session.IdleTTL, sessions, time.Now); err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("Failed to add session sweep job")
		return nil, err
	}
	log.Info().Str("schedule", schedule).Dur("idle_ttl", cfg.Session.IdleTTL).Msg("Scheduled chat session sweep")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msg("Starting cron scheduler")
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping cron scheduler...")
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
				log.Info().Msg("Cron scheduler stopped gracefully.")
				return nil
			case <-ctx.Done():
				log.Error().Msg("Context cancelled while waiting for cron scheduler to stop.")
				return ctx.Err()
			}
		},
	})

	return c, nil
}
