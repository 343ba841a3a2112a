package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/llm"
	"log-triage-backend/internal/metrics"
	"log-triage-backend/internal/model"
	"log-triage-backend/internal/parser"
	"log-triage-backend/internal/service"
)

type stubBackend struct {
	text        string
	err         error
	calls       int
	lastPrompt  analysis.Prompt
	lastHistory []model.ChatTurn
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Analyze(ctx context.Context, prompt analysis.Prompt) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.text, s.err
}

func (s *stubBackend) Reply(ctx context.Context, history []model.ChatTurn) (string, error) {
	s.calls++
	s.lastHistory = history
	return s.text, s.err
}

type recordingProducer struct {
	events []model.AnalysisEvent
	err    error
}

func (p *recordingProducer) Publish(ctx context.Context, event model.AnalysisEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingProducer) Close() error { return nil }

func newAnalysisService(backend llm.Backend, events *recordingProducer) service.AnalysisService {
	return service.NewAnalysisService(
		parser.NewKeywordSelector(parser.DefaultMaxFlagged),
		backend,
		metrics.NewSignalExtractor(),
		events,
	)
}

func TestAnalyzeLog_LocalBackendEndToEnd(t *testing.T) {
	events := &recordingProducer{}
	svc := newAnalysisService(llm.NewLocalBackend(), events)

	result, err := svc.AnalyzeLog(context.Background(), "app.log", []byte("ok\nERROR: disk full\nwarn: low memory\nok"))
	require.NoError(t, err)

	assert.Equal(t, []string{"L2: ERROR: disk full", "L3: warn: low memory"}, result.Flagged)
	assert.Contains(t, result.Analysis, "Flagged lines: 2")
	assert.Contains(t, result.Analysis, "error(1), warn(1)")

	require.Len(t, events.events, 1)
	assert.Equal(t, "app.log", events.events[0].Source)
	assert.Equal(t, "local", events.events[0].Backend)
	assert.Equal(t, 2, events.events[0].FlaggedLines)
}

func TestAnalyzeLog_PromptHandedToBackend(t *testing.T) {
	backend := &stubBackend{text: "Findings:\n- x\nFixes:\n- y"}
	svc := newAnalysisService(backend, &recordingProducer{})

	result, err := svc.AnalyzeLog(context.Background(), "empty.log", []byte("all good\n"))
	require.NoError(t, err)

	assert.Empty(t, result.Flagged)
	assert.NotNil(t, result.Flagged)
	assert.Equal(t, "No flagged lines.", backend.lastPrompt.User)
	assert.Equal(t, analysis.SystemPrompt, backend.lastPrompt.System)
	assert.Equal(t, "Findings:\n- x\nFixes:\n- y", result.Analysis)
}

func TestAnalyzeLog_BackendErrorSurfaces(t *testing.T) {
	backendErr := &llm.Error{Backend: "openai", Err: errors.New("context deadline exceeded")}
	backend := &stubBackend{err: backendErr}
	events := &recordingProducer{}
	svc := newAnalysisService(backend, events)

	result, err := svc.AnalyzeLog(context.Background(), "app.log", []byte("fatal error"))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, 1, backend.calls)
	assert.Empty(t, events.events)
}

func TestAnalyzeLog_EmptyAnalysisIsDegradedResult(t *testing.T) {
	backend := &stubBackend{text: ""}
	svc := newAnalysisService(backend, &recordingProducer{})

	result, err := svc.AnalyzeLog(context.Background(), "app.log", []byte("warn"))
	require.NoError(t, err)
	assert.Equal(t, "", result.Analysis)
	assert.Equal(t, []string{"L1: warn"}, result.Flagged)
}

func TestAnalyzeLog_EventFailureDoesNotFailAnalysis(t *testing.T) {
	events := &recordingProducer{err: errors.New("broker down")}
	svc := newAnalysisService(llm.NewLocalBackend(), events)

	result, err := svc.AnalyzeLog(context.Background(), "app.log", []byte("error"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Analysis)
}

func TestAnalyzeLog_InvalidUTF8IsDropped(t *testing.T) {
	svc := newAnalysisService(llm.NewLocalBackend(), &recordingProducer{})

	raw := []byte("ok\nerr\xffor here\n")
	result, err := svc.AnalyzeLog(context.Background(), "bin.log", raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"L2: error here"}, result.Flagged)
}

func TestAnalysisService_BackendName(t *testing.T) {
	svc := newAnalysisService(llm.NewLocalBackend(), &recordingProducer{})
	assert.Equal(t, "local", svc.BackendName())
}
