package service

import (
	"context"
	"strings"
	"time"

	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/kafka"
	"log-triage-backend/internal/llm"
	"log-triage-backend/internal/metrics"
	"log-triage-backend/internal/model"
	"log-triage-backend/internal/parser"

	"github.com/rs/zerolog/log"
)

type AnalysisService interface {
	// AnalyzeLog runs the triage pipeline over raw log bytes. source names the upload for logs and events.
	AnalyzeLog(ctx context.Context, source string, raw []byte) (*model.AnalysisResult, error)
	BackendName() string
}

type analysisService struct {
	selector  parser.LineSelector
	backend   llm.Backend
	extractor metrics.Extractor
	events    kafka.AnalysisEventProducer
}

func NewAnalysisService(
	selector parser.LineSelector,
	backend llm.Backend,
	extractor metrics.Extractor,
	events kafka.AnalysisEventProducer,
) AnalysisService {
	return &analysisService{
		selector:  selector,
		backend:   backend,
		extractor: extractor,
		events:    events,
	}
}

func (s *analysisService) AnalyzeLog(ctx context.Context, source string, raw []byte) (*model.AnalysisResult, error) {
	startTime := time.Now()
	text := strings.ToValidUTF8(string(raw), "")

	flagged := model.FlaggedStrings(s.selector.Select(text))
	log.Info().Str("source", source).Int("bytes", len(raw)).Int("flagged", len(flagged)).Str("backend", s.backend.Name()).Msg("Analyzing log")

	prompt := analysis.BuildPrompt(flagged)
	analysisText, err := s.backend.Analyze(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("source", source).Str("backend", s.backend.Name()).Msg("Analysis backend failed")
		return nil, err
	}
	if analysisText == "" {
		log.Warn().Str("source", source).Str("backend", s.backend.Name()).Msg("Backend returned empty analysis")
	}

	result := &model.AnalysisResult{
		Flagged:  flagged,
		Analysis: analysisText,
	}

	s.publish(ctx, source, result)
	log.Info().Str("source", source).Dur("duration", time.Since(startTime)).Msg("Log analysis finished")
	return result, nil
}

func (s *analysisService) BackendName() string {
	return s.backend.Name()
}

// publish is best effort; event delivery never fails an analysis.
func (s *analysisService) publish(ctx context.Context, source string, result *model.AnalysisResult) {
	event := s.extractor.ExtractAnalysisEvent(source, s.backend.Name(), result)
	if err := s.events.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("source", source).Msg("Failed to publish analysis event")
	}
}
