package metrics

import (
	"time"

	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/model"

	"github.com/rs/zerolog/log"
)

type Extractor interface {
	ExtractAnalysisEvent(source string, backend string, result *model.AnalysisResult) model.AnalysisEvent
}

type signalExtractor struct {
	now func() time.Time
}

func NewSignalExtractor() Extractor {
	return &signalExtractor{now: time.Now}
}

// ExtractAnalysisEvent summarizes a finished analysis using the same ranking as the local summarizer.
func (e *signalExtractor) ExtractAnalysisEvent(source string, backend string, result *model.AnalysisResult) model.AnalysisEvent {
	event := model.AnalysisEvent{
		Time:    e.now().UTC(),
		Source:  source,
		Backend: backend,
		Signals: []model.KeywordCount{},
	}
	if result == nil {
		return event
	}

	event.FlaggedLines = len(result.Flagged)
	event.Signals = analysis.Rank(analysis.Tally(result.Flagged))

	log.Trace().Str("source", source).Int("flagged", event.FlaggedLines).Int("signals", len(event.Signals)).Msg("Extracted analysis event")
	return event
}
