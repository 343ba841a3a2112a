package parser

import (
	"strings"

	"log-triage-backend/internal/model"

	"github.com/rs/zerolog/log"
)

const DefaultMaxFlagged = 200

// SeverityVocabulary is ordered; the order is the tie-break when ranking signals.
var SeverityVocabulary = []string{"error", "warn", "exception", "fail"}

// Matcher decides whether a single line is worth analysis.
type Matcher interface {
	Match(line string) bool
}

type keywordMatcher struct {
	keywords []string
}

// NewKeywordMatcher matches case-insensitively on substrings, so "ERRORCODE" matches "error".
func NewKeywordMatcher(keywords []string) Matcher {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &keywordMatcher{keywords: lowered}
}

func (m *keywordMatcher) Match(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range m.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

type LineSelector interface {
	Select(text string) []model.FlaggedLine
}

type keywordSelector struct {
	matcher    Matcher
	maxFlagged int
}

func NewKeywordSelector(maxFlagged int) LineSelector {
	return NewSelector(NewKeywordMatcher(SeverityVocabulary), maxFlagged)
}

func NewSelector(matcher Matcher, maxFlagged int) LineSelector {
	if maxFlagged <= 0 {
		maxFlagged = DefaultMaxFlagged
	}
	return &keywordSelector{matcher: matcher, maxFlagged: maxFlagged}
}

// Select walks the text line by line (split on "\n", one trailing "\r" dropped) and stops
// as soon as maxFlagged lines matched. Lines past that point are never inspected.
func (s *keywordSelector) Select(text string) []model.FlaggedLine {
	flagged := make([]model.FlaggedLine, 0)
	if text == "" {
		return flagged
	}

	index := 0
	rest := text
	for {
		line, tail, more := strings.Cut(rest, "\n")
		index++
		line = strings.TrimSuffix(line, "\r")

		if s.matcher.Match(line) {
			flagged = append(flagged, model.FlaggedLine{Index: index, Text: line})
			if len(flagged) >= s.maxFlagged {
				log.Debug().Int("line", index).Int("cap", s.maxFlagged).Msg("Flagged line cap reached, stopping scan")
				break
			}
		}
		if !more {
			break
		}
		rest = tail
	}
	return flagged
}
