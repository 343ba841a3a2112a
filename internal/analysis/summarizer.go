package analysis

import (
	"fmt"
	"sort"
	"strings"

	"log-triage-backend/internal/model"
	"log-triage-backend/internal/parser"
)

const summaryTemplate = `Findings:
- Flagged lines: %d
- Top signals: %s

Fixes:
- Inspect the highest-frequency signals first.
- Reproduce errors locally with increased logging.`

// Tally counts, per vocabulary keyword, the flagged lines that contain it.
// A line containing two keywords counts for both.
func Tally(flagged []string) map[string]int {
	tally := make(map[string]int, len(parser.SeverityVocabulary))
	for _, line := range flagged {
		lower := strings.ToLower(line)
		for _, k := range parser.SeverityVocabulary {
			if strings.Contains(lower, k) {
				tally[k]++
			}
		}
	}
	return tally
}

// Rank orders the nonzero keywords by count descending, ties broken by vocabulary order.
func Rank(tally map[string]int) []model.KeywordCount {
	ranked := make([]model.KeywordCount, 0, len(tally))
	order := make(map[string]int, len(parser.SeverityVocabulary))
	for i, k := range parser.SeverityVocabulary {
		order[k] = i
		if c := tally[k]; c > 0 {
			ranked = append(ranked, model.KeywordCount{Keyword: k, Count: c})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Keyword] < order[ranked[j].Keyword]
	})
	return ranked
}

// Summarize renders the network-free Findings/Fixes report.
func Summarize(flagged []string) string {
	ranked := Rank(Tally(flagged))

	signals := "none"
	if len(ranked) > 0 {
		parts := make([]string, len(ranked))
		for i, kc := range ranked {
			parts[i] = fmt.Sprintf("%s(%d)", kc.Keyword, kc.Count)
		}
		signals = strings.Join(parts, ", ")
	}
	return fmt.Sprintf(summaryTemplate, len(flagged), signals)
}
