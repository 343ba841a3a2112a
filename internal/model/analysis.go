package model

import "time"

type AnalysisResult struct {
	Flagged  []string `json:"flagged"`
	Analysis string   `json:"analysis"`
}

type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// AnalysisEvent is published after every completed analysis.
type AnalysisEvent struct {
	Time         time.Time      `json:"time"`
	Source       string         `json:"source"`
	Backend      string         `json:"backend"`
	FlaggedLines int            `json:"flagged_lines"`
	Signals      []KeywordCount `json:"signals"`
}
