package model

import "fmt"

// LogLine is a single line of an uploaded log. Index is 1-based.
type LogLine struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// FlaggedLine is a LogLine that matched the severity vocabulary.
type FlaggedLine LogLine

func (l FlaggedLine) String() string {
	return fmt.Sprintf("L%d: %s", l.Index, l.Text)
}

// FlaggedStrings serializes flagged lines in their original order.
func FlaggedStrings(lines []FlaggedLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}
