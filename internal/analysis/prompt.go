package analysis

import "strings"

const SystemPrompt = "You are a precise log analysis assistant. Given flagged log lines, output two sections: \n\nFindings:\n- ...\nFixes:\n- ...\nKeep output concise."

const NoFlaggedLines = "No flagged lines."

// Prompt is the system/user pair sent to a backend. Flagged keeps the raw
// lines so backends that do not talk to a model can work from them.
type Prompt struct {
	System  string
	User    string
	Flagged []string
}

func BuildPrompt(flagged []string) Prompt {
	user := strings.Join(flagged, "\n")
	if len(flagged) == 0 {
		user = NoFlaggedLines
	}
	return Prompt{
		System:  SystemPrompt,
		User:    user,
		Flagged: flagged,
	}
}
