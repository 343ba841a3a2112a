package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"log-triage-backend/internal/model"
)

// Renderer writes an AnalysisResult to an output stream.
type Renderer interface {
	Render(result *model.AnalysisResult) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleHeading = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)  // cyan bold
	styleIndex   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // gray
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))            // yellow
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleNone    = lipgloss.NewStyle().Faint(true)
)

// TextRenderer prints the flagged lines and the analysis for a terminal.
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(result *model.AnalysisResult) error {
	var b strings.Builder
	b.WriteString(styleHeading.Render(fmt.Sprintf("Flagged lines (%d)", len(result.Flagged))))
	b.WriteString("\n")
	if len(result.Flagged) == 0 {
		b.WriteString(styleNone.Render("  none"))
		b.WriteString("\n")
	}
	for _, line := range result.Flagged {
		b.WriteString("  ")
		b.WriteString(styleFlagged(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleHeading.Render("Analysis"))
	b.WriteString("\n")
	b.WriteString(result.Analysis)
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

// styleFlagged colors "L<n>: <text>" by the most severe keyword in text.
func styleFlagged(line string) string {
	prefix, text, ok := strings.Cut(line, ": ")
	if !ok {
		return line
	}
	lower := strings.ToLower(text)
	var body string
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "exception"), strings.Contains(lower, "fail"):
		body = styleError.Render(text)
	case strings.Contains(lower, "warn"):
		body = styleWarn.Render(text)
	default:
		body = text
	}
	return styleIndex.Render(prefix+":") + " " + body
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints the result in the same shape the HTTP endpoint returns.
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(result *model.AnalysisResult) error {
	return r.enc.Encode(result)
}

// New returns the renderer for format, "text" or "json".
func New(format string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextRenderer(w), nil
	case "json":
		return NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}
