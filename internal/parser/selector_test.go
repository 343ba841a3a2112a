package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-triage-backend/internal/model"
	"log-triage-backend/internal/parser"
)

type countingMatcher struct {
	inner     parser.Matcher
	inspected []string
}

func (m *countingMatcher) Match(line string) bool {
	m.inspected = append(m.inspected, line)
	return m.inner.Match(line)
}

func TestKeywordSelector_Select(t *testing.T) {
	selector := parser.NewKeywordSelector(parser.DefaultMaxFlagged)

	tests := []struct {
		name     string
		text     string
		expected []model.FlaggedLine
	}{
		{
			name:     "Empty Input",
			text:     "",
			expected: []model.FlaggedLine{},
		},
		{
			name:     "No Matches",
			text:     "starting up\nlistening on :8080\n",
			expected: []model.FlaggedLine{},
		},
		{
			name: "Unix Line Endings",
			text: "ok\nERROR: disk full\nwarn: low memory\nok",
			expected: []model.FlaggedLine{
				{Index: 2, Text: "ERROR: disk full"},
				{Index: 3, Text: "warn: low memory"},
			},
		},
		{
			name: "Windows Line Endings",
			text: "ok\r\nERROR: disk full\r\nwarn: low memory\r\nok\r\n",
			expected: []model.FlaggedLine{
				{Index: 2, Text: "ERROR: disk full"},
				{Index: 3, Text: "warn: low memory"},
			},
		},
		{
			name: "Mixed Line Endings",
			text: "Exception in thread main\r\nok\nretry FAILED\r\n",
			expected: []model.FlaggedLine{
				{Index: 1, Text: "Exception in thread main"},
				{Index: 3, Text: "retry FAILED"},
			},
		},
		{
			name: "Substring Matching Over-Matches",
			text: "ERRORCODE=0\nwarnings disabled\nfailover complete",
			expected: []model.FlaggedLine{
				{Index: 1, Text: "ERRORCODE=0"},
				{Index: 2, Text: "warnings disabled"},
				{Index: 3, Text: "failover complete"},
			},
		},
		{
			name: "Blank Lines Keep Numbering",
			text: "\n\n\nfatal error\n",
			expected: []model.FlaggedLine{
				{Index: 4, Text: "fatal error"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := selector.Select(tt.text)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestKeywordSelector_StopsAtCap(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 250; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&b, "line %d error\n", i)
		} else {
			fmt.Fprintf(&b, "line %d ok\n", i)
		}
	}

	result := parser.NewKeywordSelector(parser.DefaultMaxFlagged).Select(b.String())

	require.Len(t, result, 125)
	assert.Equal(t, 2, result[0].Index)
	assert.Equal(t, 250, result[124].Index)
}

func TestKeywordSelector_SentinelBeyondCapIsNeverInspected(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= parser.DefaultMaxFlagged; i++ {
		fmt.Fprintf(&b, "ok %d\n", i)
		fmt.Fprintf(&b, "error %d\n", i)
	}
	b.WriteString("SENTINEL exception past the cap\n")
	b.WriteString("trailing ok\n")

	matcher := &countingMatcher{inner: parser.NewKeywordMatcher(parser.SeverityVocabulary)}
	result := parser.NewSelector(matcher, parser.DefaultMaxFlagged).Select(b.String())

	require.Len(t, result, parser.DefaultMaxFlagged)
	last := result[len(result)-1]
	assert.Equal(t, 2*parser.DefaultMaxFlagged, last.Index)
	assert.Equal(t, "error 200", last.Text)

	// Scanning stops exactly at the line that produced the last match.
	assert.Len(t, matcher.inspected, 2*parser.DefaultMaxFlagged)
	for _, line := range matcher.inspected {
		assert.NotContains(t, line, "SENTINEL")
	}
}

func TestKeywordSelector_IndicesStrictlyIncreasing(t *testing.T) {
	lines := []string{"warn a", "", "b", "c error", "d", "exception e", "fail f", "g"}
	result := parser.NewKeywordSelector(0).Select(strings.Join(lines, "\n"))

	require.NotEmpty(t, result)
	prev := 0
	for _, fl := range result {
		assert.Greater(t, fl.Index, prev)
		assert.Equal(t, lines[fl.Index-1], fl.Text)
		prev = fl.Index
	}
}

func TestKeywordSelector_CustomCap(t *testing.T) {
	result := parser.NewKeywordSelector(2).Select("error 1\nerror 2\nerror 3")
	assert.Equal(t, []model.FlaggedLine{{Index: 1, Text: "error 1"}, {Index: 2, Text: "error 2"}}, result)
}

func TestKeywordMatcher_CaseInsensitive(t *testing.T) {
	m := parser.NewKeywordMatcher([]string{"Error"})
	assert.True(t, m.Match("an ERROR occurred"))
	assert.True(t, m.Match("errorcode"))
	assert.False(t, m.Match("all good"))
}

func TestFlaggedLine_String(t *testing.T) {
	fl := model.FlaggedLine{Index: 12, Text: "WARN: slow query"}
	assert.Equal(t, "L12: WARN: slow query", fl.String())
	assert.Equal(t, []string{"L12: WARN: slow query"}, model.FlaggedStrings([]model.FlaggedLine{fl}))
}
