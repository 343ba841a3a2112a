package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-triage-backend/config"
	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/llm"
	"log-triage-backend/internal/model"
)

type fakeServer struct {
	*httptest.Server
	hits     atomic.Int32
	lastBody map[string]any
	lastPath string
}

func newFakeServer(t *testing.T, status int, response string) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		fs.lastPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		fs.lastBody = map[string]any{}
		_ = json.Unmarshal(body, &fs.lastBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func openAICompletion(content string) string {
	return `{"id":"chatcmpl-1","object":"chat.completion","created":1700000000,"model":"gpt-4o-mini",` +
		`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` +
		mustJSON(content) + `}}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`
}

func anthropicMessage(text string) string {
	return `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",` +
		`"content":[{"type":"text","text":` + mustJSON(text) + `}],` +
		`"stop_reason":"end_turn","stop_sequence":null,"usage":{"input_tokens":1,"output_tokens":1}}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func openAIConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider:      config.ProviderOpenAI,
		OpenAIAPIKey:  "sk-test",
		OpenAIModel:   "gpt-4o-mini",
		OpenAIBaseURL: baseURL + "/",
		Timeout:       5 * time.Second,
	}
}

func anthropicConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider:         config.ProviderAnthropic,
		AnthropicAPIKey:  "sk-ant-test",
		AnthropicModel:   "claude-3-5-haiku-latest",
		AnthropicBaseURL: baseURL,
		Timeout:          5 * time.Second,
	}
}

func TestOpenAIBackend_Analyze(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, openAICompletion("Findings:\n- disk full\nFixes:\n- free space"))
	backend := llm.NewOpenAIBackend(openAIConfig(srv.URL), srv.Client())

	prompt := analysis.BuildPrompt([]string{"L2: ERROR: disk full"})
	text, err := backend.Analyze(context.Background(), prompt)
	require.NoError(t, err)
	assert.Equal(t, "Findings:\n- disk full\nFixes:\n- free space", text)

	assert.True(t, strings.HasSuffix(srv.lastPath, "/chat/completions"))
	assert.Equal(t, "gpt-4o-mini", srv.lastBody["model"])
	assert.InDelta(t, 0.2, srv.lastBody["temperature"], 1e-9)

	messages, ok := srv.lastBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	assert.Contains(t, fmt.Sprint(messages[1]), "L2: ERROR: disk full")
}

func TestOpenAIBackend_NoChoicesIsDegradedNotError(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK,
		`{"id":"chatcmpl-1","object":"chat.completion","created":1700000000,"model":"gpt-4o-mini","choices":[]}`)
	backend := llm.NewOpenAIBackend(openAIConfig(srv.URL), srv.Client())

	text, err := backend.Analyze(context.Background(), analysis.BuildPrompt(nil))
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestOpenAIBackend_FailureIsNotRetried(t *testing.T) {
	srv := newFakeServer(t, http.StatusInternalServerError, `{"error":{"message":"upstream exploded","type":"server_error"}}`)
	backend := llm.NewOpenAIBackend(openAIConfig(srv.URL), srv.Client())

	_, err := backend.Analyze(context.Background(), analysis.BuildPrompt([]string{"L1: error"}))
	require.Error(t, err)

	var backendErr *llm.Error
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "openai", backendErr.Backend)
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestOpenAIBackend_ReplyAddsSystemPrompt(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, openAICompletion("Check the disk."))
	backend := llm.NewOpenAIBackend(openAIConfig(srv.URL), srv.Client())

	text, err := backend.Reply(context.Background(), []model.ChatTurn{
		{Role: model.RoleUser, Content: "disk full?"},
		{Role: model.RoleAssistant, Content: "Which host?"},
		{Role: model.RoleUser, Content: "db-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Check the disk.", text)

	messages := srv.lastBody["messages"].([]any)
	require.Len(t, messages, 4)
	roles := make([]string, len(messages))
	for i, m := range messages {
		roles[i] = m.(map[string]any)["role"].(string)
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
}

func TestAnthropicBackend_Analyze(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, anthropicMessage("Findings:\n- oom\nFixes:\n- raise limits"))
	backend := llm.NewAnthropicBackend(anthropicConfig(srv.URL), srv.Client())

	text, err := backend.Analyze(context.Background(), analysis.BuildPrompt([]string{"L7: OutOfMemory exception"}))
	require.NoError(t, err)
	assert.Equal(t, "Findings:\n- oom\nFixes:\n- raise limits", text)

	assert.True(t, strings.HasSuffix(srv.lastPath, "/v1/messages"))
	assert.Equal(t, "claude-3-5-haiku-latest", srv.lastBody["model"])
	assert.InDelta(t, 0.2, srv.lastBody["temperature"], 1e-9)
	assert.NotNil(t, srv.lastBody["system"])
}

func TestAnthropicBackend_Failure(t *testing.T) {
	srv := newFakeServer(t, http.StatusUnauthorized,
		`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	backend := llm.NewAnthropicBackend(anthropicConfig(srv.URL), srv.Client())

	_, err := backend.Analyze(context.Background(), analysis.BuildPrompt(nil))
	require.Error(t, err)

	var backendErr *llm.Error
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "anthropic", backendErr.Backend)
	assert.Equal(t, int32(1), srv.hits.Load())
}
