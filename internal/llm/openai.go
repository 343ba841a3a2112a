package llm

import (
	"context"
	"net/http"

	"log-triage-backend/config"
	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/model"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

const openAIBackendName = "openai"

type openAIBackend struct {
	client openai.Client
	model  string
}

func NewOpenAIBackend(cfg config.LLMConfig, httpClient *http.Client) Backend {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return &openAIBackend{
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
	}
}

func (b *openAIBackend) Name() string {
	return openAIBackendName
}

func (b *openAIBackend) Analyze(ctx context.Context, prompt analysis.Prompt) (string, error) {
	log.Info().Str("model", b.model).Int("flagged", len(prompt.Flagged)).Msg("OpenAI backend: Analyzing flagged lines")

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt.System),
		openai.UserMessage(prompt.User),
	}
	return b.complete(ctx, messages)
}

func (b *openAIBackend) Reply(ctx context.Context, history []model.ChatTurn) (string, error) {
	log.Info().Str("model", b.model).Int("history_len", len(history)).Msg("OpenAI backend: Replying to chat history")

	turns := withSystemPrompt(history)
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case model.RoleSystem:
			messages = append(messages, openai.SystemMessage(turn.Content))
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	return b.complete(ctx, messages)
}

func (b *openAIBackend) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	completion, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(b.model),
		Messages:    messages,
		Temperature: openai.Float(analysisTemperature),
	})
	if err != nil {
		log.Error().Err(err).Str("model", b.model).Msg("OpenAI chat completion request failed")
		return "", &Error{Backend: openAIBackendName, Err: err}
	}

	// An empty completion is a degraded answer, not a failure.
	if len(completion.Choices) == 0 {
		log.Warn().Str("model", b.model).Msg("OpenAI returned no choices")
		return "", nil
	}
	text := completion.Choices[0].Message.Content
	log.Debug().Str("generated_text", text).Msg("OpenAI backend: Extracted generated text")
	return text, nil
}
