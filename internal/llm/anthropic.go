package llm

import (
	"context"
	"net/http"

	"log-triage-backend/config"
	"log-triage-backend/internal/analysis"
	"log-triage-backend/internal/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

const (
	anthropicBackendName = "anthropic"
	anthropicMaxTokens   = 1024
)

type anthropicBackend struct {
	client anthropic.Client
	model  string
}

func NewAnthropicBackend(cfg config.LLMConfig, httpClient *http.Client) Backend {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
	}
	return &anthropicBackend{
		client: anthropic.NewClient(opts...),
		model:  cfg.AnthropicModel,
	}
}

func (b *anthropicBackend) Name() string {
	return anthropicBackendName
}

func (b *anthropicBackend) Analyze(ctx context.Context, prompt analysis.Prompt) (string, error) {
	log.Info().Str("model", b.model).Int("flagged", len(prompt.Flagged)).Msg("Anthropic backend: Analyzing flagged lines")

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
	}
	return b.complete(ctx, prompt.System, messages)
}

// Reply folds system turns into the system parameter; the messages API has no system role.
func (b *anthropicBackend) Reply(ctx context.Context, history []model.ChatTurn) (string, error) {
	log.Info().Str("model", b.model).Int("history_len", len(history)).Msg("Anthropic backend: Replying to chat history")

	system := ""
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, turn := range withSystemPrompt(history) {
		switch turn.Role {
		case model.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += turn.Content
		case model.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
		}
	}
	return b.complete(ctx, system, messages)
}

func (b *anthropicBackend) complete(ctx context.Context, system string, messages []anthropic.MessageParam) (string, error) {
	if len(messages) == 0 {
		return "", newError(anthropicBackendName, "no user or assistant messages to send")
	}

	message, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(b.model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(analysisTemperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: messages,
	})
	if err != nil {
		log.Error().Err(err).Str("model", b.model).Msg("Anthropic messages request failed")
		return "", &Error{Backend: anthropicBackendName, Err: err}
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Debug().Str("generated_text", block.Text).Msg("Anthropic backend: Extracted generated text")
			return block.Text, nil
		}
	}
	log.Warn().Str("model", b.model).Msg("Anthropic returned no text content")
	return "", nil
}
