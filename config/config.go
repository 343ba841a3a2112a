package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	App     AppConfig
	Server  ServerConfig
	LLM     LLMConfig
	Triage  TriageConfig
	Session SessionConfig
	Kafka   KafkaConfig
	// Base URL of the chat gateway as seen by the UI. Not used by the triage core.
	ChatAPIURL string
}

type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port           string
	CORSOrigins    []string
	MaxUploadBytes int64
}

type LLMConfig struct {
	Provider         string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string
	Timeout          time.Duration
	FallbackOnError  bool
}

type TriageConfig struct {
	MaxFlagged int
}

type SessionConfig struct {
	IdleTTL       time.Duration
	SweepSchedule string
}

type KafkaConfig struct {
	Brokers       []string
	AnalysisTopic string
	BatchTimeout  time.Duration
}

// Credential returns the API key of the configured provider, empty when none is set.
func (c LLMConfig) Credential() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

func (c LLMConfig) HasCredential() bool {
	return strings.TrimSpace(c.Credential()) != ""
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0 && c.AnalysisTopic != ""
}

func NewConfig() (*Config, error) {
	v := viper.New()

	// Configure Viper to read .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Enable automatic environment variable loading
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "Log Triage Backend")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20) // 10MB
	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("LLM_FALLBACK_ON_ERROR", false)
	v.SetDefault("TRIAGE_MAX_FLAGGED", 200)
	v.SetDefault("SESSION_IDLE_TTL", "24h")
	v.SetDefault("SESSION_SWEEP_SCHEDULE", "0 */5 * * * *") // Every 5 minutes
	v.SetDefault("KAFKA_ANALYSIS_TOPIC", "log_analyses")
	v.SetDefault("KAFKA_BATCH_TIMEOUT", "1s")
	v.SetDefault("CHAT_API_URL", "http://localhost:8000")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		log.Debug().Err(err).Msg("No .env config file read, using environment only")
	}

	var config Config

	// --- App ---
	config.App.Name = v.GetString("APP_NAME")
	config.App.Environment = v.GetString("APP_ENV")
	config.App.LogLevel = v.GetString("LOG_LEVEL")

	// --- Server ---
	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	config.Server.MaxUploadBytes = v.GetInt64("UPLOAD_MAX_BYTES")

	// --- LLM ---
	config.LLM.Provider = strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER")))
	if config.LLM.Provider != ProviderOpenAI && config.LLM.Provider != ProviderAnthropic {
		log.Warn().Str("value", config.LLM.Provider).Msg("Invalid LLM_PROVIDER, defaulting to openai")
		config.LLM.Provider = ProviderOpenAI
	}
	config.LLM.OpenAIAPIKey = v.GetString("OPENAI_API_KEY")
	config.LLM.OpenAIModel = v.GetString("OPENAI_MODEL")
	config.LLM.OpenAIBaseURL = v.GetString("OPENAI_BASE_URL")
	config.LLM.AnthropicAPIKey = v.GetString("ANTHROPIC_API_KEY")
	config.LLM.AnthropicModel = v.GetString("ANTHROPIC_MODEL")
	config.LLM.AnthropicBaseURL = v.GetString("ANTHROPIC_BASE_URL")
	config.LLM.Timeout = v.GetDuration("LLM_TIMEOUT")
	config.LLM.FallbackOnError = v.GetBool("LLM_FALLBACK_ON_ERROR")

	// --- Triage ---
	config.Triage.MaxFlagged = v.GetInt("TRIAGE_MAX_FLAGGED")
	if config.Triage.MaxFlagged <= 0 {
		log.Warn().Int("value", config.Triage.MaxFlagged).Msg("Invalid TRIAGE_MAX_FLAGGED, defaulting to 200")
		config.Triage.MaxFlagged = 200
	}

	// --- Sessions ---
	config.Session.IdleTTL = v.GetDuration("SESSION_IDLE_TTL")
	config.Session.SweepSchedule = v.GetString("SESSION_SWEEP_SCHEDULE")

	// --- Kafka ---
	config.Kafka.Brokers = splitList(v.GetString("KAFKA_BROKERS"))
	config.Kafka.AnalysisTopic = v.GetString("KAFKA_ANALYSIS_TOPIC")
	config.Kafka.BatchTimeout = v.GetDuration("KAFKA_BATCH_TIMEOUT")

	config.ChatAPIURL = v.GetString("CHAT_API_URL")

	if level, err := zerolog.ParseLevel(config.App.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("value", config.App.LogLevel).Msg("Invalid LOG_LEVEL, keeping current level")
	}

	log.Info().
		Str("app", config.App.Name).
		Str("env", config.App.Environment).
		Str("port", config.Server.Port).
		Str("llm_provider", config.LLM.Provider).
		Bool("llm_credential", config.LLM.HasCredential()).
		Int("max_flagged", config.Triage.MaxFlagged).
		Bool("kafka_events", config.Kafka.Enabled()).
		Msg("Config loaded")
	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
