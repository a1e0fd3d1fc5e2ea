package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates all service configuration.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Store  StoreConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Store:  StoreConfig{DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL"))},
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StoreConfig selects the session store backend. An empty DatabaseURL keeps
// sessions in memory.
type StoreConfig struct {
	DatabaseURL string
}

// AIConfig describes the OpenAI-compatible completion gateway that hosts all
// selectable models.
type AIConfig struct {
	BaseURL     string
	APIKey      string
	EvalModel   string
	Temperature *float32
	TopP        *float32
	MaxTokens   *int
}

// Enabled reports whether the gateway credentials are configured.
func (c AIConfig) Enabled() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

// NewChatModel creates a streaming chat model bound to one backend model id.
func (c AIConfig) NewChatModel(ctx context.Context, modelID string) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("CHATAI_API_URL and CHATAI_API_KEY must be set")
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       modelID,
		Temperature: c.Temperature,
		TopP:        c.TopP,
		MaxTokens:   c.MaxTokens,
	})
}

// NewEvalModel creates the fixed rating model. Scoring runs at temperature
// zero so repeated evaluations of the same transcript stay comparable.
func (c AIConfig) NewEvalModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("CHATAI_API_URL and CHATAI_API_KEY must be set")
	}

	zero := float32(0)
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       c.EvalModel,
		Temperature: &zero,
	})
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloat32Env("CHATAI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}
	if temperature == nil {
		defaultTemp := float32(0.7)
		temperature = &defaultTemp
	}

	topP, err := parseOptionalFloat32Env("CHATAI_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}
	if topP == nil {
		defaultTopP := float32(0.8)
		topP = &defaultTopP
	}

	maxTokens, err := parseOptionalIntEnv("CHATAI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		BaseURL:     strings.TrimSpace(os.Getenv("CHATAI_API_URL")),
		APIKey:      strings.TrimSpace(os.Getenv("CHATAI_API_KEY")),
		EvalModel:   getEnvOrDefault("EVAL_MODEL", "llama-3.3-70b-instruct"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
