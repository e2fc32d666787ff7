package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/logger"
)

// OpenAIAdapter implements the LLMPort interface for the OpenAI API
type OpenAIAdapter struct {
	client *openai.LLM
	config *config.OpenAIConfig
	logger logger.Logger
}

// NewOpenAIAdapter creates a new OpenAIAdapter. The API key falls back
// to the OPENAI_API_KEY environment variable when unset in config.
func NewOpenAIAdapter(cfg *config.OpenAIConfig, log logger.Logger) (*OpenAIAdapter, error) {
	log.Info("Initializing OpenAI adapter", "model", cfg.Model)

	opts := []openai.Option{
		openai.WithModel(cfg.Model),
	}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}

	client, err := openai.New(opts...)
	if err != nil {
		log.Error("Failed to initialize OpenAI client", "error", err)
		return nil, err
	}

	return &OpenAIAdapter{
		client: client,
		config: cfg,
		logger: log,
	}, nil
}

// GenerateResponse sends the system and human messages to the model and
// returns the raw response text
func (a *OpenAIAdapter) GenerateResponse(ctx context.Context, system, human string) (string, error) {
	a.logger.Debug("Generating response with OpenAI", "model", a.config.Model)

	timeoutCtx, cancel := context.WithTimeout(ctx, callTimeout(a.config.TimeoutSeconds))
	defer cancel()

	messages := make([]llms.MessageContent, 0, 2)
	if system != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, human))

	opts := []llms.CallOption{
		llms.WithTemperature(a.config.Temperature),
	}
	if a.config.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(a.config.MaxTokens))
	}

	resp, err := a.client.GenerateContent(timeoutCtx, messages, opts...)
	if err != nil {
		a.logger.Error("OpenAI generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Content, nil
}

// GetModelInfo returns information about the current LLM model
func (a *OpenAIAdapter) GetModelInfo(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"name":      a.config.Model,
		"provider":  "openai",
		"maxTokens": a.config.MaxTokens,
	}, nil
}

// callTimeout converts the configured seconds into a duration with a
// sane floor
func callTimeout(seconds time.Duration) time.Duration {
	if seconds <= 0 {
		return 60 * time.Second
	}
	return seconds * time.Second
}
