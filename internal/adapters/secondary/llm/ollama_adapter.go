package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/logger"
)

// emptyThinkTags matches the empty reasoning tags some models emit
var emptyThinkTags = regexp.MustCompile(`<think>\s*</think>`)

// OllamaAdapter implements the LLMPort interface for the Ollama LLM
// provider
type OllamaAdapter struct {
	client *ollama.LLM
	config *config.OllamaConfig
	logger logger.Logger
}

// NewOllamaAdapter creates a new OllamaAdapter
func NewOllamaAdapter(cfg *config.OllamaConfig, log logger.Logger) (*OllamaAdapter, error) {
	log.Info("Initializing Ollama adapter", "endpoint", cfg.Endpoint, "model", cfg.Model)

	client, err := ollama.New(
		ollama.WithServerURL(cfg.Endpoint),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		log.Error("Failed to initialize Ollama client", "error", err)
		return nil, err
	}

	return &OllamaAdapter{
		client: client,
		config: cfg,
		logger: log,
	}, nil
}

// GenerateResponse sends the system and human messages to the model and
// returns the raw response text
func (a *OllamaAdapter) GenerateResponse(ctx context.Context, system, human string) (string, error) {
	a.logger.Debug("Generating response with Ollama", "model", a.config.Model)

	timeoutCtx, cancel := context.WithTimeout(ctx, callTimeout(a.config.TimeoutSeconds))
	defer cancel()

	messages := make([]llms.MessageContent, 0, 2)
	if system != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, human))

	opts := []llms.CallOption{
		llms.WithTemperature(0.0),
	}
	if a.config.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(a.config.MaxTokens))
	}

	resp, err := a.client.GenerateContent(timeoutCtx, messages, opts...)
	if err != nil {
		a.logger.Error("Ollama generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ollama returned no choices")
	}

	result := resp.Choices[0].Content
	if strings.HasPrefix(a.config.Model, "qwen3") {
		result = cleanThinkingTags(result)
	}

	return result, nil
}

// GetModelInfo returns information about the current LLM model
func (a *OllamaAdapter) GetModelInfo(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{
		"name":      a.config.Model,
		"provider":  "ollama",
		"endpoint":  a.config.Endpoint,
		"maxTokens": a.config.MaxTokens,
	}, nil
}

// cleanThinkingTags removes empty thinking tags from the response
func cleanThinkingTags(input string) string {
	return strings.TrimSpace(emptyThinkTags.ReplaceAllString(input, ""))
}
