package config

import (
	"encoding/json"
	"os"
	"time"
)

// Config represents the application configuration
type Config struct {
	LLM          LLMConfig          `json:"llm"`
	SecondaryLLM SecondaryLLMConfig `json:"secondary_llm"`
	WebSearch    WebSearchConfig    `json:"websearch"`
	Decision     DecisionConfig     `json:"decision"`
}

// LLMConfig holds configuration for the main LLM backend
type LLMConfig struct {
	Provider string       `json:"provider"` // "openai" or "ollama"
	OpenAI   OpenAIConfig `json:"openai"`
	Ollama   OllamaConfig `json:"ollama"`
}

// OpenAIConfig holds specific configuration for the OpenAI integration
type OpenAIConfig struct {
	APIKey         string        `json:"api_key"`
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	TimeoutSeconds time.Duration `json:"timeout_seconds"`
}

// OllamaConfig holds specific configuration for Ollama integration
type OllamaConfig struct {
	Endpoint       string        `json:"endpoint"`
	Model          string        `json:"model"`
	MaxTokens      int           `json:"max_tokens"`
	TimeoutSeconds time.Duration `json:"timeout_seconds"`
}

// SecondaryLLMConfig holds configuration for the secondary LLM used to
// rewrite user queries into focused search queries
type SecondaryLLMConfig struct {
	Enabled  bool         `json:"enabled"`
	Provider string       `json:"provider"`
	OpenAI   OpenAIConfig `json:"openai"`
	Ollama   OllamaConfig `json:"ollama"`
}

// WebSearchConfig holds configuration for web search functionality
type WebSearchConfig struct {
	Provider          string  `json:"provider"` // "duckduckgo", "serpapi" or "arxiv"
	SerpAPIKey        string  `json:"serpapi_key"`
	MaxResults        int     `json:"max_results"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	BurstSize         int     `json:"burst_size"`
}

// DecisionConfig holds configuration for the web-search decision pipeline
type DecisionConfig struct {
	TriggerKeywords    []string `json:"trigger_keywords"`
	GreetingPatterns   []string `json:"greeting_patterns"`
	CacheSize          int      `json:"cache_size"`
	HeuristicCacheSize int      `json:"heuristic_cache_size"`
	// ParseFailureDefault is the decision returned when the LLM's answer
	// cannot be parsed as JSON. False biases toward skipping the search.
	ParseFailureDefault bool `json:"parse_failure_default"`
}

// LoadConfig loads configuration from a JSON file, layered over defaults
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			OpenAI: OpenAIConfig{
				Model:          "gpt-4o-mini",
				Temperature:    0.0,
				MaxTokens:      256,
				TimeoutSeconds: 60,
			},
			Ollama: OllamaConfig{
				Endpoint:       "http://localhost:11434",
				Model:          "qwen3:14b",
				MaxTokens:      256,
				TimeoutSeconds: 100,
			},
		},
		SecondaryLLM: SecondaryLLMConfig{
			Enabled:  true,
			Provider: "openai",
			OpenAI: OpenAIConfig{
				Model:          "gpt-4o-mini",
				Temperature:    0.0,
				MaxTokens:      128,
				TimeoutSeconds: 30,
			},
			Ollama: OllamaConfig{
				Endpoint:       "http://localhost:11434",
				Model:          "gemma3:1b",
				MaxTokens:      128,
				TimeoutSeconds: 30,
			},
		},
		WebSearch: WebSearchConfig{
			Provider:          "duckduckgo",
			SerpAPIKey:        "",
			MaxResults:        3,
			RequestsPerSecond: 1,
			BurstSize:         3,
		},
		Decision: DecisionConfig{
			TriggerKeywords: []string{
				"latest", "current", "recent", "news", "update", "today",
				"web search", "look it up", "do research", "find out",
				"find information", "find data", "find statistics",
				"find facts", "find figures", "find numbers", "find details",
			},
			GreetingPatterns: []string{
				`\bhi\b`, `\bhello\b`, `\bhey\b`, `how are you`, `what's up`,
			},
			CacheSize:           512,
			HeuristicCacheSize:  100,
			ParseFailureDefault: false,
		},
	}
}
