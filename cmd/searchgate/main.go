package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/adapters/secondary/llm"
	"github.com/baycast/searchgate/internal/adapters/secondary/repository"
	"github.com/baycast/searchgate/internal/adapters/secondary/websearch"
	"github.com/baycast/searchgate/internal/core/domain"
	"github.com/baycast/searchgate/internal/core/ports"
	"github.com/baycast/searchgate/internal/core/services"
	"github.com/baycast/searchgate/internal/logger"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	query := flag.String("query", "", "Query to run through the decision and retrieval pipeline")
	provider := flag.String("provider", "", "Override the web search provider (duckduckgo, serpapi, arxiv)")
	results := flag.Int("results", 0, "Override the maximum number of search results")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *debugMode {
		logLevel = slog.LevelDebug
	}
	log := logger.New(logLevel, os.Stderr)
	log.Info("Starting searchgate")

	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: searchgate -query \"...\" [-config path] [-provider name] [-results n]")
		os.Exit(2)
	}

	// Load configuration
	var cfg *config.Config
	var err error

	if *configPath != "" {
		log.Info("Loading configuration", "path", *configPath)
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
	} else {
		log.Info("Using default configuration")
		cfg = config.DefaultConfig()
	}
	if *provider != "" {
		cfg.WebSearch.Provider = *provider
	}
	if *results > 0 {
		cfg.WebSearch.MaxResults = *results
	}

	// Initialize adapters
	log.Info("Initializing adapters")

	mainLLM, err := newLLMAdapter(cfg.LLM.Provider, &cfg.LLM.OpenAI, &cfg.LLM.Ollama, log)
	if err != nil {
		log.Error("Failed to initialize main LLM adapter", "error", err)
		os.Exit(1)
	}

	// Secondary LLM rewrites user queries into focused search queries
	var rewriterLLM ports.LLMPort
	if cfg.SecondaryLLM.Enabled {
		rewriterLLM, err = newLLMAdapter(cfg.SecondaryLLM.Provider, &cfg.SecondaryLLM.OpenAI, &cfg.SecondaryLLM.Ollama, log)
		if err != nil {
			log.Error("Failed to initialize secondary LLM adapter", "error", err)
			os.Exit(1)
		}
	}

	log.Info("Initializing web search adapter", "provider", cfg.WebSearch.Provider)
	var searchEngine ports.SearchEnginePort
	switch cfg.WebSearch.Provider {
	case "serpapi":
		searchEngine = websearch.NewSerpAPIAdapter(&cfg.WebSearch, log)
	case "arxiv":
		searchEngine = websearch.NewArxivAdapter(cfg.WebSearch.MaxResults, log)
	case "duckduckgo", "":
		searchEngine = websearch.NewDuckDuckGoAdapter(log)
	default:
		log.Warn("Unknown web search provider, falling back to DuckDuckGo", "provider", cfg.WebSearch.Provider)
		searchEngine = websearch.NewDuckDuckGoAdapter(log)
	}

	// Build the service pipeline
	heuristic, err := services.NewKeywordHeuristic(&cfg.Decision, log)
	if err != nil {
		log.Error("Failed to build keyword heuristic", "error", err)
		os.Exit(1)
	}
	decisions := services.NewDecisionService(mainLLM, heuristic, &cfg.Decision, log)
	executor := services.NewSearchExecutor(searchEngine, rewriterLLM, &cfg.WebSearch, log)
	advisor := services.NewAdvisorService(decisions, executor, &cfg.WebSearch, log)

	// Each session owns its own decision cache
	sessions := repository.NewInMemorySessionRepository(log)
	session, err := domain.NewSession(cfg.Decision.CacheSize)
	if err != nil {
		log.Error("Failed to create session", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sessions.SaveSession(ctx, session); err != nil {
		log.Error("Failed to save session", "error", err)
		os.Exit(1)
	}
	log.Info("Session initialized", "session_id", session.ID)

	if info, err := mainLLM.GetModelInfo(ctx); err == nil {
		log.Debug("Using LLM", "model", info["name"], "provider", info["provider"])
	}

	result, err := advisor.Advise(ctx, session, *query)
	if err != nil {
		log.Error("Advise failed", "error", err)
		os.Exit(1)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error("Failed to encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(output))

	if result.CitationGuide != "" {
		fmt.Println(result.CitationGuide)
	}
}

// newLLMAdapter builds an LLM adapter for the configured provider
func newLLMAdapter(provider string, openAICfg *config.OpenAIConfig, ollamaCfg *config.OllamaConfig, log logger.Logger) (ports.LLMPort, error) {
	switch provider {
	case "ollama":
		return llm.NewOllamaAdapter(ollamaCfg, log)
	case "openai", "":
		return llm.NewOpenAIAdapter(openAICfg, log)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}
