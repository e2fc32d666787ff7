package websearch

import (
	"context"
	"fmt"
	"strings"

	serpapi "github.com/serpapi/google-search-results-golang"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/logger"
)

// SerpAPIAdapter implements the SearchEnginePort interface using
// SerpAPI's Google engine
type SerpAPIAdapter struct {
	config *config.WebSearchConfig
	logger logger.Logger
}

// NewSerpAPIAdapter creates a new SerpAPIAdapter
func NewSerpAPIAdapter(cfg *config.WebSearchConfig, log logger.Logger) *SerpAPIAdapter {
	return &SerpAPIAdapter{
		config: cfg,
		logger: log,
	}
}

// Run performs a Google search through SerpAPI and formats the organic
// results as blank-line-separated text blocks of title, link and
// snippet
func (a *SerpAPIAdapter) Run(ctx context.Context, query string) (string, error) {
	a.logger.Info("Performing SerpAPI search", "query", query)

	if a.config.SerpAPIKey == "" {
		return "", fmt.Errorf("SerpAPI key is not configured")
	}

	parameters := map[string]string{
		"q":             query,
		"engine":        "google",
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
	}

	client := serpapi.NewGoogleSearch(parameters, a.config.SerpAPIKey)

	data, err := client.GetJSON()
	if err != nil {
		a.logger.Error("SerpAPI search failed", "error", err)
		return "", fmt.Errorf("serpapi search failed: %w", err)
	}

	var blocks []string
	if organicResults, ok := data["organic_results"].([]interface{}); ok {
		for _, result := range organicResults {
			resultMap, ok := result.(map[string]interface{})
			if !ok {
				continue
			}

			var lines []string
			if title := getStringValue(resultMap, "title"); title != "" {
				lines = append(lines, title)
			}
			if link := getStringValue(resultMap, "link"); link != "" {
				lines = append(lines, link)
			}
			if snippet := getStringValue(resultMap, "snippet"); snippet != "" {
				lines = append(lines, snippet)
			}
			if len(lines) > 0 {
				blocks = append(blocks, strings.Join(lines, "\n"))
			}
		}
	}

	a.logger.Info("SerpAPI search completed", "results_count", len(blocks))
	return strings.Join(blocks, "\n\n"), nil
}

// getStringValue safely extracts a string value from a map
func getStringValue(data map[string]interface{}, key string) string {
	if value, ok := data[key]; ok {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	return ""
}
