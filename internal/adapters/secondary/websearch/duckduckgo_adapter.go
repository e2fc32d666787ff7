package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/baycast/searchgate/internal/logger"
)

const duckDuckGoBaseURL = "https://api.duckduckgo.com/"

// duckDuckGoResponse is the slice of the Instant Answer API response we
// care about
type duckDuckGoResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
		Topics   []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"Topics"`
	} `json:"RelatedTopics"`
}

// DuckDuckGoAdapter implements the SearchEnginePort interface using the
// DuckDuckGo Instant Answer API
type DuckDuckGoAdapter struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewDuckDuckGoAdapter creates a new DuckDuckGoAdapter
func NewDuckDuckGoAdapter(log logger.Logger) *DuckDuckGoAdapter {
	return &DuckDuckGoAdapter{
		baseURL: duckDuckGoBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log,
	}
}

// Run performs a DuckDuckGo search and formats the abstract and related
// topics as blank-line-separated text blocks
func (a *DuckDuckGoAdapter) Run(ctx context.Context, query string) (string, error) {
	a.logger.Info("Performing DuckDuckGo search", "query", query)

	searchURL, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DuckDuckGo base URL: %w", err)
	}

	q := searchURL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create DuckDuckGo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("DuckDuckGo request failed", "error", err)
		return "", fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("DuckDuckGo returned error status", "status", resp.Status)
		return "", fmt.Errorf("duckduckgo returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read DuckDuckGo response: %w", err)
	}

	var ddg duckDuckGoResponse
	if err := json.Unmarshal(body, &ddg); err != nil {
		return "", fmt.Errorf("failed to parse DuckDuckGo response: %w", err)
	}

	blocks := formatBlocks(&ddg)
	a.logger.Info("DuckDuckGo search completed", "results_count", len(blocks))
	return strings.Join(blocks, "\n\n"), nil
}

// formatBlocks turns the instant answer payload into one text block per
// result
func formatBlocks(ddg *duckDuckGoResponse) []string {
	var blocks []string

	if ddg.AbstractText != "" {
		var lines []string
		if ddg.Heading != "" {
			lines = append(lines, ddg.Heading)
		}
		if ddg.AbstractURL != "" {
			lines = append(lines, ddg.AbstractURL)
		}
		lines = append(lines, ddg.AbstractText)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	for _, topic := range ddg.RelatedTopics {
		if topic.Text != "" {
			blocks = append(blocks, topicBlock(topic.Text, topic.FirstURL))
			continue
		}
		// Disambiguation groups nest one level deeper
		for _, sub := range topic.Topics {
			if sub.Text != "" {
				blocks = append(blocks, topicBlock(sub.Text, sub.FirstURL))
			}
		}
	}

	return blocks
}

func topicBlock(text, firstURL string) string {
	if firstURL == "" {
		return text
	}
	return text + "\n" + firstURL
}
