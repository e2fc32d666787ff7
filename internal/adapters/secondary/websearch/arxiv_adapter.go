package websearch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/baycast/searchgate/internal/logger"
)

const arxivBaseURL = "http://export.arxiv.org/api/query"

// atomFeed models the slice of the arXiv Atom response we consume
type atomFeed struct {
	Entries []struct {
		ID        string `xml:"id"`
		Title     string `xml:"title"`
		Summary   string `xml:"summary"`
		Published string `xml:"published"`
	} `xml:"entry"`
}

// ArxivAdapter implements the SearchEnginePort interface against the
// arXiv export API, for queries that call for scholarly sources
type ArxivAdapter struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
	logger     logger.Logger
}

// NewArxivAdapter creates a new ArxivAdapter
func NewArxivAdapter(maxResults int, log logger.Logger) *ArxivAdapter {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &ArxivAdapter{
		baseURL:    arxivBaseURL,
		maxResults: maxResults,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: log,
	}
}

// Run searches arXiv and formats each paper as a text block of title,
// link and summary, blocks separated by blank lines
func (a *ArxivAdapter) Run(ctx context.Context, query string) (string, error) {
	a.logger.Info("Performing arXiv search", "query", query)

	searchURL, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid arXiv base URL: %w", err)
	}

	q := searchURL.Query()
	q.Set("search_query", "all:"+query)
	q.Set("start", "0")
	q.Set("max_results", strconv.Itoa(a.maxResults))
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create arXiv request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("arXiv request failed", "error", err)
		return "", fmt.Errorf("arxiv request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("arXiv returned error status", "status", resp.Status)
		return "", fmt.Errorf("arxiv returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read arXiv response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return "", fmt.Errorf("failed to parse arXiv response: %w", err)
	}

	blocks := make([]string, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		lines := []string{
			collapseWhitespace(entry.Title),
			entry.ID,
			collapseWhitespace(entry.Summary),
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	a.logger.Info("arXiv search completed", "results_count", len(blocks))
	return strings.Join(blocks, "\n\n"), nil
}

// collapseWhitespace normalizes the newline-wrapped text arXiv returns
// into a single line
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
