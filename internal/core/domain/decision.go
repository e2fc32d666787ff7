package domain

// SearchDecision is the structured verdict returned by the language
// model when asked whether answering a query requires live retrieval.
// It is transient: only the boolean survives, in the session's cache.
type SearchDecision struct {
	WebSearchNeeded bool   `json:"web_search_needed"`
	Reason          string `json:"reason"`
}

// Citation maps a 1-based citation marker to a source title
type Citation struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// RetrievalResult is the outcome of running a query through the full
// decide-search-cite pipeline
type RetrievalResult struct {
	Query           string     `json:"query"`
	SearchPerformed bool       `json:"search_performed"`
	SearchQuery     string     `json:"search_query,omitempty"`
	Entries         []string   `json:"entries,omitempty"`
	Citations       []Citation `json:"citations,omitempty"`
	CitationBlock   string     `json:"citation_block,omitempty"`
	CitationGuide   string     `json:"citation_guide,omitempty"`
}
