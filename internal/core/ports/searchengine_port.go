package ports

import (
	"context"
)

// SearchEnginePort defines the interface for the search-engine
// capability. Run returns one raw text blob with individual results
// separated by blank lines; splitting the blob into entries is the
// caller's job.
type SearchEnginePort interface {
	Run(ctx context.Context, query string) (string, error)
}
