package ports

import (
	"context"
)

// LLMPort defines the interface for the language-model capability
type LLMPort interface {
	// GenerateResponse sends a system instruction and a human message to
	// the model and returns the raw response text. An empty system string
	// means no system instruction is sent.
	GenerateResponse(ctx context.Context, system, human string) (string, error)

	// GetModelInfo returns information about the current LLM model
	GetModelInfo(ctx context.Context) (map[string]interface{}, error)
}
