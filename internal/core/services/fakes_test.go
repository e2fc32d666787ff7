package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/baycast/searchgate/internal/logger"
)

// fakeLLM is a canned-response LLMPort for tests
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) GenerateResponse(ctx context.Context, system, human string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) GetModelInfo(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"name": "fake", "provider": "fake"}, nil
}

// fakeEngine is a canned-blob SearchEnginePort for tests
type fakeEngine struct {
	raw   string
	err   error
	calls int
}

func (f *fakeEngine) Run(ctx context.Context, query string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.raw, nil
}

func testLogger() logger.Logger {
	return logger.New(slog.LevelError, io.Discard)
}
