package mocks

import (
	"context"

	"docanalyze/internal/llm"

	"github.com/stretchr/testify/mock"
)

type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (llm.Analysis, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(llm.Analysis), args.Error(1)
}
