package signal

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ppiankov/veracity/internal/llm"
)

type mockSimilarity struct{ mock.Mock }

func (m *mockSimilarity) Name() string { return "mock" }

func (m *mockSimilarity) Compare(ctx context.Context, query, text string) (float64, error) {
	args := m.Called(ctx, query, text)
	return args.Get(0).(float64), args.Error(1)
}

type mockClassifier struct{ mock.Mock }

func (m *mockClassifier) Name() string { return "mock" }

func (m *mockClassifier) Classify(ctx context.Context, text string) (llm.Sentiment, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(llm.Sentiment), args.Error(1)
}

type mockFactChecker struct{ mock.Mock }

func (m *mockFactChecker) Lookup(ctx context.Context, excerpt string) (bool, error) {
	args := m.Called(ctx, excerpt)
	return args.Bool(0), args.Error(1)
}

type mockCitationCounter struct{ mock.Mock }

func (m *mockCitationCounter) Count(ctx context.Context, rawURL string) (int, error) {
	args := m.Called(ctx, rawURL)
	return args.Int(0), args.Error(1)
}
