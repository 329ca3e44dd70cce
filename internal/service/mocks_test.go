package service

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockArticleFetcher ---
type MockArticleFetcher struct {
	mock.Mock
}

func (m *MockArticleFetcher) Fetch(ctx context.Context, url string) (*domain.ArticleContent, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArticleContent), args.Error(1)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) Generate(ctx context.Context, title, content string) (*domain.QuizOutput, error) {
	args := m.Called(ctx, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizOutput), args.Error(1)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Insert(ctx context.Context, rec *domain.NewQuizRecord) (*domain.QuizRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRepository) ListAll(ctx context.Context) ([]*domain.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// countingSessions runs fn inline and counts the sessions opened.
type countingSessions struct {
	opened int
}

func (s *countingSessions) WithSession(ctx context.Context, fn func(ctx context.Context) error) error {
	s.opened++
	return fn(ctx)
}
