package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"

	"go.uber.org/zap"
)

// QuizDetailCache keeps serialized quiz details. Failures are logged and
// reported as misses so the caller falls back to the store.
type QuizDetailCache interface {
	Get(ctx context.Context, quizID int64) (*dto.QuizResponse, bool)
	Put(ctx context.Context, quizID int64, resp *dto.QuizResponse)
}

type quizDetailCache struct {
	store   domain.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewQuizDetailCache(store domain.Cache, ttl time.Duration, m *metrics.Metrics) QuizDetailCache {
	return &quizDetailCache{store: store, ttl: ttl, metrics: m}
}

func (c *quizDetailCache) Get(ctx context.Context, quizID int64) (*dto.QuizResponse, bool) {
	key := cache.QuizDetailKey(quizID)
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			c.metrics.RecordCache("miss")
		} else {
			c.metrics.RecordCache("error")
			logger.Get().Warn("Quiz detail cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var resp dto.QuizResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil || resp.QuizData == nil {
		c.metrics.RecordCache("error")
		logger.Get().Warn("Dropping undecodable quiz detail cache entry", zap.String("key", key), zap.Error(err))
		if delErr := c.store.Delete(ctx, key); delErr != nil {
			logger.Get().Warn("Failed to delete quiz detail cache entry", zap.String("key", key), zap.Error(delErr))
		}
		return nil, false
	}

	c.metrics.RecordCache("hit")
	return &resp, true
}

func (c *quizDetailCache) Put(ctx context.Context, quizID int64, resp *dto.QuizResponse) {
	key := cache.QuizDetailKey(quizID)
	payload, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz detail for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil {
		logger.Get().Warn("Quiz detail cache write failed", zap.String("key", key), zap.Error(err))
	}
}
