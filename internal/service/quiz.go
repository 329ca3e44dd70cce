package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"
	"wiki-quiz/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var errEmptyQuizData = errors.New("quiz data is null")

// QuizService orchestrates quiz generation and retrieval.
type QuizService interface {
	GenerateQuiz(ctx context.Context, url string) (*dto.QuizResponse, error)
	GetHistory(ctx context.Context) ([]dto.QuizHistoryItem, error)
	GetQuizDetail(ctx context.Context, quizID int64) (*dto.QuizResponse, error)
}

type quizService struct {
	fetcher     domain.ArticleFetcher
	generator   domain.QuizGenerator
	repo        domain.QuizRepository
	sessions    domain.SessionManager
	detailCache QuizDetailCache
	metrics     *metrics.Metrics
	detailGroup singleflight.Group
}

// NewQuizService wires the pipeline. detailCache and m may be nil.
func NewQuizService(
	fetcher domain.ArticleFetcher,
	generator domain.QuizGenerator,
	repo domain.QuizRepository,
	sessions domain.SessionManager,
	detailCache QuizDetailCache,
	m *metrics.Metrics,
) QuizService {
	return &quizService{
		fetcher:     fetcher,
		generator:   generator,
		repo:        repo,
		sessions:    sessions,
		detailCache: detailCache,
		metrics:     m,
	}
}

// GenerateQuiz runs validate, fetch, generate and persist. A record is
// written only when every earlier stage succeeded.
func (s *quizService) GenerateQuiz(ctx context.Context, url string) (*dto.QuizResponse, error) {
	log := logger.Get().With(zap.String("url", url))

	if !validation.IsWikipediaURL(url) {
		s.metrics.RecordOutcome(metrics.OutcomeInvalidURL)
		return nil, domain.NewInvalidURLError()
	}

	start := time.Now()
	article, err := s.fetcher.Fetch(ctx, url)
	s.metrics.ObserveStage(metrics.StageFetch, start)
	if err != nil {
		log.Error("Failed to fetch article", zap.Error(err))
		s.metrics.RecordOutcome(metrics.OutcomeFetchFailed)
		return nil, domain.NewUpstreamFetchError(err)
	}

	start = time.Now()
	quiz, err := s.generator.Generate(ctx, article.Title, article.Body)
	s.metrics.ObserveStage(metrics.StageGenerate, start)
	if err != nil {
		log.Error("Failed to generate quiz", zap.String("title", article.Title), zap.Error(err))
		s.metrics.RecordOutcome(metrics.OutcomeGenerateFailed)
		return nil, domain.NewUpstreamGenerationError(err)
	}

	data, err := json.Marshal(quiz)
	if err != nil {
		s.metrics.RecordOutcome(metrics.OutcomeSerializeFailed)
		return nil, domain.NewInternalError("Failed to serialize quiz", err)
	}

	title := quiz.Title
	if strings.TrimSpace(title) == "" {
		title = article.Title
	}

	start = time.Now()
	var rec *domain.QuizRecord
	err = s.sessions.WithSession(ctx, func(ctx context.Context) error {
		var insertErr error
		rec, insertErr = s.repo.Insert(ctx, &domain.NewQuizRecord{
			URL:            url,
			Title:          title,
			ScrapedContent: article.Body,
			FullQuizData:   string(data),
		})
		return insertErr
	})
	s.metrics.ObserveStage(metrics.StagePersist, start)
	if err != nil {
		log.Error("Failed to save quiz", zap.Error(err))
		s.metrics.RecordOutcome(metrics.OutcomePersistFailed)
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	s.metrics.RecordOutcome(metrics.OutcomeSuccess)
	log.Info("Quiz stored", zap.Int64("quiz_id", rec.ID), zap.Int("questions", len(quiz.Questions)))
	return toQuizResponse(rec, quiz), nil
}

// GetHistory lists every stored quiz, most recent first.
func (s *quizService) GetHistory(ctx context.Context) ([]dto.QuizHistoryItem, error) {
	var summaries []*domain.QuizSummary
	err := s.sessions.WithSession(ctx, func(ctx context.Context) error {
		var listErr error
		summaries, listErr = s.repo.ListAll(ctx)
		return listErr
	})
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch quiz history", err)
	}

	items := make([]dto.QuizHistoryItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.QuizHistoryItem{
			ID:            summary.ID,
			URL:           summary.URL,
			Title:         summary.Title,
			DateGenerated: summary.DateGenerated,
		})
	}
	return items, nil
}

// GetQuizDetail returns a stored quiz. Records never change, so a cached copy
// is served when one exists.
func (s *quizService) GetQuizDetail(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
	if s.detailCache != nil {
		if cached, ok := s.detailCache.Get(ctx, quizID); ok {
			return cached, nil
		}
	}

	res, err, _ := s.detailGroup.Do(strconv.FormatInt(quizID, 10), func() (interface{}, error) {
		// Shared by every caller waiting on this id, so one caller's
		// cancellation must not fail the others.
		loadCtx := context.WithoutCancel(ctx)
		resp, loadErr := s.loadQuizDetail(loadCtx, quizID)
		if loadErr != nil {
			return nil, loadErr
		}
		if s.detailCache != nil {
			s.detailCache.Put(loadCtx, quizID, resp)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*dto.QuizResponse), nil
}

func (s *quizService) loadQuizDetail(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
	var rec *domain.QuizRecord
	err := s.sessions.WithSession(ctx, func(ctx context.Context) error {
		var getErr error
		rec, getErr = s.repo.GetByID(ctx, quizID)
		return getErr
	})
	if err != nil {
		logger.Get().Error("Failed to load quiz", zap.Int64("quiz_id", quizID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch quiz", err)
	}
	if rec == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	quiz, err := decodeQuizData(rec.FullQuizData)
	if err != nil {
		logger.Get().Error("Stored quiz data is corrupt", zap.Int64("quiz_id", quizID), zap.Error(err))
		return nil, domain.NewCorruptRecordError(quizID, err)
	}
	return toQuizResponse(rec, quiz), nil
}

func decodeQuizData(data string) (*domain.QuizOutput, error) {
	var quiz *domain.QuizOutput
	if err := json.Unmarshal([]byte(data), &quiz); err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, errEmptyQuizData
	}
	return quiz, nil
}

func toQuizResponse(rec *domain.QuizRecord, quiz *domain.QuizOutput) *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:            rec.ID,
		URL:           rec.URL,
		Title:         rec.Title,
		DateGenerated: rec.DateGenerated,
		QuizData:      quiz,
	}
}
