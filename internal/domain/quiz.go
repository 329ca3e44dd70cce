package domain

import (
	"context"
	"time"
)

// ArticleContent is the cleaned text of a fetched article.
type ArticleContent struct {
	Title string
	Body  string
}

// QuizQuestion is a single multiple choice question.
type QuizQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation" validate:"required"`
}

// HasOption reports whether answer is one of the question's options.
func (q QuizQuestion) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// QuizOutput is a validated quiz as produced by the generation engine.
type QuizOutput struct {
	Title         string         `json:"title"`
	Summary       string         `json:"summary" validate:"required"`
	Questions     []QuizQuestion `json:"questions" validate:"min=5,max=10,dive"`
	KeyEntities   []string       `json:"key_entities" validate:"min=3,max=5,dive,required"`
	RelatedTopics []string       `json:"related_topics" validate:"min=3,max=5,dive,required"`
}

// QuizRecord is a persisted quiz row. Records are never updated.
type QuizRecord struct {
	ID             int64
	URL            string
	Title          string
	DateGenerated  time.Time
	ScrapedContent string
	FullQuizData   string
}

// QuizSummary is the light projection of a record used by history listings.
type QuizSummary struct {
	ID            int64
	URL           string
	Title         string
	DateGenerated time.Time
}

// NewQuizRecord is the input of QuizRepository.Insert.
type NewQuizRecord struct {
	URL            string
	Title          string
	ScrapedContent string
	FullQuizData   string
}

// ArticleFetcher fetches and cleans an article.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*ArticleContent, error)
}

// QuizGenerator turns article text into a validated quiz.
type QuizGenerator interface {
	Generate(ctx context.Context, title, content string) (*QuizOutput, error)
}

// TextModel is a language model that completes a single prompt.
type TextModel interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// QuizRepository persists quiz records.
type QuizRepository interface {
	Insert(ctx context.Context, rec *NewQuizRecord) (*QuizRecord, error)
	ListAll(ctx context.Context) ([]*QuizSummary, error)
	// GetByID returns nil, nil when no record has the given id.
	GetByID(ctx context.Context, id int64) (*QuizRecord, error)
}

// SessionManager scopes a dedicated database session to fn.
type SessionManager interface {
	WithSession(ctx context.Context, fn func(ctx context.Context) error) error
}
