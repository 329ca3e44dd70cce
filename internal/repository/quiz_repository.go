package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// maxTitleRunes matches the width of quizzes.title.
const maxTitleRunes = 255

// Column aliases keep Oracle's upper-cased names mappable by sqlx.
const (
	selectQuizSummaries = `SELECT
		id "id",
		url "url",
		title "title",
		date_generated "date_generated"
	FROM quizzes
	ORDER BY date_generated DESC, id DESC`

	selectQuizByID = `SELECT
		id "id",
		url "url",
		title "title",
		date_generated "date_generated",
		scraped_content "scraped_content",
		full_quiz_data "full_quiz_data"
	FROM quizzes
	WHERE id = ?`

	insertQuiz = `INSERT INTO quizzes (url, title, date_generated, scraped_content, full_quiz_data)
	VALUES (?, ?, ?, ?, ?)`
)

// QuizDatabaseAdapter implements domain.QuizRepository on sqlx.
type QuizDatabaseAdapter struct {
	db       DBTX
	driver   string
	bindType int
	now      func() time.Time
}

// NewQuizDatabaseAdapter creates a store for the given dialect, one of
// config.DriverPostgres, config.DriverMySQL or config.DriverOracle.
func NewQuizDatabaseAdapter(db DBTX, driver string) (*QuizDatabaseAdapter, error) {
	var bindType int
	switch driver {
	case config.DriverPostgres:
		bindType = sqlx.DOLLAR
	case config.DriverMySQL:
		bindType = sqlx.QUESTION
	case config.DriverOracle:
		bindType = sqlx.NAMED
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}
	return &QuizDatabaseAdapter{
		db:       db,
		driver:   driver,
		bindType: bindType,
		now:      time.Now,
	}, nil
}

func (a *QuizDatabaseAdapter) rebind(query string) string {
	return sqlx.Rebind(a.bindType, query)
}

// Insert stores a new record and returns it with its assigned id and
// timestamp.
func (a *QuizDatabaseAdapter) Insert(ctx context.Context, rec *domain.NewQuizRecord) (*domain.QuizRecord, error) {
	if rec == nil {
		return nil, errors.New("cannot insert nil quiz record")
	}

	model := models.Quiz{
		URL:            rec.URL,
		Title:          clip(rec.Title, maxTitleRunes),
		DateGenerated:  a.now().UTC().Truncate(time.Microsecond),
		ScrapedContent: sql.NullString{String: rec.ScrapedContent, Valid: rec.ScrapedContent != ""},
		FullQuizData:   rec.FullQuizData,
	}
	args := []any{model.URL, model.Title, model.DateGenerated, model.ScrapedContent, model.FullQuizData}

	exec := GetExecutor(ctx, a.db)
	var err error
	switch a.driver {
	case config.DriverPostgres:
		err = exec.QueryRowxContext(ctx, a.rebind(insertQuiz+" RETURNING id"), args...).Scan(&model.ID)
	case config.DriverOracle:
		_, err = exec.ExecContext(ctx, a.rebind(insertQuiz+" RETURNING id INTO ?"), append(args, sql.Out{Dest: &model.ID})...)
	default:
		var res sql.Result
		res, err = exec.ExecContext(ctx, a.rebind(insertQuiz), args...)
		if err == nil {
			model.ID, err = res.LastInsertId()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert quiz: %w", err)
	}
	return toDomainQuizRecord(&model), nil
}

// ListAll returns every record, most recent first.
func (a *QuizDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.QuizSummary, error) {
	var rows []models.QuizSummary
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, selectQuizSummaries); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]*domain.QuizSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &domain.QuizSummary{
			ID:            row.ID,
			URL:           row.URL,
			Title:         row.Title,
			DateGenerated: row.DateGenerated,
		}
	}
	return summaries, nil
}

// GetByID returns nil, nil when no record has the id.
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	var model models.Quiz
	err := GetExecutor(ctx, a.db).GetContext(ctx, &model, a.rebind(selectQuizByID), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %d: %w", id, err)
	}
	return toDomainQuizRecord(&model), nil
}

func toDomainQuizRecord(m *models.Quiz) *domain.QuizRecord {
	return &domain.QuizRecord{
		ID:             m.ID,
		URL:            m.URL,
		Title:          m.Title,
		DateGenerated:  m.DateGenerated,
		ScrapedContent: m.ScrapedContent.String,
		FullQuizData:   m.FullQuizData,
	}
}

func clip(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return string([]rune(s)[:maxRunes])
}

var _ domain.QuizRepository = (*QuizDatabaseAdapter)(nil)
