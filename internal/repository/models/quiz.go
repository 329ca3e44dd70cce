package models

import (
	"database/sql"
	"time"
)

// Quiz maps a row of the quizzes table.
type Quiz struct {
	ID             int64          `db:"id"`
	URL            string         `db:"url"`
	Title          string         `db:"title"`
	DateGenerated  time.Time      `db:"date_generated"`
	ScrapedContent sql.NullString `db:"scraped_content"`
	FullQuizData   string         `db:"full_quiz_data"`
}

// QuizSummary is the history projection of a quizzes row.
type QuizSummary struct {
	ID            int64     `db:"id"`
	URL           string    `db:"url"`
	Title         string    `db:"title"`
	DateGenerated time.Time `db:"date_generated"`
}
