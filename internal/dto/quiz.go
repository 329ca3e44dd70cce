package dto

import (
	"time"

	"wiki-quiz/internal/domain"
)

// GenerateQuizRequest is the body of POST /generate_quiz.
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	URL string `json:"url" validate:"required" example:"https://en.wikipedia.org/wiki/Artificial_intelligence"`
}

// QuizResponse is a stored quiz with its structured quiz data.
// @Description Generated or stored quiz
type QuizResponse struct {
	ID            int64              `json:"id"`
	URL           string             `json:"url"`
	Title         string             `json:"title"`
	DateGenerated time.Time          `json:"date_generated"`
	QuizData      *domain.QuizOutput `json:"quiz_data"`
}

// QuizHistoryItem is one entry of GET /history.
type QuizHistoryItem struct {
	ID            int64     `json:"id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	DateGenerated time.Time `json:"date_generated"`
}

// RootResponse is the liveness payload of GET /.
type RootResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse is the body of every failed request. Detail repeats Message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Status  int    `json:"status"`
}
