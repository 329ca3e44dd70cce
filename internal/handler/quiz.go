package handler

import (
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// Root godoc
// @Summary Service info
// @Description Liveness payload listing the available endpoints
// @Tags meta
// @Produce json
// @Success 200 {object} dto.RootResponse
// @Router / [get]
func (h *QuizHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		Message: "Wiki Quiz Generator API",
		Status:  "running",
		Endpoints: map[string]string{
			"generate_quiz": "POST /generate_quiz",
			"history":       "GET /history",
			"quiz_detail":   "GET /quiz/{quiz_id}",
		},
	})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Scrapes the article, asks the language model for a quiz and stores it
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Wikipedia article URL"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.ValidatedQuizRequestKey).(*dto.GenerateQuizRequest)
	if !ok {
		req = new(dto.GenerateQuizRequest)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), req.URL)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory godoc
// @Summary List generated quizzes
// @Description Returns every stored quiz, most recent first, without quiz data
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizHistoryItem
// @Failure 500 {object} dto.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	items, err := h.service.GetHistory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetQuizDetail godoc
// @Summary Get a stored quiz
// @Description Returns a stored quiz with its full quiz data
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuizDetail(c *fiber.Ctx) error {
	quizID, ok := c.Locals(middleware.ValidatedQuizIDKey).(int64)
	if !ok {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "quiz id must be an integer")
		}
		quizID = int64(id)
	}

	resp, err := h.service.GetQuizDetail(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
