package handler

import (
	"wiki-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz endpoints on router.
func RegisterRoutes(router fiber.Router, quizHandler *QuizHandler, vm *middleware.ValidationMiddleware) {
	router.Get("/", quizHandler.Root)
	router.Post("/generate_quiz", vm.ValidateGenerateQuizRequest(), quizHandler.GenerateQuiz)
	router.Get("/history", quizHandler.GetHistory)
	router.Get("/quiz/:id", vm.ValidateQuizID(), quizHandler.GetQuizDetail)
}
