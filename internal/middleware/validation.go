package middleware

import (
	"strconv"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys holding validated request values.
const (
	ValidatedQuizRequestKey = "validated_generate_quiz_request"
	ValidatedQuizIDKey      = "validated_quiz_id"
)

// ValidationMiddleware validates request input before it reaches handlers.
type ValidationMiddleware struct {
	validator *validation.Validator
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuizRequest decodes and validates the POST /generate_quiz
// body. The Wikipedia URL check itself belongs to the service.
func (vm *ValidationMiddleware) ValidateGenerateQuizRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
		if err := vm.validator.Struct(req); err != nil {
			return domain.NewInvalidInputError(err.Error())
		}

		c.Locals(ValidatedQuizRequestKey, &req)
		return c.Next()
	}
}

// ValidateQuizID parses the :id path parameter as an integer.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.NewInvalidInputError("quiz id must be an integer")
		}

		c.Locals(ValidatedQuizIDKey, id)
		return c.Next()
	}
}
