package validation

import (
	"errors"
	"fmt"
	"strings"
	"wiki-quiz/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(correctAnswerInOptions, domain.QuizQuestion{})
	return &Validator{validate: v}
}

func correctAnswerInOptions(sl validator.StructLevel) {
	q := sl.Current().Interface().(domain.QuizQuestion)
	if q.CorrectAnswer != "" && !q.HasOption(q.CorrectAnswer) {
		sl.ReportError(q.CorrectAnswer, "CorrectAnswer", "correct_answer", "oneofoptions", "")
	}
}

// Struct validates any tagged struct and flattens failures into one error.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ValidateQuiz enforces the QuizOutput invariants, including that every
// correct_answer is one of its question's options.
func (v *Validator) ValidateQuiz(quiz *domain.QuizOutput) error {
	if quiz == nil {
		return errors.New("quiz is nil")
	}
	return v.Struct(quiz)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "min", "max", "len":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	case "oneofoptions":
		return fmt.Sprintf("%s %q is not one of the options", fe.Namespace(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}
