package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/validation"

	"github.com/tmc/langchaingo/prompts"
	"go.uber.org/zap"
)

const quizPromptTemplate = `You are an expert quiz generator. Create an engaging and educational quiz based on the following Wikipedia article.

Article Title: {{.title}}

Article Content:
{{.content}}

Generate a comprehensive quiz with the following requirements:

1. Create 5-10 multiple choice questions that test understanding of the article
2. Each question should have exactly 4 options
3. The correct_answer must be copied exactly from one of the 4 options
4. Questions should cover different aspects: facts, concepts, relationships, and implications
5. Include a mix of difficulty levels (easy, medium, hard)
6. Provide clear explanations for correct answers
7. Extract 3-5 key entities/concepts from the article
8. Suggest 3-5 related topics for further exploration
9. Write a brief 2-3 sentence summary of the article

Make questions engaging and educational. Avoid trivial or overly complex questions.

Return ONLY a valid JSON object matching this schema:

{{.schema}}

Do not include any markdown formatting, code blocks, or additional text. Return only the raw JSON object.
`

const repairNote = `

Your previous answer was rejected: %s
Return a corrected JSON object that satisfies every requirement above.
`

// LLMQuizGenerator implements domain.QuizGenerator on top of a text model.
type LLMQuizGenerator struct {
	model       domain.TextModel
	prompt      prompts.PromptTemplate
	validator   *validation.Validator
	temperature float64
	maxAttempts int
	logger      *zap.Logger
}

// NewLLMQuizGenerator creates a generator. maxAttempts below 1 means a single
// attempt.
func NewLLMQuizGenerator(model domain.TextModel, temperature float64, maxAttempts int, logger *zap.Logger) *LLMQuizGenerator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMQuizGenerator{
		model:       model,
		prompt:      prompts.NewPromptTemplate(quizPromptTemplate, []string{"title", "content", "schema"}),
		validator:   validation.NewValidator(),
		temperature: temperature,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// BuildPrompt renders the generation prompt for an article.
func (g *LLMQuizGenerator) BuildPrompt(title, content string) (string, error) {
	return g.prompt.Format(map[string]any{
		"title":   title,
		"content": content,
		"schema":  validation.QuizOutputSchema,
	})
}

// Generate asks the model for a quiz and returns it only once it satisfies
// the quiz schema. Every failure is a *domain.GenerationError.
func (g *LLMQuizGenerator) Generate(ctx context.Context, title, content string) (*domain.QuizOutput, error) {
	basePrompt, err := g.BuildPrompt(title, content)
	if err != nil {
		return nil, &domain.GenerationError{Reason: "failed to build prompt", Err: err}
	}

	prompt := basePrompt
	var lastErr *domain.GenerationError
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		quiz, genErr := g.attempt(ctx, prompt)
		if genErr == nil {
			g.logger.Info("Quiz generated",
				zap.String("title", title),
				zap.Int("attempt", attempt),
				zap.Int("questions", len(quiz.Questions)),
			)
			return quiz, nil
		}

		lastErr = genErr
		g.logger.Warn("Quiz generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.maxAttempts),
			zap.String("reason", genErr.Reason),
			zap.Error(genErr.Err),
			zap.String("raw_response", genErr.Raw),
		)
		if ctx.Err() != nil {
			break
		}
		prompt = basePrompt + fmt.Sprintf(repairNote, genErr.Error())
	}
	return nil, lastErr
}

func (g *LLMQuizGenerator) attempt(ctx context.Context, prompt string) (*domain.QuizOutput, *domain.GenerationError) {
	raw, err := g.model.Complete(ctx, prompt, g.temperature)
	if err != nil {
		return nil, &domain.GenerationError{Reason: "model call failed", Err: err}
	}
	return g.ParseResponse(raw)
}

// ParseResponse cleans, decodes and validates a raw model response.
func (g *LLMQuizGenerator) ParseResponse(raw string) (*domain.QuizOutput, *domain.GenerationError) {
	cleaned := StripCodeFences(raw)

	var payload json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &domain.GenerationError{Reason: "model returned invalid JSON", Raw: raw, Err: err}
	}

	if err := validation.ValidateQuizPayload(payload); err != nil {
		return nil, &domain.GenerationError{Reason: "model output does not match the quiz schema", Raw: raw, Err: err}
	}

	var quiz domain.QuizOutput
	if err := json.Unmarshal(payload, &quiz); err != nil {
		return nil, &domain.GenerationError{Reason: "model returned invalid JSON", Raw: raw, Err: err}
	}

	if err := g.validator.ValidateQuiz(&quiz); err != nil {
		return nil, &domain.GenerationError{Reason: "model output failed validation", Raw: raw, Err: err}
	}
	return &quiz, nil
}

// StripCodeFences removes a leading ``` fence, with or without a language
// tag, and a trailing ``` fence.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// A language tag ("json", "JSON") runs up to the first newline.
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		} else {
			s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
