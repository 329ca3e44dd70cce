package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangchainModel adapts a langchaingo llms.Model to domain.TextModel.
type LangchainModel struct {
	model   llms.Model
	timeout time.Duration
}

// NewLangchainModel wraps model. A positive timeout bounds every call.
func NewLangchainModel(model llms.Model, timeout time.Duration) *LangchainModel {
	return &LangchainModel{model: model, timeout: timeout}
}

// Complete sends prompt as a single human message and returns the text of
// the first choice.
func (m *LangchainModel) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, m.model, prompt, llms.WithTemperature(temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

// NewModel builds the provider client named by cfg.Provider.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case config.ProviderGoogleAI:
		return googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case config.ProviderOpenAI:
		return openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	case config.ProviderAnthropic:
		return anthropic.New(
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
		)
	case config.ProviderOllama:
		httpClient := &http.Client{Timeout: cfg.Timeout}
		return ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

var _ domain.TextModel = (*LangchainModel)(nil)
