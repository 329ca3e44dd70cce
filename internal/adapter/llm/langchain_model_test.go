package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"wiki-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	response    string
	err         error
	delay       time.Duration
	gotPrompt   string
	temperature float64
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	f.temperature = opts.Temperature
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.gotPrompt = text.Text
			}
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangchainModel_Complete(t *testing.T) {
	fake := &fakeModel{response: `{"title":"x"}`}
	m := NewLangchainModel(fake, time.Second)

	out, err := m.Complete(context.Background(), "make a quiz", 0.7)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"x"}`, out)
	assert.Equal(t, "make a quiz", fake.gotPrompt)
	assert.InDelta(t, 0.7, fake.temperature, 1e-9)
}

func TestLangchainModel_Complete_Error(t *testing.T) {
	fake := &fakeModel{err: errors.New("quota exceeded")}
	m := NewLangchainModel(fake, 0)

	_, err := m.Complete(context.Background(), "prompt", 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM call failed")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestLangchainModel_Complete_Timeout(t *testing.T) {
	fake := &fakeModel{response: "late", delay: time.Second}
	m := NewLangchainModel(fake, 20*time.Millisecond)

	_, err := m.Complete(context.Background(), "prompt", 0.7)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestNewModel_UnsupportedProvider(t *testing.T) {
	_, err := NewModel(context.Background(), config.LLMConfig{Provider: "bard"})
	assert.Error(t, err)
}
