package domain

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizQuestion_HasOption(t *testing.T) {
	q := QuizQuestion{Options: []string{"Paris", "Rome", "Madrid", "Berlin"}}

	assert.True(t, q.HasOption("Rome"))
	assert.False(t, q.HasOption("rome"))
	assert.False(t, q.HasOption(""))
}

func TestQuizOutput_JSONFieldNames(t *testing.T) {
	out, err := json.Marshal(QuizOutput{
		Questions: []QuizQuestion{{Question: "q", Options: []string{"a"}, CorrectAnswer: "a", Explanation: "e"}},
	})
	require.NoError(t, err)

	for _, key := range []string{`"title"`, `"summary"`, `"questions"`, `"key_entities"`, `"related_topics"`, `"correct_answer"`, `"explanation"`} {
		assert.Contains(t, string(out), key)
	}
}

func TestDomainError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("Failed to save quiz", cause)

	assert.Equal(t, "Failed to save quiz: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	body, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"Failed to save quiz"}`, string(body))
}

func TestUpstreamErrors_MessageCarriesReasonOnly(t *testing.T) {
	fetchErr := &FetchError{URL: "https://en.wikipedia.org/wiki/X", Reason: "unexpected status 404", Err: errors.New("dial tcp 10.0.0.1:443")}
	err := NewUpstreamFetchError(fetchErr)

	assert.Equal(t, CodeFetchFailed, err.Code)
	assert.Equal(t, "Failed to generate quiz: unexpected status 404", err.Message)
	assert.NotContains(t, err.Message, "10.0.0.1")

	var target *FetchError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "https://en.wikipedia.org/wiki/X", target.URL)

	genErr := &GenerationError{Reason: "model output failed validation", Raw: "{secret raw}", Err: errors.New("Questions must satisfy min=5")}
	err = NewUpstreamGenerationError(genErr)

	assert.Equal(t, CodeGenerationFailed, err.Code)
	assert.Equal(t, "Failed to generate quiz: model output failed validation: Questions must satisfy min=5", err.Message)
	assert.NotContains(t, err.Message, "secret raw")
}

func TestNotFoundAndCorruptErrors(t *testing.T) {
	notFound := NewQuizNotFoundError(999999)
	assert.Equal(t, CodeQuizNotFound, notFound.Code)
	assert.Equal(t, "Quiz with ID 999999 not found", notFound.Message)

	corrupt := NewCorruptRecordError(3, io.ErrUnexpectedEOF)
	assert.Equal(t, CodeCorruptRecord, corrupt.Code)
	assert.Equal(t, "Failed to parse quiz data", corrupt.Message)
	assert.ErrorIs(t, corrupt, io.ErrUnexpectedEOF)
}
