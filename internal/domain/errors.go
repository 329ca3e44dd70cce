package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput     ErrorCode = "INVALID_INPUT"
	CodeInvalidURL       ErrorCode = "INVALID_URL"
	CodeFetchFailed      ErrorCode = "FETCH_FAILED"
	CodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	CodeQuizNotFound     ErrorCode = "QUIZ_NOT_FOUND"
	CodeCorruptRecord    ErrorCode = "CORRUPT_RECORD"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInvalidURLError() *DomainError {
	return NewError(CodeInvalidURL, "Invalid Wikipedia URL. Please provide a valid Wikipedia article URL.", nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

// NewUpstreamFetchError wraps a FetchError for the caller. The message
// carries the fetch reason but never the wrapped transport detail.
func NewUpstreamFetchError(err error) *DomainError {
	return NewError(CodeFetchFailed, fmt.Sprintf("Failed to generate quiz: %s", describe(err)), err)
}

// NewUpstreamGenerationError wraps a GenerationError for the caller.
func NewUpstreamGenerationError(err error) *DomainError {
	return NewError(CodeGenerationFailed, fmt.Sprintf("Failed to generate quiz: %s", describe(err)), err)
}

func NewQuizNotFoundError(quizID int64) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz with ID %d not found", quizID), nil)
}

func NewCorruptRecordError(quizID int64, err error) *DomainError {
	return NewError(CodeCorruptRecord, "Failed to parse quiz data", fmt.Errorf("quiz %d: %w", quizID, err))
}

// FetchError reports a network or structural scraping failure.
type FetchError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to scrape %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to scrape %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// GenerationError reports a model call, parse or schema failure. Raw holds
// the offending model output and is meant for logs only.
type GenerationError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("quiz generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// describe renders the client-facing part of a pipeline error.
func describe(err error) string {
	switch e := err.(type) {
	case *FetchError:
		return e.Reason
	case *GenerationError:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Reason, e.Err)
		}
		return e.Reason
	case nil:
		return "unknown error"
	default:
		return e.Error()
	}
}
