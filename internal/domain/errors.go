package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal      ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrValidation    ErrorCode = "VALIDATION_ERROR"
	ErrUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	ErrRequestFailed ErrorCode = "REQUEST_FAILED"

	// Quiz specific errors
	ErrQuizNotFound    ErrorCode = "QUIZ_NOT_FOUND"
	ErrScrapeFailed    ErrorCode = "SCRAPE_FAILED"
	ErrLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError is the single error shape surfaced by every layer of this
// system, on both sides of the wire. Message carries the human-readable
// text; Err preserves the underlying cause for logging.
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

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewValidationError(message string) *DomainError {
	return NewError(ErrValidation, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewScrapeError(url string, err error) *DomainError {
	return NewError(ErrScrapeFailed, fmt.Sprintf("Failed to scrape article: %s", url), err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

// NewRequestError wraps a transport-level failure observed by the catalog
// client. The original failure stays available through Unwrap.
func NewRequestError(message string, err error) *DomainError {
	return NewError(ErrRequestFailed, message, err)
}
