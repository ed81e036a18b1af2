// Package errors defines the typed errors surfaced by the doubao adapter.
// Every failure a caller sees is an *LLMError; the Kind field tags the
// variant so callers can branch with errors.As instead of string matching.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags the error variant.
type Kind string

const (
	// KindModelNotFound is returned for lookups of unregistered models.
	KindModelNotFound Kind = "model_not_found"
	// KindAPIRequestFailed wraps any failure that reached the provider
	// boundary without a more specific classification.
	KindAPIRequestFailed Kind = "api_request_failed"

	KindAuthentication     Kind = "authentication_error"
	KindRateLimit          Kind = "rate_limit_error"
	KindInvalidRequest     Kind = "invalid_request_error"
	KindNotFound           Kind = "not_found_error"
	KindTimeout            Kind = "timeout_error"
	KindServiceUnavailable Kind = "service_unavailable_error"
	KindInternal           Kind = "internal_error"
)

// LLMError represents a standardized error from the provider adapter.
// It carries enough information for error handling, logging, and retry
// decisions in the host platform.
type LLMError struct {
	Kind       Kind   `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
	Provider   string `json:"provider"`
	Model      string `json:"model,omitempty"`
	Retryable  bool   `json:"-"`

	// Cause is the underlying error for wrapped variants, reachable
	// through errors.Is/errors.As.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *LLMError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] %s (provider=%s, model=%s, code=%d)",
			e.Kind, e.Message, e.Provider, e.Model, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %s (provider=%s, model=%s)",
		e.Kind, e.Message, e.Provider, e.Model)
}

// Unwrap exposes the underlying cause to the errors package.
func (e *LLMError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode returns the appropriate HTTP status code for the error.
func (e *LLMError) HTTPStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// AsLLMError extracts an *LLMError from err's chain.
func AsLLMError(err error) (*LLMError, bool) {
	var llmErr *LLMError
	if errors.As(err, &llmErr) {
		return llmErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *LLMError of the given kind.
func IsKind(err error, kind Kind) bool {
	llmErr, ok := AsLLMError(err)
	return ok && llmErr.Kind == kind
}

// IsRetryable reports whether err is a typed error marked retryable.
func IsRetryable(err error) bool {
	llmErr, ok := AsLLMError(err)
	return ok && llmErr.Retryable
}

// NewModelNotFoundError creates the error for an unregistered model name.
func NewModelNotFoundError(provider, model string) *LLMError {
	return &LLMError{
		Kind:       KindModelNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("model %q is not registered", model),
		Provider:   provider,
		Model:      model,
		Retryable:  false,
	}
}

// NewAPIRequestFailedError wraps an untyped failure from the provider call
// path. The cause stays reachable through Unwrap.
func NewAPIRequestFailedError(provider, model string, cause error) *LLMError {
	message := "request failed"
	if cause != nil {
		message = cause.Error()
	}
	return &LLMError{
		Kind:      KindAPIRequestFailed,
		Message:   message,
		Provider:  provider,
		Model:     model,
		Retryable: false,
		Cause:     cause,
	}
}

// NewAuthenticationError creates an authentication error (401).
func NewAuthenticationError(provider, model, message string) *LLMError {
	return &LLMError{
		Kind:       KindAuthentication,
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		Provider:   provider,
		Model:      model,
		Retryable:  false,
	}
}

// NewRateLimitError creates a rate limit error (429).
func NewRateLimitError(provider, model, message string) *LLMError {
	return &LLMError{
		Kind:       KindRateLimit,
		StatusCode: http.StatusTooManyRequests,
		Message:    message,
		Provider:   provider,
		Model:      model,
		Retryable:  true,
	}
}

// NewInvalidRequestError creates an invalid request error (400).
func NewInvalidRequestError(provider, model, message string) *LLMError {
	return &LLMError{
		Kind:       KindInvalidRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Provider:   provider,
		Model:      model,
		Retryable:  false,
	}
}

// NewNotFoundError creates a not found error (404).
func NewNotFoundError(provider, model, message string) *LLMError {
	return &LLMError{
		Kind:       KindNotFound,
		StatusCode: http.StatusNotFound,
		Message:    message,
		Provider:   provider,
		Model:      model,
		Retryable:  false,
	}
}

// NewTimeoutError creates a timeout error (408).
func NewTimeoutError(provider, model, message string) *LLMError {
	return &LLMError{
		Kind:       KindTimeout,
		StatusCode: http.StatusRequestTimeout,
		Message:    message,
		Provider:   provider,
		Model:      model,
		Retryable:  true,
	}
}

// NewServiceUnavailableError creates a service unavailable error (503).
func NewServiceUnavailableError(provider, model, message string) *LLMError {
	return &LLMError{
		Kind:       KindServiceUnavailable,
		StatusCode: http.StatusServiceUnavailable,
		Message:    message,
		Provider:   provider,
		Model:      model,
		Retryable:  true,
	}
}

// NewInternalError creates an internal server error (500).
func NewInternalError(provider, model, message string) *LLMError {
	return &LLMError{
		Kind:       KindInternal,
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Provider:   provider,
		Model:      model,
		Retryable:  false,
	}
}

// FromStatusCode maps an HTTP error status to the matching typed error.
func FromStatusCode(provider, model string, statusCode int, message string) *LLMError {
	switch statusCode {
	case http.StatusUnauthorized:
		return NewAuthenticationError(provider, model, message)
	case http.StatusTooManyRequests:
		return NewRateLimitError(provider, model, message)
	case http.StatusBadRequest:
		return NewInvalidRequestError(provider, model, message)
	case http.StatusNotFound:
		return NewNotFoundError(provider, model, message)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return NewTimeoutError(provider, model, message)
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return NewServiceUnavailableError(provider, model, message)
	default:
		err := NewInternalError(provider, model, message)
		err.StatusCode = statusCode
		return err
	}
}

// Classify is the single classification point of the call pipelines. An
// error that is already typed passes through unchanged so callers never see
// double wrapping; anything else becomes an api_request_failed wrapping the
// original cause.
func Classify(provider, model string, err error) *LLMError {
	if llmErr, ok := AsLLMError(err); ok {
		return llmErr
	}
	return NewAPIRequestFailedError(provider, model, err)
}
