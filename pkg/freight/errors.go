package freight

import (
	"errors"
	"fmt"
)

// ProviderError represents an error from a rate provider.
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool
	Cause      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for ProviderError.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *ProviderError) WithCause(err error) *ProviderError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	return e
}

// WithRetryable marks the error as retryable.
func (e *ProviderError) WithRetryable(retryable bool) *ProviderError {
	e.Retryable = retryable
	return e
}

// ProviderFailure tags an error with the provider the registry collected it
// from.
type ProviderFailure struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (f *ProviderFailure) Error() string {
	return f.Provider + ": " + f.Err.Error()
}

// Unwrap returns the provider's error.
func (f *ProviderFailure) Unwrap() error {
	return f.Err
}

// Sentinel errors for the quote flow.
var (
	// ErrInvalidInput indicates a malformed postal code or non-positive
	// weight. Caller error, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQuoteUnavailable indicates every rate provider failed or returned
	// zero options. Never cached; the caller may retry.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrProviderTimeout indicates a provider call exceeded its deadline.
	// Collapsed into ErrQuoteUnavailable at the HTTP boundary.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrNoProviders indicates no rate provider is registered.
	ErrNoProviders = errors.New("no rate providers registered")
)

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return errors.Is(err, ErrQuoteUnavailable) || errors.Is(err, ErrProviderTimeout)
}
