package freight_test

import (
	"errors"
	"testing"

	"github.com/belira/freight/pkg/freight"
	"github.com/stretchr/testify/assert"
)

func TestProviderError_Error(t *testing.T) {
	err := freight.NewProviderError("correios", "INVALID_CEP", "Invalid postal code")
	assert.Equal(t, "correios error (INVALID_CEP): Invalid postal code", err.Error())
}

func TestProviderError_ErrorWithCause(t *testing.T) {
	cause := errors.New("network timeout")
	err := freight.NewProviderError("correios", "API_ERROR", "API call failed").WithCause(cause)
	assert.Contains(t, err.Error(), "API call failed")
	assert.Contains(t, err.Error(), "network timeout")
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("network timeout")
	err := freight.NewProviderError("correios", "API_ERROR", "API call failed").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestProviderError_Is(t *testing.T) {
	err1 := freight.NewProviderError("correios", "INVALID_CEP", "Invalid postal code")
	err2 := freight.NewProviderError("melhorenvio", "INVALID_CEP", "Different message")

	// Same code should match
	assert.True(t, errors.Is(err1, err2))
}

func TestProviderError_IsNot(t *testing.T) {
	err1 := freight.NewProviderError("correios", "INVALID_CEP", "Invalid postal code")
	err2 := freight.NewProviderError("correios", "DIFFERENT_CODE", "Different error")

	// Different codes should not match
	assert.False(t, errors.Is(err1, err2))
}

func TestProviderError_WithStatusCode(t *testing.T) {
	err := freight.NewProviderError("correios", "AUTH_ERROR", "Unauthorized").WithStatusCode(401)
	assert.Equal(t, 401, err.StatusCode)
}

func TestProviderError_WithRetryable(t *testing.T) {
	err := freight.NewProviderError("correios", "RATE_LIMIT", "Too many requests").WithRetryable(true)
	assert.True(t, err.Retryable)
}

func TestProviderFailure_Unwrap(t *testing.T) {
	cause := freight.NewProviderError("correios", "API_ERROR", "boom")
	failure := &freight.ProviderFailure{Provider: "correios", Err: cause}

	assert.Contains(t, failure.Error(), "correios")
	assert.True(t, errors.Is(failure, cause))
}

func TestIsRetryable_ProviderError(t *testing.T) {
	err := freight.NewProviderError("correios", "RATE_LIMIT", "Too many requests").WithRetryable(true)
	assert.True(t, freight.IsRetryable(err))
}

func TestIsRetryable_ProviderErrorNotRetryable(t *testing.T) {
	err := freight.NewProviderError("correios", "INVALID_CEP", "Bad postal code").WithRetryable(false)
	assert.False(t, freight.IsRetryable(err))
}

func TestIsRetryable_QuoteUnavailable(t *testing.T) {
	assert.True(t, freight.IsRetryable(freight.ErrQuoteUnavailable))
}

func TestIsRetryable_ProviderTimeout(t *testing.T) {
	assert.True(t, freight.IsRetryable(freight.ErrProviderTimeout))
}

func TestIsRetryable_InvalidInput(t *testing.T) {
	assert.False(t, freight.IsRetryable(freight.ErrInvalidInput))
}
