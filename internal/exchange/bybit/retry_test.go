package bybit

import (
	"context"
	"testing"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDelay_GrowsExponentially(t *testing.T) {
	config := RetryConfig{
		MaxRetries:    5,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
	}

	assert.Equal(t, 500*time.Millisecond, backoffDelay(0, config))
	assert.Equal(t, time.Second, backoffDelay(1, config))
	assert.Equal(t, 2*time.Second, backoffDelay(2, config))
	assert.Equal(t, 4*time.Second, backoffDelay(3, config))
}

func TestBackoffDelay_CapsAtMaxDelay(t *testing.T) {
	config := RetryConfig{
		MaxRetries:    10,
		InitialDelay:  time.Second,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}

	assert.Equal(t, 5*time.Second, backoffDelay(10, config))
}

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestRetry_BacksOffOnVenueRateLimit(t *testing.T) {
	c := NewClient(Config{APIKey: "k", APISecret: "s", Testnet: true})

	attempts := 0
	err := c.RetryWithConfig(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return NewAPIError(ErrCodeRateLimitExceeded, "too many visits")
		}
		return nil
	}, fastRetryConfig())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_AuthErrorsFailImmediately(t *testing.T) {
	c := NewClient(Config{APIKey: "k", APISecret: "s", Testnet: true})

	attempts := 0
	err := c.RetryWithConfig(context.Background(), func() error {
		attempts++
		return NewAPIError(ErrCodeInvalidAPIKey, "invalid api key")
	}, fastRetryConfig())

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestParseOrderResponse_RateLimitCodeIsRetryable(t *testing.T) {
	c := NewClient(Config{APIKey: "k", APISecret: "s", Testnet: true})

	// A rate-limit RetCode rides on a transport-level success; the
	// parse step must surface it as a retryable venue error.
	_, err := c.parseOrderResponse(&bybit_api.ServerResponse{
		RetCode: ErrCodeRateLimitExceeded,
		RetMsg:  "too many visits",
	})
	require.Error(t, err)
	assert.True(t, IsRetryableError(err))
}

func TestIsRetryableError_RateLimitAndServerErrors(t *testing.T) {
	assert.True(t, IsRetryableError(&APIError{Code: ErrCodeRateLimitExceeded, Message: "too many visits"}))
	assert.False(t, IsRetryableError(&APIError{Code: ErrCodeInvalidAPIKey, Message: "invalid api key"}))
	assert.False(t, IsRetryableError(nil))
}
