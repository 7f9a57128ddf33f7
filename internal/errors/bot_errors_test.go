package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotError_MessageFormat(t *testing.T) {
	err := New(ErrorCategoryNetwork, "exchange", "GetMarketData", "connection refused")
	assert.Equal(t, "[NETWORK:exchange] GetMarketData: connection refused", err.Error())
}

func TestWrap_PreservesUnderlyingError(t *testing.T) {
	underlying := errors.New("dial tcp: timeout")
	wrapped := Wrap(underlying, ErrorCategoryTimeout, "exchange", "PlaceOrder")

	require.NotNil(t, wrapped)
	assert.ErrorIs(t, wrapped, underlying)
	assert.True(t, wrapped.IsRetryable())
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorCategoryNetwork, "exchange", "Connect"))
}

func TestNotSupported_DetectedThroughChain(t *testing.T) {
	err := NewNotSupported("simulated", "GetBalance")
	wrapped := fmt.Errorf("balance check failed: %w", err)

	assert.True(t, IsNotSupported(wrapped))
	assert.False(t, IsNotSupported(errors.New("plain error")))
	assert.False(t, err.IsRetryable())
}

func TestIsFatal_ByCategory(t *testing.T) {
	assert.True(t, New(ErrorCategoryCredentials, "exchange", "Connect", "bad key").IsFatal())
	assert.True(t, New(ErrorCategoryConfiguration, "config", "Load", "bad value").IsFatal())
	assert.False(t, New(ErrorCategoryOrder, "exchange", "PlaceOrder", "rejected").IsFatal())
}

func TestIsRetryable_UnknownErrorsDefaultRetryable(t *testing.T) {
	assert.True(t, IsRetryable(errors.New("who knows")))
	assert.True(t, IsRetryable(New(ErrorCategoryMarketData, "exchange", "GetMarketData", "stale")))
	assert.False(t, IsRetryable(New(ErrorCategoryValidation, "executor", "ExecuteSignal", "bad size")))
}
