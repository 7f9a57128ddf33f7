package bybit

import (
	"fmt"
	"net/http"
)

// APIError represents a Bybit API error with its venue error code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bybit API error %d: %s", e.Code, e.Message)
}

// NewAPIError creates an APIError from a venue return code.
func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// Common Bybit error codes
const (
	ErrCodeInvalidAPIKey       = 10003
	ErrCodeInvalidSignature    = 10004
	ErrCodeInvalidTimestamp    = 10005
	ErrCodeRateLimitExceeded   = 10006
	ErrCodeOrderNotFound       = 110001
	ErrCodeInsufficientBalance = 110007
	ErrCodeSymbolNotFound      = 110009
)

// IsRetryableError determines if an error should be retried.
func IsRetryableError(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	switch apiErr.Code {
	case ErrCodeRateLimitExceeded,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsAuthenticationError checks if the error is related to authentication.
func IsAuthenticationError(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	switch apiErr.Code {
	case ErrCodeInvalidAPIKey, ErrCodeInvalidSignature, ErrCodeInvalidTimestamp:
		return true
	}
	return false
}
