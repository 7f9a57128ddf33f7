package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	// Critical errors that should stop the bot
	ErrorCategoryFatal         ErrorCategory = "FATAL"
	ErrorCategoryCredentials   ErrorCategory = "CREDENTIALS"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Non-critical errors that can be retried or recovered from
	ErrorCategoryNetwork    ErrorCategory = "NETWORK"
	ErrorCategoryTimeout    ErrorCategory = "TIMEOUT"
	ErrorCategoryOrder      ErrorCategory = "ORDER"
	ErrorCategoryMarketData ErrorCategory = "MARKET_DATA"
	ErrorCategoryValidation ErrorCategory = "VALIDATION"

	// ErrorCategoryNotSupported marks capabilities the backend does not
	// implement. Callers must not retry these.
	ErrorCategoryNotSupported ErrorCategory = "NOT_SUPPORTED"
)

// BotError is a categorized error with component and operation context.
type BotError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Retryable  bool
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *BotError) Unwrap() error {
	return e.Underlying
}

// IsRetryable returns whether this error can be retried
func (e *BotError) IsRetryable() bool {
	return e.Retryable
}

// IsFatal returns whether this error should stop the bot
func (e *BotError) IsFatal() bool {
	return e.Category == ErrorCategoryFatal ||
		e.Category == ErrorCategoryCredentials ||
		e.Category == ErrorCategoryConfiguration
}

// New creates a new categorized bot error
func New(category ErrorCategory, component, operation, message string) *BotError {
	return &BotError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Retryable: isRetryableCategory(category),
	}
}

// Wrap wraps an existing error with bot error context
func Wrap(err error, category ErrorCategory, component, operation string) *BotError {
	if err == nil {
		return nil
	}
	return &BotError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Retryable:  isRetryableCategory(category),
	}
}

// NewNotSupported marks a capability the backend does not implement.
func NewNotSupported(component, operation string) *BotError {
	return New(ErrorCategoryNotSupported, component, operation, "not supported by this backend")
}

// IsNotSupported reports whether err is a not-supported outcome
// anywhere in its chain.
func IsNotSupported(err error) bool {
	var botErr *BotError
	return errors.As(err, &botErr) && botErr.Category == ErrorCategoryNotSupported
}

// IsRetryable reports whether err can be retried. Unknown errors
// default to retryable.
func IsRetryable(err error) bool {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr.Retryable
	}
	return true
}

func isRetryableCategory(category ErrorCategory) bool {
	switch category {
	case ErrorCategoryNetwork, ErrorCategoryTimeout, ErrorCategoryMarketData:
		return true
	case ErrorCategoryFatal, ErrorCategoryCredentials, ErrorCategoryConfiguration,
		ErrorCategoryNotSupported, ErrorCategoryValidation:
		return false
	default:
		return true
	}
}
