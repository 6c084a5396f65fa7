package openai

import (
	"errors"
	"strings"
)

// Category is the closed taxonomy of failure reasons surfaced to clients.
// It is stable across provider changes: clients branch on it, so values
// here are a wire contract.
type Category string

const (
	CategoryNotConfigured         Category = "NOT_CONFIGURED"
	CategoryContextLengthExceeded Category = "CONTEXT_LENGTH_EXCEEDED"
	CategoryRateLimited           Category = "RATE_LIMITED"
	CategoryAuthenticationFailed  Category = "AUTHENTICATION_FAILED"
	CategoryQuotaExceeded         Category = "QUOTA_EXCEEDED"
	CategoryUnknown               Category = "UNKNOWN"
)

// Error is the single typed condition raised for every provider failure.
// The endpoint maps Category to a transport representation; it never
// re-derives the category itself.
type Error struct {
	Category Category
	Message  string
	cause    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// CategoryOf extracts the category from an error chain, defaulting to
// CategoryUnknown for anything untyped.
func CategoryOf(err error) Category {
	var oaiErr *Error
	if errors.As(err, &oaiErr) {
		return oaiErr.Category
	}
	return CategoryUnknown
}

// classify maps a provider failure to one typed Error. The structured error
// code is preferred when present; substring matching on the message is the
// fallback and is known to be fragile, which is why this is the only place
// that inspects provider error text.
func classify(statusCode int, code, message string, cause error) *Error {
	switch code {
	case "context_length_exceeded":
		return contextLengthError(cause)
	case "insufficient_quota":
		return &Error{
			Category: CategoryQuotaExceeded,
			Message:  "OpenAI quota exceeded. Please contact your administrator.",
			cause:    cause,
		}
	}

	switch statusCode {
	case 401, 403:
		return &Error{
			Category: CategoryAuthenticationFailed,
			Message:  "OpenAI authentication failed. Check your API key.",
			cause:    cause,
		}
	case 429:
		return &Error{
			Category: CategoryRateLimited,
			Message:  "Too many requests. Please try again later.",
			cause:    cause,
		}
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "context_length_exceeded"),
		strings.Contains(lower, "maximum context length"):
		return contextLengthError(cause)
	case strings.Contains(lower, "401"),
		strings.Contains(lower, "authentication"):
		return &Error{
			Category: CategoryAuthenticationFailed,
			Message:  "OpenAI authentication failed. Check your API key.",
			cause:    cause,
		}
	case strings.Contains(lower, "429"):
		return &Error{
			Category: CategoryRateLimited,
			Message:  "Too many requests. Please try again later.",
			cause:    cause,
		}
	case strings.Contains(lower, "quota"):
		return &Error{
			Category: CategoryQuotaExceeded,
			Message:  "OpenAI quota exceeded. Please contact your administrator.",
			cause:    cause,
		}
	}

	return &Error{
		Category: CategoryUnknown,
		Message:  "Failed to get response from AI. Please try again.",
		cause:    cause,
	}
}

func contextLengthError(cause error) *Error {
	return &Error{
		Category: CategoryContextLengthExceeded,
		Message:  "The conversation is too long for the model. Please start a new conversation.",
		cause:    cause,
	}
}

func notConfiguredError() *Error {
	return &Error{
		Category: CategoryNotConfigured,
		Message:  "AI service is not configured",
	}
}
