package openai

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify_StructuredCodeWins(t *testing.T) {
	// Structured code takes precedence even when the message text would
	// match a different rule.
	err := classify(429, "context_length_exceeded", "429 too many requests", nil)
	if err.Category != CategoryContextLengthExceeded {
		t.Errorf("expected CONTEXT_LENGTH_EXCEEDED, got %s", err.Category)
	}
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     string
		message  string
		expected Category
	}{
		{"structured context length", 400, "context_length_exceeded", "", CategoryContextLengthExceeded},
		{"structured quota", 429, "insufficient_quota", "", CategoryQuotaExceeded},
		{"status 401", 401, "", "boom", CategoryAuthenticationFailed},
		{"status 403", 403, "", "boom", CategoryAuthenticationFailed},
		{"status 429", 429, "", "boom", CategoryRateLimited},
		{"substring maximum context length", 0, "", "This model's maximum context length is 8192 tokens", CategoryContextLengthExceeded},
		{"substring context_length_exceeded", 0, "", "error: context_length_exceeded", CategoryContextLengthExceeded},
		{"substring 401", 0, "", "server returned 401", CategoryAuthenticationFailed},
		{"substring authentication case-insensitive", 0, "", "Authentication failed for key", CategoryAuthenticationFailed},
		{"substring 429", 0, "", "got 429 back", CategoryRateLimited},
		{"substring quota", 0, "", "Quota exhausted for deployment", CategoryQuotaExceeded},
		{"anything else", 500, "", "internal provider error", CategoryUnknown},
		{"empty message", 0, "", "", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.status, tt.code, tt.message, nil)
			if err.Category != tt.expected {
				t.Errorf("classify(%d, %q, %q) = %s, want %s",
					tt.status, tt.code, tt.message, err.Category, tt.expected)
			}
			if err.Message == "" {
				t.Error("classified error must carry a human-readable message")
			}
		})
	}
}

func TestClassify_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := classify(0, "", "quota blown", cause)
	if !errors.Is(err, cause) {
		t.Error("classified error should wrap its cause")
	}
}

func TestCategoryOf(t *testing.T) {
	typed := classify(429, "", "boom", nil)
	wrapped := fmt.Errorf("call failed: %w", typed)

	if got := CategoryOf(wrapped); got != CategoryRateLimited {
		t.Errorf("expected RATE_LIMITED through wrapping, got %s", got)
	}
	if got := CategoryOf(errors.New("plain")); got != CategoryUnknown {
		t.Errorf("expected UNKNOWN for untyped error, got %s", got)
	}
}

func TestNotConfiguredError(t *testing.T) {
	err := notConfiguredError()
	if err.Category != CategoryNotConfigured {
		t.Errorf("expected NOT_CONFIGURED, got %s", err.Category)
	}
}
