package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dadihq/dadi-gateway/internal/types"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, "req_123", http.StatusBadRequest, "Bad Request", "test message")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	if rid := w.Header().Get("X-Request-ID"); rid != "req_123" {
		t.Errorf("expected X-Request-ID req_123, got %s", rid)
	}

	var resp types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != "Bad Request" {
		t.Errorf("expected error 'Bad Request', got %q", resp.Error)
	}
	if resp.Message != "test message" {
		t.Errorf("expected message 'test message', got %q", resp.Message)
	}
}

func TestWriteUnauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	WriteUnauthorized(w, "req_456", "User not authenticated")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}

	var resp types.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error != "Unauthorized" {
		t.Errorf("expected error 'Unauthorized', got %q", resp.Error)
	}
}

func TestWriteContextLengthExceeded(t *testing.T) {
	w := httptest.NewRecorder()
	WriteContextLengthExceeded(w, "req_789", "conversation too long")

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", w.Code)
	}

	var resp types.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error != "ContextLengthExceeded" {
		t.Errorf("expected error 'ContextLengthExceeded', got %q", resp.Error)
	}
}
