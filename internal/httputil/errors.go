package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/dadihq/dadi-gateway/internal/types"
)

// WriteError writes a JSON error body. The error field is a stable
// machine-readable discriminator; message carries the human-readable
// detail.
func WriteError(w http.ResponseWriter, requestID string, statusCode int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	if requestID != "" {
		w.Header().Set("X-Request-ID", requestID)
	}
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

func WriteUnauthorized(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusUnauthorized, "Unauthorized", message)
}

func WriteForbidden(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusForbidden, "Forbidden", message)
}

func WriteBadRequest(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusBadRequest, "Bad Request", message)
}

func WriteNotFound(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusNotFound, "Not Found", message)
}

func WriteRateLimited(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusTooManyRequests, "Too Many Requests", message)
}

// WriteContextLengthExceeded reports a conversation that no longer fits
// the model's context window. 422 distinguishes it from transport-level
// failures so clients can prompt the user to start a new conversation.
func WriteContextLengthExceeded(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusUnprocessableEntity, "ContextLengthExceeded", message)
}

func WriteServiceUnavailable(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusServiceUnavailable, "Service Unavailable", message)
}

func WriteInternalError(w http.ResponseWriter, requestID, message string) {
	WriteError(w, requestID, http.StatusInternalServerError, "Internal Server Error", message)
}
