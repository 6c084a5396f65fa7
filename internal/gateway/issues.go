package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/httputil"
	"github.com/dadihq/dadi-gateway/internal/types"
)

// CreateIssue handles POST /api/issues. The tracker integration is an
// external collaborator behind the IssueCreator interface; without one
// wired in, the endpoint reports unavailable.
func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	if _, ok := auth.IdentityFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	if h.issues == nil {
		httputil.WriteServiceUnavailable(w, reqID, "Issue tracker is not configured")
		return
	}

	var req types.CreateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, reqID, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		httputil.WriteBadRequest(w, reqID, "Title is required")
		return
	}

	created, err := h.issues.Create(r.Context(), req)
	if err != nil {
		slog.Error("error creating issue", "request_id", reqID, "error", err)
		httputil.WriteInternalError(w, reqID, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}
