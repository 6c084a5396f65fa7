package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/httputil"
	"github.com/dadihq/dadi-gateway/internal/types"
)

const maxIdeaLength = 500

// SubmitIdea handles POST /api/ideas.
func (h *Handler) SubmitIdea(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	var req types.SubmitIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, reqID, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Text) == "" {
		httputil.WriteBadRequest(w, reqID, "Text is required")
		return
	}
	if len(req.Text) > maxIdeaLength {
		httputil.WriteBadRequest(w, reqID, "Text must be 500 characters or fewer")
		return
	}

	author := id.Name
	if author == "" {
		author = id.Email
	}

	idea := types.IdeaRecord{
		ID:          uuid.NewString(),
		Text:        req.Text,
		Author:      author,
		AuthorEmail: id.Email,
		Timestamp:   time.Now().UTC(),
	}

	if err := h.ideas.Save(r.Context(), idea); err != nil {
		slog.Error("error saving idea", "request_id", reqID, "error", err)
		httputil.WriteInternalError(w, reqID, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.RecordIdea("submit")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(types.SubmitIdeaResponse{
		ID:      idea.ID,
		Message: "Idé lagret.",
	})
}

// ListIdeas handles GET /api/ideas.
func (h *Handler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	if _, ok := auth.IdentityFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	ideas, err := h.ideas.List(r.Context())
	if err != nil {
		slog.Error("error listing ideas", "request_id", reqID, "error", err)
		httputil.WriteInternalError(w, reqID, err.Error())
		return
	}
	if ideas == nil {
		ideas = []types.IdeaRecord{}
	}

	if h.metrics != nil {
		h.metrics.RecordIdea("list")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ideas)
}

// DeleteIdea handles DELETE /api/ideas/{id}.
func (h *Handler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	if _, ok := auth.IdentityFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	ideaID := chi.URLParam(r, "id")
	existed, err := h.ideas.Delete(r.Context(), ideaID)
	if err != nil {
		slog.Error("error deleting idea", "request_id", reqID, "idea_id", ideaID, "error", err)
		httputil.WriteInternalError(w, reqID, err.Error())
		return
	}
	if !existed {
		httputil.WriteNotFound(w, reqID, "Idea not found")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordIdea("delete")
	}

	w.WriteHeader(http.StatusNoContent)
}
