package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/httputil"
	"github.com/dadihq/dadi-gateway/internal/types"
)

// GetChatMode handles GET /api/userprefs/chatmode.
func (h *Handler) GetChatMode(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	prefs, err := h.prefs.Get(r.Context(), id.Principal.UserID)
	if err != nil {
		slog.Error("error getting chat mode", "request_id", reqID, "user_id", id.Principal.UserID, "error", err)
		httputil.WriteInternalError(w, reqID, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.ChatModeResponse{ChatMode: prefs.ChatMode})
}

// SetChatMode handles PUT /api/userprefs/chatmode.
func (h *Handler) SetChatMode(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	var req types.SetChatModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, reqID, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if _, ok := types.ParseChatMode(req.ChatMode); !ok {
		httputil.WriteBadRequest(w, reqID, "chatMode must be 'fun' or 'normal'")
		return
	}

	prefs, err := h.prefs.SetChatMode(r.Context(), id.Principal.UserID, req.ChatMode)
	if err != nil {
		slog.Error("error setting chat mode", "request_id", reqID, "user_id", id.Principal.UserID, "error", err)
		httputil.WriteInternalError(w, reqID, err.Error())
		return
	}

	slog.Info("chat mode updated", "request_id", reqID, "user_id", id.Principal.UserID, "mode", prefs.ChatMode)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.ChatModeResponse{ChatMode: prefs.ChatMode})
}
