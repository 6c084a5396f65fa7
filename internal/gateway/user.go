package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/httputil"
	"github.com/dadihq/dadi-gateway/internal/types"
)

// UserInfo handles GET /api/user.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	slog.Info("user authenticated", "request_id", reqID, "email", id.Email)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.UserInfoResponse{
		Email:           id.Email,
		Provider:        id.Principal.IdentityProvider,
		UserID:          id.Principal.UserID,
		IsAuthenticated: true,
	})
}
