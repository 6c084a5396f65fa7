package auth

import (
	"log/slog"
	"net/http"

	"github.com/dadihq/dadi-gateway/internal/httputil"
)

// Middleware returns a chi middleware that gates requests on the principal
// header and the email allow-list. Identity and authorization failures are
// handled entirely here; handlers behind it can assume an authorized caller
// in the request context.
func Middleware(extractor *Extractor, policy *Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := w.Header().Get("X-Request-ID")

			principal := extractor.FromRequest(r)
			if principal == nil {
				slog.Warn("no principal found in request headers", "request_id", reqID)
				httputil.WriteUnauthorized(w, reqID, "User not authenticated")
				return
			}

			email := ResolveEmail(principal)
			if !policy.IsAuthorized(email) {
				slog.Warn("user not on allow-list", "request_id", reqID, "email", email)
				httputil.WriteForbidden(w, reqID, "User not authorized to access this application")
				return
			}

			id := &Identity{
				Principal: principal,
				Email:     email,
				Name:      ResolveName(principal),
			}
			ctx := ContextWithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
