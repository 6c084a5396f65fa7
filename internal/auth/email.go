package auth

import (
	"encoding/json"
	"log/slog"
	"strings"
)

const emailClaimURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
const nameClaimURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"

// userDetails is the secondary JSON blob some identity providers nest
// inside the principal's userDetails field.
type userDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ResolveEmail derives the authoritative email for a principal. Precedence:
// a recognized email claim, then the email field of the userDetails blob,
// then the raw user id. Total function: never fails for a non-nil principal.
func ResolveEmail(p *Principal) string {
	if p == nil {
		return ""
	}

	for _, c := range p.Claims {
		if !isEmailClaim(c.Type) || c.Value == "" {
			continue
		}
		slog.Debug("email found in claims", "claim_type", c.Type)
		return c.Value
	}

	if p.UserDetails != "" {
		var details userDetails
		if err := json.Unmarshal([]byte(p.UserDetails), &details); err == nil && details.Email != "" {
			slog.Debug("email found in user details")
			return details.Email
		}
	}

	slog.Debug("no email found in claims or user details, using user id", "user_id", p.UserID)
	return p.UserID
}

// ResolveName returns the caller's display name, or "" when no name claim
// is present.
func ResolveName(p *Principal) string {
	if p == nil {
		return ""
	}

	for _, c := range p.Claims {
		if c.Value == "" {
			continue
		}
		if c.Type == "name" || c.Type == nameClaimURI || hasSuffixFold(c.Type, "/name") {
			return c.Value
		}
	}

	if p.UserDetails != "" {
		var details userDetails
		if err := json.Unmarshal([]byte(p.UserDetails), &details); err == nil && details.Name != "" {
			return details.Name
		}
	}

	return ""
}

func isEmailClaim(typ string) bool {
	return typ == emailClaimURI || typ == "email" || hasSuffixFold(typ, "/emailaddress")
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
