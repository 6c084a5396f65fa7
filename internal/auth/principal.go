package auth

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
)

// PrincipalHeader carries the base64-encoded JSON principal injected by the
// identity provider in front of the gateway.
const PrincipalHeader = "x-ms-client-principal"

// Claim is one typ/val pair from the provider's claim set. The payload is
// duck-typed JSON from an external system; never assume a claim is present.
type Claim struct {
	Type  string `json:"typ"`
	Value string `json:"val"`
}

// Principal is the structured identity decoded from the principal header.
// It lives for a single request and is never persisted.
type Principal struct {
	UserID           string   `json:"userId"`
	IdentityProvider string   `json:"identityProvider"`
	UserDetails      string   `json:"userDetails"`
	UserRoles        []string `json:"userRoles"`
	Claims           []Claim  `json:"claims"`
}

// Extractor decodes principals from inbound requests. The bypass getter is
// read per request so a config reload takes effect without a restart.
type Extractor struct {
	bypassLocalDev func() bool
}

func NewExtractor(bypassLocalDev func() bool) *Extractor {
	return &Extractor{bypassLocalDev: bypassLocalDev}
}

// FromRequest returns the decoded principal, or nil when the header is
// absent or malformed. Malformed input is a recoverable condition: it is
// indistinguishable from an unauthenticated caller and never raises.
func (e *Extractor) FromRequest(r *http.Request) *Principal {
	header := r.Header.Get(PrincipalHeader)
	if header == "" {
		slog.Debug("principal header not found")
		if e.bypassLocalDev != nil && e.bypassLocalDev() {
			slog.Info("local-dev auth bypass enabled, returning synthetic principal")
			return localDevPrincipal()
		}
		return nil
	}

	decoded, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		slog.Error("failed to base64-decode principal header", "error", err)
		return nil
	}

	var p Principal
	if err := json.Unmarshal(decoded, &p); err != nil {
		slog.Error("failed to parse principal header", "error", err)
		return nil
	}

	slog.Debug("parsed principal",
		"user_id", p.UserID,
		"provider", p.IdentityProvider,
		"has_details", p.UserDetails != "",
	)
	return &p
}

// localDevPrincipal is the fixed synthetic identity returned when the
// opt-in local-dev bypass is enabled. Development aid only.
func localDevPrincipal() *Principal {
	return &Principal{
		UserID:           "local-dev-user",
		IdentityProvider: "local",
		UserDetails:      `{"email":"dev@local.test","name":"Local Dev User"}`,
		Claims: []Claim{
			{Type: "email", Value: "dev@local.test"},
			{Type: "name", Value: "Local Dev User"},
		},
	}
}
