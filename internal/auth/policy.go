package auth

import (
	"log/slog"
	"strings"

	"github.com/dadihq/dadi-gateway/internal/config"
)

// Policy decides whether a resolved email may use the gateway. The config
// getter is read per check so allow-list edits take effect on reload.
type Policy struct {
	cfg func() config.AuthConfig
}

func NewPolicy(cfg func() config.AuthConfig) *Policy {
	return &Policy{cfg: cfg}
}

// IsAuthorized reports whether email is on the allow-list. An empty
// allow-list denies everyone: a misconfigured deployment locks users out
// rather than opening access.
func (p *Policy) IsAuthorized(email string) bool {
	if email == "" {
		return false
	}

	cfg := p.cfg()
	if cfg.BypassForLocalDev {
		slog.Info("local-dev auth bypass enabled, allowing access", "email", email)
		return true
	}

	allowed := ParseAllowList(cfg.WhitelistedEmails)
	if len(allowed) == 0 {
		slog.Warn("allow-list is empty, denying access")
		return false
	}

	candidate := strings.ToLower(strings.TrimSpace(email))
	for _, entry := range allowed {
		if entry == candidate {
			return true
		}
	}
	return false
}

// ParseAllowList splits a comma-separated allow-list, trimming whitespace
// and lowercasing each entry. Empty entries are dropped.
func ParseAllowList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		entry := strings.ToLower(strings.TrimSpace(part))
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
