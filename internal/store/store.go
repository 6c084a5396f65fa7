package store

import (
	"context"

	"github.com/dadihq/dadi-gateway/internal/types"
)

// IdeaStore persists idea-box submissions.
type IdeaStore interface {
	Save(ctx context.Context, idea types.IdeaRecord) error
	List(ctx context.Context) ([]types.IdeaRecord, error)
	// Delete reports whether the record existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// PreferenceStore persists per-user settings keyed by the principal's
// user id. Get returns defaults for users with no stored row.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (types.UserPreferences, error)
	SetChatMode(ctx context.Context, userID, mode string) (types.UserPreferences, error)
}
