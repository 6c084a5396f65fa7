package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dadihq/dadi-gateway/internal/types"
)

const prefsCacheTTL = 5 * time.Minute
const prefsCachePrefix = "dadi:prefs:"

// CachedPreferenceStore adds a Redis read-through cache in front of a
// PreferenceStore. A nil Redis client disables caching: lookups go straight
// to the backing store.
type CachedPreferenceStore struct {
	backing PreferenceStore
	redis   *redis.Client
}

func NewCachedPreferenceStore(backing PreferenceStore, rdb *redis.Client) *CachedPreferenceStore {
	return &CachedPreferenceStore{backing: backing, redis: rdb}
}

func (s *CachedPreferenceStore) Get(ctx context.Context, userID string) (types.UserPreferences, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, prefsCachePrefix+userID).Bytes()
		if err == nil {
			var prefs types.UserPreferences
			if err := json.Unmarshal(cached, &prefs); err == nil {
				return prefs, nil
			}
		}
	}

	prefs, err := s.backing.Get(ctx, userID)
	if err != nil {
		return types.UserPreferences{}, err
	}

	s.cache(ctx, userID, prefs)
	return prefs, nil
}

func (s *CachedPreferenceStore) SetChatMode(ctx context.Context, userID, mode string) (types.UserPreferences, error) {
	prefs, err := s.backing.SetChatMode(ctx, userID, mode)
	if err != nil {
		return types.UserPreferences{}, err
	}
	s.cache(ctx, userID, prefs)
	return prefs, nil
}

func (s *CachedPreferenceStore) cache(ctx context.Context, userID string, prefs types.UserPreferences) {
	if s.redis == nil {
		return
	}
	if data, err := json.Marshal(prefs); err == nil {
		s.redis.Set(ctx, prefsCachePrefix+userID, data, prefsCacheTTL)
	}
}
