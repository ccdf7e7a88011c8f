package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seefood/backend/internal/domain"
	"github.com/seefood/backend/internal/pkg/logger"
)

// ProfileService loads and saves the user's preference document. Reads go
// through the cache; a save is a full-document overwrite that invalidates
// the cached entry, so the next read sees the new keyword sets.
type ProfileService struct {
	store    domain.PreferencesStore
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewProfileService creates a profile service. cacheTTL of zero disables
// no-op caching windows by falling back to five minutes.
func NewProfileService(store domain.PreferencesStore, cache domain.CacheRepository, cacheTTL time.Duration) *ProfileService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ProfileService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Get returns the preferences for the session's user. A user without a
// profile document gets an empty profile carrying the session email, the
// same as a fresh sign-up. Requires a signed-in identity.
func (s *ProfileService) Get(ctx context.Context, session domain.Session) (*domain.Preferences, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	if cached := s.fromCache(ctx, session.UserID); cached != nil {
		return cached, nil
	}

	prefs, err := s.store.Get(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return &domain.Preferences{Email: session.Email}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	s.toCache(ctx, session.UserID, prefs)
	return prefs, nil
}

// Save overwrites the user's profile document and invalidates the cached
// copy. There is no partial update path.
func (s *ProfileService) Save(ctx context.Context, session domain.Session, prefs *domain.Preferences) error {
	if !session.Authenticated() {
		return domain.ErrUnauthenticated
	}

	if err := s.store.Set(ctx, session.UserID, prefs); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := s.cache.Delete(ctx, cacheKey(session.UserID)); err != nil {
		logger.L.Warn("failed to invalidate preferences cache",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *ProfileService) fromCache(ctx context.Context, userID string) *domain.Preferences {
	data, err := s.cache.Get(ctx, cacheKey(userID))
	if err != nil {
		return nil
	}
	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil
	}
	return &prefs
}

func (s *ProfileService) toCache(ctx context.Context, userID string, prefs *domain.Preferences) {
	data, err := json.Marshal(prefs)
	if err != nil {
		return
	}
	// Cache failures never fail the read path
	if err := s.cache.Set(ctx, cacheKey(userID), data, s.cacheTTL); err != nil {
		logger.L.Warn("failed to cache preferences",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func cacheKey(userID string) string {
	return "prefs:" + userID
}
