package domain

import (
	"context"
	"time"
)

// CatalogClient defines the interface for fetching the remote product catalog.
// The full snapshot is pulled in one call; paging and filtering happen client-side.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) ([]Product, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PreferencesStore persists user profile documents keyed by user identity.
type PreferencesStore interface {
	Get(ctx context.Context, userID string) (*Preferences, error)
	Set(ctx context.Context, userID string, prefs *Preferences) error
}

// CommentStore persists product comments keyed by generated id.
type CommentStore interface {
	Add(ctx context.Context, comment *Comment) error
	ListByProduct(ctx context.Context, productID string) ([]Comment, error)
}

// RatingStore persists per-user product ratings.
type RatingStore interface {
	// FindByUserAndProduct returns the existing rating or ErrRatingNotFound.
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*Rating, error)
	Add(ctx context.Context, rating *Rating) error
	Update(ctx context.Context, rating *Rating) error
	ListByProduct(ctx context.Context, productID string) ([]Rating, error)
}

// AuthProvider is the external sign-up/sign-in collaborator. Only the
// registration hand-off is modeled here; credential storage lives with the
// provider.
type AuthProvider interface {
	Register(ctx context.Context, reg *Registration) (userID string, err error)
}
