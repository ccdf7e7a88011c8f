// Package docstore provides in-memory implementations of the document
// stores backing profiles, comments, and ratings. They are used for local
// development and tests; production deployments swap in a hosted document
// database behind the same domain interfaces.
package docstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/seefood/backend/internal/domain"
)

// MemoryPreferences is a thread-safe in-memory PreferencesStore.
type MemoryPreferences struct {
	mu   sync.RWMutex
	docs map[string]domain.Preferences
}

// NewMemoryPreferences creates an empty preferences store.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{docs: make(map[string]domain.Preferences)}
}

// Get returns the preferences document for a user, or ErrPreferencesNotFound.
func (s *MemoryPreferences) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	copied := doc
	copied.Allergies = append([]string(nil), doc.Allergies...)
	copied.Sensitivities = append([]string(nil), doc.Sensitivities...)
	return &copied, nil
}

// Set overwrites the preferences document for a user.
func (s *MemoryPreferences) Set(ctx context.Context, userID string, prefs *domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *prefs
	copied.Allergies = append([]string(nil), prefs.Allergies...)
	copied.Sensitivities = append([]string(nil), prefs.Sensitivities...)
	s.docs[userID] = copied
	return nil
}

// MemoryComments is a thread-safe in-memory CommentStore.
type MemoryComments struct {
	mu   sync.RWMutex
	docs []domain.Comment
}

// NewMemoryComments creates an empty comment store.
func NewMemoryComments() *MemoryComments {
	return &MemoryComments{}
}

// Add appends a comment document.
func (s *MemoryComments) Add(ctx context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = append(s.docs, *comment)
	return nil
}

// ListByProduct returns all comments for a product in insertion order.
// Ordering for display happens in the service layer.
func (s *MemoryComments) ListByProduct(ctx context.Context, productID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Comment
	for _, doc := range s.docs {
		if doc.ProductID == productID {
			out = append(out, doc)
		}
	}
	return out, nil
}

// MemoryRatings is a thread-safe in-memory RatingStore.
type MemoryRatings struct {
	mu   sync.RWMutex
	docs []domain.Rating
}

// NewMemoryRatings creates an empty rating store.
func NewMemoryRatings() *MemoryRatings {
	return &MemoryRatings{}
}

// FindByUserAndProduct returns the existing rating document for a
// (user, product) pair, or ErrRatingNotFound.
func (s *MemoryRatings) FindByUserAndProduct(ctx context.Context, userID, productID string) (*domain.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.docs {
		if s.docs[i].UserID == userID && s.docs[i].ProductID == productID {
			copied := s.docs[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

// Add appends a rating document.
func (s *MemoryRatings) Add(ctx context.Context, rating *domain.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = append(s.docs, *rating)
	return nil
}

// Update replaces the rating document with the same id.
func (s *MemoryRatings) Update(ctx context.Context, rating *domain.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.docs {
		if s.docs[i].ID == rating.ID {
			s.docs[i] = *rating
			return nil
		}
	}
	return domain.ErrRatingNotFound
}

// ListByProduct returns all ratings for a product.
func (s *MemoryRatings) ListByProduct(ctx context.Context, productID string) ([]domain.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Rating
	for _, doc := range s.docs {
		if doc.ProductID == productID {
			out = append(out, doc)
		}
	}
	return out, nil
}

// MemoryAuth is a development AuthProvider that accepts any validated
// registration and hands back a generated user id. It keeps no
// credentials; real deployments point domain.AuthProvider at the hosted
// identity service.
type MemoryAuth struct {
	mu    sync.Mutex
	users map[string]string // email -> userID
}

// NewMemoryAuth creates an empty development auth provider.
func NewMemoryAuth() *MemoryAuth {
	return &MemoryAuth{users: make(map[string]string)}
}

// Register records the email and returns a new user id. Re-registering an
// email is a validation failure.
func (a *MemoryAuth) Register(ctx context.Context, reg *domain.Registration) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if _, exists := a.users[email]; exists {
		return "", domain.ErrEmailTaken
	}

	userID := uuid.NewString()
	a.users[email] = userID
	return userID, nil
}
