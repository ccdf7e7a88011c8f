package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seefood/backend/internal/domain"
)

// ReviewService handles product comments and ratings. Writes are followed
// by a re-read of the aggregate within the same flow, so the caller always
// sees a view consistent with its own write.
type ReviewService struct {
	comments domain.CommentStore
	ratings  domain.RatingStore
	now      func() time.Time
}

// NewReviewService creates a review service over the given stores.
func NewReviewService(comments domain.CommentStore, ratings domain.RatingStore) *ReviewService {
	return &ReviewService{
		comments: comments,
		ratings:  ratings,
		now:      time.Now,
	}
}

// ListComments returns all comments for a product, newest first. The store
// query is unordered; sorting happens here after the fetch.
func (s *ReviewService) ListComments(ctx context.Context, productID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Timestamp.After(comments[j].Timestamp)
	})
	return comments, nil
}

// PostComment stores a new comment for the signed-in user and returns the
// refreshed, sorted comment list. Blank comments are rejected before any
// write.
func (s *ReviewService) PostComment(ctx context.Context, session domain.Session, productID, text string) ([]domain.Comment, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty comment", domain.ErrValidation)
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		UserID:    session.UserID,
		UserEmail: session.Email,
		ProductID: productID,
		Comment:   text,
		Timestamp: s.now(),
	}
	if err := s.comments.Add(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return s.ListComments(ctx, productID)
}

// RatingSummary computes the aggregate rating for a product by a full scan
// of its rating documents. userID may be empty; when set, the summary also
// carries that user's own rating.
func (s *ReviewService) RatingSummary(ctx context.Context, productID, userID string) (*domain.RatingSummary, error) {
	ratings, err := s.ratings.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	summary := &domain.RatingSummary{}
	total := 0
	for _, r := range ratings {
		total += r.Rating
		summary.Count++
		if userID != "" && r.UserID == userID {
			summary.UserRating = r.Rating
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

// SubmitRating records or replaces the signed-in user's rating for a
// product, then recomputes the aggregate by full re-scan. At most one
// rating document exists per (user, product) pair.
func (s *ReviewService) SubmitRating(ctx context.Context, session domain.Session, productID string, value int) (*domain.RatingSummary, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5, got %d", domain.ErrValidation, value)
	}

	existing, err := s.ratings.FindByUserAndProduct(ctx, session.UserID, productID)
	switch {
	case err == nil:
		existing.Rating = value
		existing.Timestamp = s.now()
		if err := s.ratings.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	case errors.Is(err, domain.ErrRatingNotFound):
		rating := &domain.Rating{
			ID:        uuid.NewString(),
			UserID:    session.UserID,
			UserEmail: session.Email,
			ProductID: productID,
			Rating:    value,
			Timestamp: s.now(),
		}
		if err := s.ratings.Add(ctx, rating); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return s.RatingSummary(ctx, productID, session.UserID)
}
