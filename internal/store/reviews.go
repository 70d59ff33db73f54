package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/models"
	"github.com/Kapil927/CU-Shop/internal/normalize"
)

// Reviews holds the reviews collection visible to the current context.
// "At most one review per (product, author)" is the service's rule;
// the store only derives whether it already holds.
type Reviews struct {
	mu sync.RWMutex

	api     Gateway
	session *Session
	notify  Notifier

	reviews []models.Review
}

func NewReviews(gw Gateway, session *Session, notify Notifier) *Reviews {
	return &Reviews{
		api:     gw,
		session: session,
		notify:  notify,
	}
}

func (r *Reviews) Hydrate(ctx context.Context) error {
	raw, err := r.api.FetchReviews(ctx)
	if err != nil {
		r.setReviews(nil)
		return fmt.Errorf("fetch reviews: %w", err)
	}

	reviews, err := normalize.Decode[models.Review](raw)
	if err != nil {
		r.setReviews(nil)
		return fmt.Errorf("fetch reviews: %w", err)
	}

	r.setReviews(reviews)
	return nil
}

func (r *Reviews) Clear() {
	r.setReviews(nil)
}

// Submit creates a review for the target product.
func (r *Reviews) Submit(ctx context.Context, productID int64, rating int, comment string) error {
	if productID == 0 {
		return ErrNoReviewTarget
	}
	if err := r.session.Gate("Please login to write a review"); err != nil {
		return err
	}

	err := r.api.AddReview(ctx, api.ReviewRequest{
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		r.notify.Notify("Failed to submit review")
		if api.IsAuthFailure(err) {
			r.session.RedirectToLogin()
		}
		return fmt.Errorf("submit review: %w", err)
	}

	r.notify.Notify("Review submitted")
	r.refetch(ctx)
	return nil
}

func (r *Reviews) Edit(ctx context.Context, reviewID int64, rating int, comment string) error {
	if err := r.session.Gate("Please login to manage your reviews"); err != nil {
		return err
	}

	if err := r.api.UpdateReview(ctx, reviewID, rating, comment); err != nil {
		r.notify.Notify("Failed to update review")
		if api.IsAuthFailure(err) {
			r.session.RedirectToLogin()
		}
		return fmt.Errorf("update review: %w", err)
	}

	r.notify.Notify("Review updated successfully")
	r.refetch(ctx)
	return nil
}

func (r *Reviews) Delete(ctx context.Context, reviewID int64) error {
	if err := r.session.Gate("Please login to manage your reviews"); err != nil {
		return err
	}

	if err := r.api.DeleteReview(ctx, reviewID); err != nil {
		r.notify.Notify("Failed to delete review")
		if api.IsAuthFailure(err) {
			r.session.RedirectToLogin()
		}
		return fmt.Errorf("delete review: %w", err)
	}

	r.notify.Notify("Review deleted successfully")
	r.refetch(ctx)
	return nil
}

// HasReviewed reports whether the current identity already reviewed
// the product. Always false for guests.
func (r *Reviews) HasReviewed(productID int64) bool {
	username, ok := r.session.Current()
	if !ok {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, review := range r.reviews {
		if review.Product != nil && review.Product.ID == productID &&
			review.User != nil && review.User.Username == username {
			return true
		}
	}
	return false
}

func (r *Reviews) All() []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reviews
}

func (r *Reviews) refetch(ctx context.Context) {
	if err := r.Hydrate(ctx); err != nil {
		logger.Warn().Err(err).Msg("refetch reviews")
	}
}

func (r *Reviews) setReviews(reviews []models.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = reviews
}
