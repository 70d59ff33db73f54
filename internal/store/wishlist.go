package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/models"
	"github.com/Kapil927/CU-Shop/internal/normalize"
)

// Wishlist holds the (user, product) memberships for the current
// identity. Uniqueness is the service's job; the store only reflects
// what the last fetch returned.
type Wishlist struct {
	mu sync.RWMutex

	api     Gateway
	session *Session
	notify  Notifier

	entries []models.WishlistItem
}

func NewWishlist(gw Gateway, session *Session, notify Notifier) *Wishlist {
	return &Wishlist{
		api:     gw,
		session: session,
		notify:  notify,
	}
}

func (w *Wishlist) Hydrate(ctx context.Context) error {
	raw, err := w.api.FetchWishlist(ctx)
	if err != nil {
		w.setEntries(nil)
		return fmt.Errorf("fetch wishlist: %w", err)
	}

	entries, err := normalize.Decode[models.WishlistItem](raw)
	if err != nil {
		w.setEntries(nil)
		return fmt.Errorf("fetch wishlist: %w", err)
	}

	w.setEntries(entries)
	return nil
}

func (w *Wishlist) Clear() {
	w.setEntries(nil)
}

func (w *Wishlist) IsMember(productID int64) bool {
	_, ok := w.find(productID)
	return ok
}

// Toggle adds the product for non-members and removes the matching
// entry for members, refetching either way. Not atomic against a
// concurrent toggler of the same product; the last refetch wins.
func (w *Wishlist) Toggle(ctx context.Context, productID int64) error {
	if err := w.session.Gate("Please login to use your wishlist"); err != nil {
		return err
	}

	if entry, ok := w.find(productID); ok {
		if err := w.api.RemoveFromWishlist(ctx, entry.ID, productID); err != nil {
			return w.fail(err)
		}
		w.notify.Notify("Removed from wishlist")
	} else {
		if err := w.api.AddToWishlist(ctx, productID); err != nil {
			return w.fail(err)
		}
		w.notify.Notify("Added to wishlist")
	}

	w.refetch(ctx)
	return nil
}

func (w *Wishlist) Entries() []models.WishlistItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.entries
}

func (w *Wishlist) find(productID int64) (models.WishlistItem, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, entry := range w.entries {
		if entry.Product != nil && entry.Product.ID == productID {
			return entry, true
		}
	}
	return models.WishlistItem{}, false
}

func (w *Wishlist) fail(err error) error {
	w.notify.Notify("Wishlist action failed. Please login again.")
	if api.IsAuthFailure(err) {
		w.session.RedirectToLogin()
	}
	return fmt.Errorf("toggle wishlist: %w", err)
}

func (w *Wishlist) refetch(ctx context.Context) {
	if err := w.Hydrate(ctx); err != nil {
		logger.Warn().Err(err).Msg("refetch wishlist")
	}
}

func (w *Wishlist) setEntries(entries []models.WishlistItem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = entries
}
