// Package store holds the canonical in-memory collections of the
// storefront client and the derived views computed from them. Every
// collection is replaced wholesale by a refetch; the remote service
// stays the source of truth.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/models"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "store").Logger()

// Gateway is the slice of the commerce API the stores consume.
// *api.Client satisfies it.
type Gateway interface {
	ListProducts(ctx context.Context) (json.RawMessage, error)
	SearchProducts(ctx context.Context, keyword string) (json.RawMessage, error)
	FilterProducts(ctx context.Context, f api.ProductFilter) (json.RawMessage, error)
	ListCategories(ctx context.Context) (json.RawMessage, error)

	Register(ctx context.Context, req api.RegisterRequest) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error

	FetchCart(ctx context.Context) (json.RawMessage, error)
	AddToCart(ctx context.Context, productID int64, qty int) error
	UpdateCartItem(ctx context.Context, itemID int64, qty int) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error

	Checkout(ctx context.Context) (*models.Order, error)
	OrderHistory(ctx context.Context) (json.RawMessage, error)
	ProcessPayment(ctx context.Context, orderID int64) error

	FetchWishlist(ctx context.Context) (json.RawMessage, error)
	AddToWishlist(ctx context.Context, productID int64) error
	RemoveFromWishlist(ctx context.Context, entryID, productID int64) error

	FetchReviews(ctx context.Context) (json.RawMessage, error)
	AddReview(ctx context.Context, req api.ReviewRequest) error
	UpdateReview(ctx context.Context, reviewID int64, rating int, comment string) error
	DeleteReview(ctx context.Context, reviewID int64) error
}

// Notifier shows a transient user-facing notice.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// LogNotifier routes notices to the log; callers with a UI supply
// their own.
var LogNotifier = NotifierFunc(func(msg string) {
	logger.Info().Str("notice", msg).Msg("user notice")
})

// Navigator moves the UI between views; the view controller
// implements it.
type Navigator interface {
	RedirectToLogin()
}

// Hydrator is a store whose canonical state follows the session:
// hydrated after login, cleared on logout.
type Hydrator interface {
	Hydrate(ctx context.Context) error
	Clear()
}

var (
	ErrLoginRequired            = errors.New("login required")
	ErrEmptyCart                = errors.New("cart is empty")
	ErrNoPendingOrder           = errors.New("no order awaiting payment")
	ErrIncompletePaymentDetails = errors.New("incomplete payment details")
	ErrNoReviewTarget           = errors.New("no review target selected")
)
