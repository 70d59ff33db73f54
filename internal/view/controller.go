// Package view is the finite state machine over the storefront's named
// views. A transition hydrates the destination's stores before the
// view becomes current.
package view

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/store"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "view").Logger()

type View string

const (
	Catalog  View = "catalog"
	Cart     View = "cart"
	Orders   View = "orders"
	Reviews  View = "reviews"
	Wishlist View = "wishlist"
	Login    View = "login"
	Register View = "register"
)

type Controller struct {
	mu      sync.RWMutex
	current View

	catalog  *store.Catalog
	cart     *store.Cart
	orders   *store.Orders
	reviews  *store.Reviews
	wishlist *store.Wishlist
}

func NewController(catalog *store.Catalog, cart *store.Cart, orders *store.Orders, reviews *store.Reviews, wishlist *store.Wishlist) *Controller {
	return &Controller{
		current:  Catalog,
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		reviews:  reviews,
		wishlist: wishlist,
	}
}

func (c *Controller) Current() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Transition hydrates the destination and makes it the current view.
// Hydration failures degrade to empty collections and never block the
// transition; an unknown view refuses it.
func (c *Controller) Transition(ctx context.Context, target View) error {
	var err error
	switch target {
	case Catalog:
		err = c.catalog.Hydrate(ctx)
	case Cart:
		err = c.cart.Hydrate(ctx)
	case Orders:
		err = c.orders.Hydrate(ctx)
	case Reviews:
		err = c.reviews.Hydrate(ctx)
	case Wishlist:
		err = c.wishlist.Hydrate(ctx)
	case Login, Register:
		// input-only views, nothing to hydrate
	default:
		return fmt.Errorf("unknown view %q", target)
	}
	if err != nil {
		logger.Warn().Err(err).Str("view", string(target)).Msg("hydrate view")
	}

	c.setCurrent(target)
	return nil
}

// Home returns to the catalog with a cleared search and page 1.
func (c *Controller) Home(ctx context.Context) {
	if err := c.catalog.Reset(ctx); err != nil {
		logger.Warn().Err(err).Msg("reload catalog")
	}
	c.setCurrent(Catalog)
}

// RedirectToLogin implements store.Navigator for gated refusals and
// auth failures.
func (c *Controller) RedirectToLogin() {
	c.setCurrent(Login)
}

func (c *Controller) setCurrent(target View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = target
}
