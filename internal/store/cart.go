package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/models"
	"github.com/Kapil927/CU-Shop/internal/normalize"
	"github.com/shopspring/decimal"
)

var taxRate = decimal.RequireFromString("0.18")

// Cart holds the shopper's line items. Every mutation is followed by a
// full refetch; the local collection is never patched optimistically.
type Cart struct {
	mu sync.RWMutex

	api     Gateway
	session *Session
	notify  Notifier

	items []models.CartItem
}

func NewCart(gw Gateway, session *Session, notify Notifier) *Cart {
	return &Cart{
		api:     gw,
		session: session,
		notify:  notify,
	}
}

func (c *Cart) Hydrate(ctx context.Context) error {
	raw, err := c.api.FetchCart(ctx)
	if err != nil {
		c.setItems(nil)
		return fmt.Errorf("fetch cart: %w", err)
	}

	items, err := normalize.Decode[models.CartItem](raw)
	if err != nil {
		c.setItems(nil)
		return fmt.Errorf("fetch cart: %w", err)
	}

	c.setItems(items)
	return nil
}

func (c *Cart) Clear() {
	c.setItems(nil)
}

func (c *Cart) AddItem(ctx context.Context, productID int64, qty int) error {
	if err := c.session.Gate("Please login to add items to your cart"); err != nil {
		return err
	}
	if qty < 1 {
		qty = 1
	}

	if err := c.api.AddToCart(ctx, productID, qty); err != nil {
		c.notify.Notify("Failed to add to cart")
		if api.IsAuthFailure(err) {
			c.session.RedirectToLogin()
		}
		return fmt.Errorf("add to cart: %w", err)
	}

	c.notify.Notify("Added to cart")
	c.refetch(ctx)
	return nil
}

func (c *Cart) RemoveItem(ctx context.Context, itemID int64) error {
	if err := c.session.Gate("Please login to manage your cart"); err != nil {
		return err
	}

	if err := c.api.RemoveCartItem(ctx, itemID); err != nil {
		c.notify.Notify("Failed to remove item")
		if api.IsAuthFailure(err) {
			c.session.RedirectToLogin()
		}
		return fmt.Errorf("remove cart item: %w", err)
	}

	c.notify.Notify("Item removed")
	c.refetch(ctx)
	return nil
}

// SetQuantity clamps newQty to a minimum of 1 before sending.
func (c *Cart) SetQuantity(ctx context.Context, itemID int64, newQty int) error {
	if err := c.session.Gate("Please login to manage your cart"); err != nil {
		return err
	}
	if newQty < 1 {
		newQty = 1
	}

	if err := c.api.UpdateCartItem(ctx, itemID, newQty); err != nil {
		c.notify.Notify("Failed to update quantity")
		if api.IsAuthFailure(err) {
			c.session.RedirectToLogin()
		}
		return fmt.Errorf("update cart item: %w", err)
	}

	c.refetch(ctx)
	return nil
}

// Empty clears the whole remote cart.
func (c *Cart) Empty(ctx context.Context) error {
	if err := c.session.Gate("Please login to manage your cart"); err != nil {
		return err
	}

	if err := c.api.ClearCart(ctx); err != nil {
		c.notify.Notify("Failed to clear cart")
		if api.IsAuthFailure(err) {
			c.session.RedirectToLogin()
		}
		return fmt.Errorf("clear cart: %w", err)
	}

	c.notify.Notify("Cart cleared")
	c.refetch(ctx)
	return nil
}

func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

// Totals are pure derivations from the line collection: 18% tax,
// shipping always free.
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
	ItemCount  int
}

func (c *Cart) Totals() Totals {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subtotal := decimal.Zero
	count := 0
	for _, item := range c.items {
		if item.Product == nil {
			continue
		}
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		subtotal = subtotal.Add(line)
		count += item.Qty
	}

	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
		ItemCount:  count,
	}
}

// refetch pulls the authoritative cart after a successful mutation; a
// failed refetch degrades silently like any other read.
func (c *Cart) refetch(ctx context.Context) {
	if err := c.Hydrate(ctx); err != nil {
		logger.Warn().Err(err).Msg("refetch cart")
	}
}

func (c *Cart) setItems(items []models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}
