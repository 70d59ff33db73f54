package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/models"
	"github.com/Kapil927/CU-Shop/internal/normalize"
)

// Orders holds the order history and drives the two-step checkout:
// NoOrder -> PendingPayment -> Paid, with a cancel path back to
// NoOrder. There is no path back from Paid.
type Orders struct {
	mu sync.RWMutex

	api     Gateway
	session *Session
	cart    *Cart
	notify  Notifier

	orders         []models.Order
	pendingOrderID int64
}

func NewOrders(gw Gateway, session *Session, cart *Cart, notify Notifier) *Orders {
	return &Orders{
		api:     gw,
		session: session,
		cart:    cart,
		notify:  notify,
	}
}

func (o *Orders) Hydrate(ctx context.Context) error {
	raw, err := o.api.OrderHistory(ctx)
	if err != nil {
		o.setOrders(nil)
		return fmt.Errorf("fetch orders: %w", err)
	}

	orders, err := normalize.Decode[models.Order](raw)
	if err != nil {
		o.setOrders(nil)
		return fmt.Errorf("fetch orders: %w", err)
	}

	o.setOrders(orders)
	return nil
}

func (o *Orders) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.orders = nil
	o.pendingOrderID = 0
}

// Checkout converts the current cart into an order awaiting payment.
// It refuses outright for guests and for an empty cart, and only on
// success should the caller open the payment flow.
func (o *Orders) Checkout(ctx context.Context) (*models.Order, error) {
	if err := o.session.Gate("Please login to checkout"); err != nil {
		return nil, err
	}
	if len(o.cart.Items()) == 0 {
		o.notify.Notify("Checkout failed, your cart is empty")
		return nil, ErrEmptyCart
	}

	order, err := o.api.Checkout(ctx)
	if err != nil {
		o.notify.Notify("Checkout failed, login or cart empty")
		if api.IsAuthFailure(err) {
			o.session.RedirectToLogin()
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}

	o.mu.Lock()
	o.pendingOrderID = order.ID
	o.mu.Unlock()
	return order, nil
}

type PaymentDetails struct {
	CardholderName string
	CardNumber     string
	Expiry         string
	CVV            string
}

func (p PaymentDetails) complete() bool {
	for _, field := range []string{p.CardholderName, p.CardNumber, p.Expiry, p.CVV} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// ConfirmPayment settles the pending order. With incomplete details or
// no pending order, the remote call is never issued. On failure the
// payment flow stays open for a retry.
func (o *Orders) ConfirmPayment(ctx context.Context, details PaymentDetails) error {
	o.mu.RLock()
	pending := o.pendingOrderID
	o.mu.RUnlock()

	if pending == 0 {
		return ErrNoPendingOrder
	}
	if !details.complete() {
		o.notify.Notify("Please fill in all payment details")
		return ErrIncompletePaymentDetails
	}

	if err := o.api.ProcessPayment(ctx, pending); err != nil {
		o.notify.Notify("Payment failed, please try again.")
		return fmt.Errorf("process payment: %w", err)
	}

	o.mu.Lock()
	o.pendingOrderID = 0
	o.mu.Unlock()

	o.cart.Clear()
	o.notify.Notify("Payment successful! Order placed.")
	o.refetch(ctx)
	return nil
}

// CancelPayment dismisses the payment flow without confirming.
func (o *Orders) CancelPayment() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pendingOrderID = 0
}

func (o *Orders) PendingOrder() (int64, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.pendingOrderID, o.pendingOrderID != 0
}

func (o *Orders) History() []models.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.orders
}

func (o *Orders) refetch(ctx context.Context) {
	if err := o.Hydrate(ctx); err != nil {
		logger.Warn().Err(err).Msg("refetch orders")
	}
}

func (o *Orders) setOrders(orders []models.Order) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.orders = orders
}
