package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/models"
)

// fakeGateway records every call as "op" or "op:args" and answers from
// canned payloads and errors keyed by op name.
type fakeGateway struct {
	mu       sync.Mutex
	calls    []string
	payloads map[string]json.RawMessage
	errs     map[string]error

	checkoutOrder *models.Order
	searchFn      func(keyword string) (json.RawMessage, error)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		payloads: make(map[string]json.RawMessage),
		errs:     make(map[string]error),
	}
}

func (g *fakeGateway) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
}

func (g *fakeGateway) callCount(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, call := range g.calls {
		if call == op || len(call) > len(op) && call[:len(op)+1] == op+":" {
			n++
		}
	}
	return n
}

func (g *fakeGateway) result(op string) (json.RawMessage, error) {
	g.record(op)
	if err := g.errs[op]; err != nil {
		return nil, err
	}
	if raw, ok := g.payloads[op]; ok {
		return raw, nil
	}
	return json.RawMessage(`[]`), nil
}

func (g *fakeGateway) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return g.result("products")
}

func (g *fakeGateway) SearchProducts(ctx context.Context, keyword string) (json.RawMessage, error) {
	g.record("search:" + keyword)
	if g.searchFn != nil {
		return g.searchFn(keyword)
	}
	if err := g.errs["search"]; err != nil {
		return nil, err
	}
	if raw, ok := g.payloads["search"]; ok {
		return raw, nil
	}
	return json.RawMessage(`[]`), nil
}

func (g *fakeGateway) FilterProducts(ctx context.Context, f api.ProductFilter) (json.RawMessage, error) {
	g.record(fmt.Sprintf("filter:%d", f.CategoryID))
	if err := g.errs["filter"]; err != nil {
		return nil, err
	}
	if raw, ok := g.payloads["filter"]; ok {
		return raw, nil
	}
	return json.RawMessage(`[]`), nil
}

func (g *fakeGateway) ListCategories(ctx context.Context) (json.RawMessage, error) {
	return g.result("categories")
}

func (g *fakeGateway) Register(ctx context.Context, req api.RegisterRequest) error {
	g.record("register:" + req.Username)
	return g.errs["register"]
}

func (g *fakeGateway) Login(ctx context.Context, username, password string) error {
	g.record("login:" + username)
	return g.errs["login"]
}

func (g *fakeGateway) Logout(ctx context.Context) error {
	g.record("logout")
	return g.errs["logout"]
}

func (g *fakeGateway) FetchCart(ctx context.Context) (json.RawMessage, error) {
	return g.result("cart")
}

func (g *fakeGateway) AddToCart(ctx context.Context, productID int64, qty int) error {
	g.record(fmt.Sprintf("cart-add:%d:%d", productID, qty))
	return g.errs["cart-add"]
}

func (g *fakeGateway) UpdateCartItem(ctx context.Context, itemID int64, qty int) error {
	g.record(fmt.Sprintf("cart-update:%d:%d", itemID, qty))
	return g.errs["cart-update"]
}

func (g *fakeGateway) RemoveCartItem(ctx context.Context, itemID int64) error {
	g.record(fmt.Sprintf("cart-remove:%d", itemID))
	return g.errs["cart-remove"]
}

func (g *fakeGateway) ClearCart(ctx context.Context) error {
	g.record("cart-clear")
	return g.errs["cart-clear"]
}

func (g *fakeGateway) Checkout(ctx context.Context) (*models.Order, error) {
	g.record("checkout")
	if err := g.errs["checkout"]; err != nil {
		return nil, err
	}
	if g.checkoutOrder != nil {
		return g.checkoutOrder, nil
	}
	return &models.Order{ID: 1, Status: models.OrderStatusPendingPayment}, nil
}

func (g *fakeGateway) OrderHistory(ctx context.Context) (json.RawMessage, error) {
	return g.result("orders")
}

func (g *fakeGateway) ProcessPayment(ctx context.Context, orderID int64) error {
	g.record(fmt.Sprintf("pay:%d", orderID))
	return g.errs["pay"]
}

func (g *fakeGateway) FetchWishlist(ctx context.Context) (json.RawMessage, error) {
	return g.result("wishlist")
}

func (g *fakeGateway) AddToWishlist(ctx context.Context, productID int64) error {
	g.record(fmt.Sprintf("wishlist-add:%d", productID))
	return g.errs["wishlist-add"]
}

func (g *fakeGateway) RemoveFromWishlist(ctx context.Context, entryID, productID int64) error {
	g.record(fmt.Sprintf("wishlist-remove:%d:%d", entryID, productID))
	return g.errs["wishlist-remove"]
}

func (g *fakeGateway) FetchReviews(ctx context.Context) (json.RawMessage, error) {
	return g.result("reviews")
}

func (g *fakeGateway) AddReview(ctx context.Context, req api.ReviewRequest) error {
	g.record(fmt.Sprintf("review-add:%d", req.ProductID))
	return g.errs["review-add"]
}

func (g *fakeGateway) UpdateReview(ctx context.Context, reviewID int64, rating int, comment string) error {
	g.record(fmt.Sprintf("review-update:%d", reviewID))
	return g.errs["review-update"]
}

func (g *fakeGateway) DeleteReview(ctx context.Context, reviewID int64) error {
	g.record(fmt.Sprintf("review-delete:%d", reviewID))
	return g.errs["review-delete"]
}

type noticeLog struct {
	mu   sync.Mutex
	msgs []string
}

func (n *noticeLog) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *noticeLog) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.msgs) == 0 {
		return ""
	}
	return n.msgs[len(n.msgs)-1]
}

type navSpy struct {
	mu        sync.Mutex
	redirects int
}

func (n *navSpy) RedirectToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects++
}

func (n *navSpy) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.redirects
}

// harness wires a session against the fake gateway; login goes through
// the normal path so tracked stores hydrate like production.
type harness struct {
	gw      *fakeGateway
	notices *noticeLog
	nav     *navSpy
	session *Session
}

func newHarness() *harness {
	gw := newFakeGateway()
	notices := &noticeLog{}
	nav := &navSpy{}
	session := NewSession(gw, notices)
	session.SetNavigator(nav)
	return &harness{gw: gw, notices: notices, nav: nav, session: session}
}

func (h *harness) login(ctx context.Context, username string) error {
	return h.session.Login(ctx, username, "secret")
}
