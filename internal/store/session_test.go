package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSetsIdentityAndHydrates(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	cart := NewCart(h.gw, h.session, h.notices)
	orders := NewOrders(h.gw, h.session, cart, h.notices)
	wishlist := NewWishlist(h.gw, h.session, h.notices)
	h.session.Track(cart, orders, wishlist)

	require.NoError(t, h.login(ctx, "alice"))

	username, ok := h.session.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", username)

	assert.Equal(t, 1, h.gw.callCount("cart"))
	assert.Equal(t, 1, h.gw.callCount("orders"))
	assert.Equal(t, 1, h.gw.callCount("wishlist"))
}

func TestLoginFailureLeavesIdentityUnset(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.gw.errs["login"] = &api.RequestError{Status: 401, Message: "bad credentials"}

	err := h.login(ctx, "alice")
	require.Error(t, err)
	assert.False(t, h.session.Authenticated())
	assert.Equal(t, "Login failed, check credentials", h.notices.last())
}

func TestLogoutClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	cart := NewCart(h.gw, h.session, h.notices)
	h.session.Track(cart)
	require.NoError(t, h.login(ctx, "alice"))

	h.gw.payloads["cart"] = []byte(`[{"id":1,"qty":2,"product":{"id":7,"name":"Mug","price":250}}]`)
	require.NoError(t, cart.Hydrate(ctx))
	require.Len(t, cart.Items(), 1)

	h.gw.errs["logout"] = errors.New("connection reset")
	h.session.Logout(ctx)

	assert.False(t, h.session.Authenticated())
	assert.Empty(t, cart.Items())
}

func TestRegisterSurfacesServerMessageAndRedirects(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	h.gw.errs["register"] = &api.RequestError{Status: 400, Message: "Username already exists"}

	err := h.session.Register(ctx, RegisterForm{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", h.notices.last())
	assert.Zero(t, h.nav.count())

	delete(h.gw.errs, "register")
	require.NoError(t, h.session.Register(ctx, RegisterForm{Username: "alice", Password: "pw"}))
	assert.Equal(t, 1, h.nav.count())
}

func TestGateRefusesGuests(t *testing.T) {
	h := newHarness()

	err := h.session.Gate("Please login")
	require.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, "Please login", h.notices.last())
	assert.Equal(t, 1, h.nav.count())

	require.NoError(t, h.login(context.Background(), "alice"))
	assert.NoError(t, h.session.Gate("Please login"))
	assert.Equal(t, 1, h.nav.count())
}
