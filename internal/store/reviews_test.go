package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequiresTargetProduct(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	reviews := NewReviews(h.gw, h.session, h.notices)
	require.NoError(t, h.login(ctx, "alice"))

	err := reviews.Submit(ctx, 0, 5, "great")

	require.ErrorIs(t, err, ErrNoReviewTarget)
	assert.Equal(t, 0, h.gw.callCount("review-add"))
}

func TestSubmitRefusedForGuests(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	reviews := NewReviews(h.gw, h.session, h.notices)

	err := reviews.Submit(ctx, 5, 4, "nice")

	require.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, 0, h.gw.callCount("review-add"))
	assert.Equal(t, "Please login to write a review", h.notices.last())
}

func TestSubmitRefetchesReviews(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	reviews := NewReviews(h.gw, h.session, h.notices)
	require.NoError(t, h.login(ctx, "alice"))

	h.gw.payloads["reviews"] = json.RawMessage(`[
		{"id":1,"product":{"id":5,"price":250},"user":{"username":"alice"},
		 "rating":4,"comment":"nice","createdAt":"2026-08-30T18:05:00"}
	]`)
	require.NoError(t, reviews.Submit(ctx, 5, 4, "nice"))

	assert.Contains(t, h.gw.calls, "review-add:5")
	assert.Equal(t, "Review submitted", h.notices.last())
	require.Len(t, reviews.All(), 1)
	assert.Equal(t, "2026-08-30T18:05:00", reviews.All()[0].CreatedAt)
}

func TestEditAndDeleteNotify(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	reviews := NewReviews(h.gw, h.session, h.notices)
	require.NoError(t, h.login(ctx, "alice"))

	require.NoError(t, reviews.Edit(ctx, 9, 2, "changed my mind"))
	assert.Contains(t, h.gw.calls, "review-update:9")
	assert.Equal(t, "Review updated successfully", h.notices.last())

	require.NoError(t, reviews.Delete(ctx, 9))
	assert.Contains(t, h.gw.calls, "review-delete:9")
	assert.Equal(t, "Review deleted successfully", h.notices.last())
}

func TestDeleteAuthFailureRedirects(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	reviews := NewReviews(h.gw, h.session, h.notices)
	require.NoError(t, h.login(ctx, "alice"))

	h.gw.errs["review-delete"] = &api.RequestError{Status: 403, Message: "not yours"}
	err := reviews.Delete(ctx, 9)

	require.Error(t, err)
	assert.Equal(t, "Failed to delete review", h.notices.last())
	assert.Equal(t, 1, h.nav.count())
}

func TestHasReviewedMatchesProductAndAuthor(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	reviews := NewReviews(h.gw, h.session, h.notices)

	h.gw.payloads["reviews"] = json.RawMessage(`[
		{"id":1,"product":{"id":5,"price":250},"user":{"username":"alice"},"rating":4},
		{"id":2,"product":{"id":6,"price":100},"user":{"username":"bob"},"rating":5}
	]`)
	require.NoError(t, reviews.Hydrate(ctx))

	assert.False(t, reviews.HasReviewed(5), "guests never match")

	require.NoError(t, h.login(ctx, "alice"))
	assert.True(t, reviews.HasReviewed(5))
	assert.False(t, reviews.HasReviewed(6), "bob's review does not count for alice")
	assert.False(t, reviews.HasReviewed(99))
}
