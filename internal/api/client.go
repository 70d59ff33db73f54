package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/Kapil927/CU-Shop/internal/config"
	"github.com/Kapil927/CU-Shop/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "api").Logger()

// Client is the gateway to the remote commerce service. The session
// cookie lives in the client's jar, so no operation takes a credential.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.APIConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.Timeout,
		},
	}, nil
}

// --- Catalog ---

func (c *Client) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/products", nil)
}

func (c *Client) SearchProducts(ctx context.Context, keyword string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	return c.get(ctx, "/products/search", q)
}

// ProductFilter narrows the catalog. Zero-valued criteria are omitted
// from the request rather than sent empty.
type ProductFilter struct {
	CategoryID int64
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	MinRating  float64
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.CategoryID != 0 {
		q.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}
	if !f.MinPrice.IsZero() {
		q.Set("minPrice", f.MinPrice.String())
	}
	if !f.MaxPrice.IsZero() {
		q.Set("maxPrice", f.MaxPrice.String())
	}
	if f.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	return q
}

func (c *Client) FilterProducts(ctx context.Context, f ProductFilter) (json.RawMessage, error) {
	return c.get(ctx, "/products/filter", f.query())
}

func (c *Client) ListCategories(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/categories", nil)
}

// --- Auth ---

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.postJSON(ctx, "/auth/register", req)
	return err
}

// Login is form-encoded, matching the service's login filter.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	_, err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	return err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, "")
	return err
}

// --- Cart ---

func (c *Client) FetchCart(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/cart", nil)
}

func (c *Client) AddToCart(ctx context.Context, productID int64, qty int) error {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("qty", strconv.Itoa(qty))

	_, err := c.do(ctx, http.MethodPost, "/cart/add", q, nil, "")
	return err
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, qty int) error {
	q := url.Values{}
	q.Set("qty", strconv.Itoa(qty))

	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/update/%d", itemID), q, nil, "")
	return err
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", itemID), nil, nil, "")
	return err
}

func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil, "")
	return err
}

// --- Orders and payment ---

// Checkout converts the current remote cart into a new order.
func (c *Client) Checkout(ctx context.Context) (*models.Order, error) {
	raw, err := c.do(ctx, http.MethodPost, "/orders/checkout", nil, nil, "")
	if err != nil {
		return nil, err
	}

	order := &models.Order{}
	if err := json.Unmarshal(raw, order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return order, nil
}

func (c *Client) OrderHistory(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/orders/history", nil)
}

func (c *Client) ProcessPayment(ctx context.Context, orderID int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/payment/process/%d", orderID), nil, nil, "")
	return err
}

// --- Wishlist ---

func (c *Client) FetchWishlist(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/wishlist", nil)
}

func (c *Client) AddToWishlist(ctx context.Context, productID int64) error {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))

	_, err := c.do(ctx, http.MethodPost, "/wishlist/add", q, nil, "")
	return err
}

// RemoveFromWishlist deletes by entry id; the service also expects the
// product id as a query parameter.
func (c *Client) RemoveFromWishlist(ctx context.Context, entryID, productID int64) error {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))

	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/remove/%d", entryID), q, nil, "")
	return err
}

// --- Reviews ---

func (c *Client) FetchReviews(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/reviews", nil)
}

type ReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (c *Client) AddReview(ctx context.Context, req ReviewRequest) error {
	_, err := c.postJSON(ctx, "/reviews/add", req)
	return err
}

func (c *Client) UpdateReview(ctx context.Context, reviewID int64, rating int, comment string) error {
	body := struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}{Rating: rating, Comment: comment}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode review update: %w", err)
	}

	_, err = c.do(ctx, http.MethodPut, fmt.Sprintf("/reviews/update/%d", reviewID), nil,
		bytes.NewReader(payload), "application/json")
	return err
}

func (c *Client) DeleteReview(ctx context.Context, reviewID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/delete/%d", reviewID), nil, nil, "")
	return err
}

// --- Plumbing ---

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

func (c *Client) postJSON(ctx context.Context, path string, v any) (json.RawMessage, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("request_id", requestID).Msgf("%s %s failed", method, path)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn().Str("request_id", requestID).Int("status", resp.StatusCode).Msgf("%s %s rejected", method, path)
		return nil, &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(payload))}
	}

	return payload, nil
}
