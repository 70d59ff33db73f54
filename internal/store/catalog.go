package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Kapil927/CU-Shop/internal/api"
	"github.com/Kapil927/CU-Shop/internal/models"
	"github.com/Kapil927/CU-Shop/internal/normalize"
)

// Catalog holds the canonical product and category collections plus
// the transient browse parameters (search term, filter criteria,
// current page). Search and filter replace the product collection
// wholesale; a sequence number makes sure a slow response never
// overwrites the result of a later-issued request.
type Catalog struct {
	mu sync.RWMutex

	api    Gateway
	notify Notifier

	products   []models.Product
	categories []models.Category
	searchTerm string
	filter     api.ProductFilter
	page       int
	seq        uint64
}

func NewCatalog(gw Gateway, notify Notifier) *Catalog {
	return &Catalog{
		api:    gw,
		notify: notify,
		page:   1,
	}
}

// Hydrate loads products and categories for the catalog view. The two
// fetches are independent; a failed product load does not skip the
// category list.
func (c *Catalog) Hydrate(ctx context.Context) error {
	return errors.Join(c.LoadAll(ctx), c.LoadCategories(ctx))
}

// LoadAll fetches the full catalog, replacing the canonical collection
// and resetting the page to 1. On failure the collection degrades to
// empty.
func (c *Catalog) LoadAll(ctx context.Context) error {
	seq := c.begin()

	raw, err := c.api.ListProducts(ctx)
	if err != nil {
		c.replace(seq, nil)
		return fmt.Errorf("load products: %w", err)
	}

	products, err := normalize.Decode[models.Product](raw)
	if err != nil {
		c.replace(seq, nil)
		return fmt.Errorf("load products: %w", err)
	}

	c.replace(seq, products)
	return nil
}

// Search issues a keyword search; a blank term is equivalent to
// LoadAll.
func (c *Catalog) Search(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	c.searchTerm = term
	c.mu.Unlock()

	if term == "" {
		return c.LoadAll(ctx)
	}

	seq := c.begin()

	raw, err := c.api.SearchProducts(ctx, term)
	if err != nil {
		c.notify.Notify("Search failed")
		return fmt.Errorf("search products: %w", err)
	}

	products, err := normalize.Decode[models.Product](raw)
	if err != nil {
		c.notify.Notify("Search failed")
		return fmt.Errorf("search products: %w", err)
	}

	c.replace(seq, products)
	return nil
}

func (c *Catalog) SetFilter(f api.ProductFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

func (c *Catalog) Filter() api.ProductFilter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// ApplyFilters issues a filter request with the current criteria.
func (c *Catalog) ApplyFilters(ctx context.Context) error {
	return c.filterWith(ctx, c.Filter(), "Filters applied")
}

// FilterByCategory narrows the current criteria to one category and
// applies them.
func (c *Catalog) FilterByCategory(ctx context.Context, categoryID int64) error {
	c.mu.Lock()
	c.filter.CategoryID = categoryID
	f := c.filter
	c.mu.Unlock()

	msg := "Filters applied"
	if name, ok := c.categoryName(categoryID); ok {
		msg = fmt.Sprintf("Filtered by %s", name)
	}
	return c.filterWith(ctx, f, msg)
}

func (c *Catalog) filterWith(ctx context.Context, f api.ProductFilter, msg string) error {
	seq := c.begin()

	raw, err := c.api.FilterProducts(ctx, f)
	if err != nil {
		c.notify.Notify("Filter failed")
		return fmt.Errorf("filter products: %w", err)
	}

	products, err := normalize.Decode[models.Product](raw)
	if err != nil {
		c.notify.Notify("Filter failed")
		return fmt.Errorf("filter products: %w", err)
	}

	if c.replace(seq, products) {
		c.notify.Notify(msg)
	}
	return nil
}

// ResetFilters clears all criteria and reloads the full catalog.
func (c *Catalog) ResetFilters(ctx context.Context) error {
	c.mu.Lock()
	c.filter = api.ProductFilter{}
	c.mu.Unlock()
	return c.LoadAll(ctx)
}

// Reset clears the search term and reloads; the "go home" move.
func (c *Catalog) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.searchTerm = ""
	c.mu.Unlock()
	return c.LoadAll(ctx)
}

// LoadCategories refreshes the category list, keeping the previous one
// on failure.
func (c *Catalog) LoadCategories(ctx context.Context) error {
	raw, err := c.api.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	categories, err := normalize.Decode[models.Category](raw)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	return nil
}

func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

func (c *Catalog) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories
}

func (c *Catalog) SearchTerm() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchTerm
}

func (c *Catalog) Page() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

func (c *Catalog) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
}

// begin stakes a claim on the next collection replacement.
func (c *Catalog) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// replace installs products as the canonical collection and resets the
// page, unless a later request has claimed the collection since.
func (c *Catalog) replace(seq uint64, products []models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		logger.Debug().Uint64("seq", seq).Msg("stale catalog response dropped")
		return false
	}
	c.products = products
	c.page = 1
	return true
}

func (c *Catalog) categoryName(categoryID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.ID == categoryID {
			return cat.Name, true
		}
	}
	return "", false
}
