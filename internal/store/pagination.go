package store

import (
	"github.com/Kapil927/CU-Shop/internal/models"
)

// OffsetPage is the derived, presentation-ready slice of the catalog's
// canonical collection. Never stored; recomputed on every read.
type OffsetPage struct {
	Items      []models.Product
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate returns the contiguous slice of the current collection for
// the current page. Page 1 of an empty collection is empty. pageSize
// is clamped to a minimum of 1 so a misconfigured size cannot divide
// by zero.
func (c *Catalog) Paginate(pageSize int) OffsetPage {
	if pageSize < 1 {
		pageSize = 1
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	total := len(c.products)
	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	start := (c.page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return OffsetPage{
		Items:      c.products[start:end],
		Total:      total,
		Page:       c.page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// PageLink is one slot in the windowed page strip: either a page
// number or an ellipsis placeholder for a collapsed run.
type PageLink struct {
	Number   int
	Ellipsis bool
}

// PageWindow collapses the page list for display: first and last page
// always shown, the current page with one neighbor each side, and a
// single ellipsis per collapsed run.
func PageWindow(totalPages, current int) []PageLink {
	var links []PageLink
	for page := 1; page <= totalPages; page++ {
		switch {
		case page == 1 || page == totalPages ||
			(page >= current-1 && page <= current+1):
			links = append(links, PageLink{Number: page})
		case page == current-2 || page == current+2:
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	return links
}
