package news

import "fmt"

// DefaultPageSize is the number of cards per page
const DefaultPageSize = 15

// Empty-state copy
const (
	EmptyMessage = "No news for this view."
	EmptyHint    = "Try another archive date."
)

// Page is one page of the feed
type Page struct {
	Items        []Item `json:"items"`
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
	TotalPages   int    `json:"total_pages"`
	TotalItems   int    `json:"total_items"`
	HasPrev      bool   `json:"has_prev"`
	HasNext      bool   `json:"has_next"`
	Info         string `json:"info"`
	EmptyMessage string `json:"empty_message,omitempty"`
	EmptyHint    string `json:"empty_hint,omitempty"`
}

// Paginate returns the requested page. Out of range pages are clamped into
// [1, TotalPages] and TotalPages is never below 1.
func Paginate(items []Item, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	p := Page{
		Items:      append([]Item{}, items[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalItems: total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Info:       fmt.Sprintf("Page %d / %d • %d items", page, totalPages, total),
	}
	if len(p.Items) == 0 {
		p.EmptyMessage = EmptyMessage
		p.EmptyHint = EmptyHint
	}
	return p
}
