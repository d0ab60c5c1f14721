package domain

// Pagination defaults.
const (
	// DefaultPerPage is the storefront's listing page size.
	DefaultPerPage = 12

	// PageWindowSize is the number of page links shown around the current page.
	PageWindowSize = 5
)

// Page is one page of a paginated listing.
type Page struct {
	Number     int       `json:"page"`
	PerPage    int       `json:"perPage"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
	Window     []int     `json:"window"`
	Items      []Product `json:"items"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// TotalPages returns ceil(total/perPage). perPage <= 0 yields 0.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// PageWindow returns up to size consecutive page numbers around current,
// shifted so the window stays inside [1, totalPages].
func PageWindow(current, totalPages, size int) []int {
	if totalPages <= 0 || size <= 0 {
		return []int{}
	}
	current = max(1, min(current, totalPages))
	start := max(1, current-size/2)
	end := min(totalPages, start+size-1)
	if end-start+1 < size {
		start = max(1, end-size+1)
	}
	window := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		window = append(window, n)
	}
	return window
}
