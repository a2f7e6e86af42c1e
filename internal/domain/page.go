package domain

import "math"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams selects one page of the itinerary listing. Page is
// 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams applies defaults to optional page and limit values.
// Missing or non-positive values fall back to page 1 and DefaultPageLimit;
// limits above MaxPageLimit are clamped. Page is capped so Offset cannot
// overflow.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	p.Page = min(p.Page-1, math.MaxInt/p.Limit) + 1
	return p
}

// Offset is the number of itineraries before the page. It saturates at
// math.MaxInt for pages too large to address.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of the page within n items.
// Pages past the end yield an empty window at n.
func (p PaginationParams) Window(n int) (start, end int) {
	start = min(p.Offset(), n)
	end = start + min(max(p.Limit, 0), n-start)
	return start, end
}
