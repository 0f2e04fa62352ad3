package domain

import (
	"strings"
	"unicode/utf8"
)

// SortBy is the listing sort order.
type SortBy string

const (
	SortPriceLowHigh SortBy = "price_low_high"
	SortPriceHighLow SortBy = "price_high_low"
	SortRating       SortBy = "rating"
	SortCreatedAt    SortBy = "created_at"

	DefaultSortBy = SortCreatedAt
)

// Valid reports whether s belongs to the closed set of sort orders.
func (s SortBy) Valid() bool {
	switch s {
	case SortPriceLowHigh, SortPriceHighLow, SortRating, SortCreatedAt:
		return true
	}
	return false
}

// PriceRange is a predefined price bucket.
type PriceRange string

const (
	PriceAll        PriceRange = "all"
	PriceUnder500   PriceRange = "under-500"
	Price500To1000  PriceRange = "500-1000"
	Price1000To2000 PriceRange = "1000-2000"
	PriceOver2000   PriceRange = "over-2000"

	DefaultPriceRange = PriceAll
)

// Valid reports whether r belongs to the closed set of price ranges.
func (r PriceRange) Valid() bool {
	switch r {
	case PriceAll, PriceUnder500, Price500To1000, Price1000To2000, PriceOver2000:
		return true
	}
	return false
}

// Contains reports whether price falls in the bucket.
// Lower bounds are exclusive except for the first bucket, upper bounds inclusive,
// so every non-negative price lands in exactly one bucket.
func (r PriceRange) Contains(price float64) bool {
	switch r {
	case PriceUnder500:
		return price < 500
	case Price500To1000:
		return price >= 500 && price <= 1000
	case Price1000To2000:
		return price > 1000 && price <= 2000
	case PriceOver2000:
		return price > 2000
	default:
		return true
	}
}

// MinSearchLength is the number of characters that switches the listing to search mode.
const MinSearchLength = 2

// ListingPageSize is the number of products per page in catalog mode.
const ListingPageSize = 12

// FilterState is the normalized set of listing filters, derived from the URL query.
// Empty strings stand for "no filter".
type FilterState struct {
	CategoryID  string     `json:"categoryId"`
	SortBy      SortBy     `json:"sortBy"`
	Size        string     `json:"size"`
	Material    string     `json:"material"`
	PriceRange  PriceRange `json:"priceRange"`
	CurrentPage int        `json:"currentPage"`
	Search      string     `json:"search"`
}

// DefaultFilterState is the state of a bare listing URL.
func DefaultFilterState() FilterState {
	return FilterState{
		SortBy:      DefaultSortBy,
		PriceRange:  DefaultPriceRange,
		CurrentPage: 1,
	}
}

// SearchQuery returns the trimmed search text.
func (f FilterState) SearchQuery() string {
	return strings.TrimSpace(f.Search)
}

// SearchMode reports whether the listing is served from the search index.
func (f FilterState) SearchMode() bool {
	return utf8.RuneCountInString(f.SearchQuery()) >= MinSearchLength
}
