// Package filterstate converts listing URL queries to FilterState and back.
//
// The URL query is the only representation of the filters: every setter returns
// a new set of values for the client to navigate to, the input is never mutated.
package filterstate

import (
	"net/url"
	"strconv"
	"strings"

	"sofadeal/internal/domain"
)

// Recognized query keys.
const (
	KeyCategoryID  = "categoryId"
	KeySortBy      = "sortBy"
	KeySize        = "size"
	KeyMaterial    = "material"
	KeyPriceRange  = "priceRange"
	KeyCurrentPage = "currentPage"
	KeySearch      = "search"
)

// Keys lists every recognized key, in encoding order.
var Keys = []string{
	KeyCategoryID,
	KeySortBy,
	KeySize,
	KeyMaterial,
	KeyPriceRange,
	KeyCurrentPage,
	KeySearch,
}

// Parse builds a FilterState from query values. It never fails: missing or invalid
// values fall back to their defaults.
func Parse(values url.Values) domain.FilterState {
	state := domain.DefaultFilterState()

	state.CategoryID = values.Get(KeyCategoryID)
	state.Size = values.Get(KeySize)
	state.Material = values.Get(KeyMaterial)
	state.Search = values.Get(KeySearch)

	if sortBy := domain.SortBy(values.Get(KeySortBy)); sortBy.Valid() {
		state.SortBy = sortBy
	}
	if priceRange := domain.PriceRange(values.Get(KeyPriceRange)); priceRange.Valid() {
		state.PriceRange = priceRange
	}
	if page, err := strconv.Atoi(strings.TrimSpace(values.Get(KeyCurrentPage))); err == nil && page > 0 {
		state.CurrentPage = page
	}

	return state
}

// ParseQuery parses a raw query string ("a=1&b=2", with or without a leading "?").
// Malformed pairs are skipped.
func ParseQuery(raw string) domain.FilterState {
	return Parse(Values(raw))
}

// Values parses a raw query string, keeping every pair that decodes.
func Values(raw string) url.Values {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/") || strings.Contains(raw, "://") {
		// A path or full URL was given: keep only its query.
		_, raw, _ = strings.Cut(raw, "?")
	}
	raw = strings.TrimPrefix(raw, "?")
	values, _ := url.ParseQuery(raw) // partial result on error
	if values == nil {
		values = url.Values{}
	}
	return values
}

// Encode writes the non-default fields of state as query values.
// Parse(Encode(s)) == s for every state produced by Parse.
func Encode(state domain.FilterState) url.Values {
	values := url.Values{}
	if state.CategoryID != "" {
		values.Set(KeyCategoryID, state.CategoryID)
	}
	if state.SortBy != "" && state.SortBy != domain.DefaultSortBy {
		values.Set(KeySortBy, string(state.SortBy))
	}
	if state.Size != "" {
		values.Set(KeySize, state.Size)
	}
	if state.Material != "" {
		values.Set(KeyMaterial, state.Material)
	}
	if state.PriceRange != "" && state.PriceRange != domain.DefaultPriceRange {
		values.Set(KeyPriceRange, string(state.PriceRange))
	}
	if state.CurrentPage > 1 {
		values.Set(KeyCurrentPage, strconv.Itoa(state.CurrentPage))
	}
	if state.Search != "" {
		values.Set(KeySearch, state.Search)
	}
	return values
}

// URL joins the listing base path and the query. An empty query gives the bare path.
func URL(basePath string, values url.Values) string {
	if basePath == "" {
		basePath = "/"
	}
	encoded := values.Encode()
	if encoded == "" {
		return basePath
	}
	return basePath + "?" + encoded
}

// Canonical returns the canonical URL of a raw query: recognized keys normalized,
// defaults dropped, unrecognized keys kept as-is.
func Canonical(basePath string, current url.Values) string {
	values := clone(current)
	for _, key := range Keys {
		values.Del(key)
	}
	for key, vs := range Encode(Parse(current)) {
		values[key] = vs
	}
	return URL(basePath, values)
}

func clone(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, vs := range values {
		out[key] = append([]string(nil), vs...)
	}
	return out
}
