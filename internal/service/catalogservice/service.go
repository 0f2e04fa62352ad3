package catalogservice

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/catalogapi"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/projector"
)

// ProductRepository is the remote catalog as seen by the service.
type ProductRepository interface {
	Search(ctx context.Context, params catalogapi.SearchParams) (domain.CatalogPage, error)
	FindByID(ctx context.Context, id string) (domain.RawProduct, error)
}

// SearchIndex is the pre-populated product set used in search mode.
// The second result is false while the index has never been loaded.
type SearchIndex interface {
	Search(query string) ([]domain.RawProduct, bool)
}

// WishlistReader gives read access to a shopper's wishlist.
type WishlistReader interface {
	GetWishlist(ctx context.Context, sessionID string) (domain.Wishlist, error)
}

// TokenCounter keeps the latest listing request token of each session.
type TokenCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error)
	GetInt(ctx context.Context, key string) (int, error)
}

// listingTokenTTL bounds how long an idle session keeps its counter.
const listingTokenTTL = 10 * time.Minute

// Service builds product listings and product details.
type Service struct {
	repo     ProductRepository
	index    SearchIndex
	wishlist WishlistReader
	tokens   TokenCounter
	logger   logger.Logger
}

// NewService creates the catalog service. wishlist may be nil, and a nil
// tokens disables stale response detection.
func NewService(repo ProductRepository, index SearchIndex, wishlist WishlistReader, tokens TokenCounter, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		index:    index,
		wishlist: wishlist,
		tokens:   tokens,
		logger:   log,
	}
}

// ListProducts returns the listing for state. viewer identifies the shopper:
// when a newer listing request from the same session was issued while this one
// was in flight, the result is discarded with a StaleError. Viewers without a
// session are never considered stale.
func (s *Service) ListProducts(ctx context.Context, viewer string, state domain.FilterState) (domain.Listing, error) {
	token, guarded := s.issue(ctx, viewer)

	var (
		listing domain.Listing
		err     error
	)
	if state.SearchMode() {
		listing = s.searchListing(state)
	} else {
		listing, err = s.catalogListing(ctx, state)
		if err != nil {
			return domain.Listing{}, err
		}
	}

	if guarded {
		if current, stale := s.superseded(ctx, viewer, token); stale {
			s.logger.Debug("Discarding stale listing response.", map[string]interface{}{
				"viewer": viewer,
				"token":  token,
				"latest": current,
			})
			return domain.Listing{}, apperror.NewStaleError(uint64(token), uint64(current))
		}
	}

	s.decorate(ctx, viewer, listing.Items)
	return listing, nil
}

// GetProduct returns the detail view model of one product. size and material
// in state steer the variant selection the same way they do in listings.
func (s *Service) GetProduct(ctx context.Context, viewer, id string, state domain.FilterState) (domain.ProductViewModel, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return domain.ProductViewModel{}, apperror.NewValidationError("product id is required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ProductViewModel{}, fmt.Errorf("failed to load product %s: %w", id, err)
	}

	vm := []domain.ProductViewModel{projector.Project(product, state)}
	s.decorate(ctx, viewer, vm)
	return vm[0], nil
}

func (s *Service) searchListing(state domain.FilterState) domain.Listing {
	products, ok := s.index.Search(state.SearchQuery())
	if !ok {
		s.logger.Debug("Search index not initialized, returning no results.", nil)
	}

	items := FilterAndSort(projector.ProjectAll(products, state), state)
	return domain.Listing{
		Items:      items,
		Page:       1,
		TotalPages: 1,
		TotalItems: len(items),
		Mode:       domain.ModeSearch,
		Filters:    state,
	}
}

func (s *Service) catalogListing(ctx context.Context, state domain.FilterState) (domain.Listing, error) {
	page, err := s.repo.Search(ctx, SearchParams(state))
	if err != nil {
		s.logger.Warn("Catalog search failed.", map[string]interface{}{"error": err.Error()})
		return domain.Listing{}, err
	}

	totalPages := page.Meta.TotalPages
	if totalPages < 0 {
		totalPages = 0
	}
	return domain.Listing{
		Items:      projector.ProjectAll(page.Items, state),
		Page:       state.CurrentPage,
		TotalPages: totalPages,
		TotalItems: page.Meta.TotalItems,
		Mode:       domain.ModeCatalog,
		Filters:    state,
	}, nil
}

// SearchParams translates a filter state into the remote search request.
// A search text too short for search mode is still passed through.
func SearchParams(state domain.FilterState) catalogapi.SearchParams {
	page := state.CurrentPage
	if page < 1 {
		page = 1
	}
	return catalogapi.SearchParams{
		CategoryID: state.CategoryID,
		Size:       state.Size,
		Material:   state.Material,
		PriceRange: state.PriceRange,
		SortBy:     state.SortBy,
		SortOrder:  SortOrder(state.SortBy),
		Search:     state.SearchQuery(),
		Page:       page,
		Limit:      domain.ListingPageSize,
	}
}

// SortOrder is the remote sort direction for a sort key.
func SortOrder(sortBy domain.SortBy) string {
	if sortBy == domain.SortPriceLowHigh {
		return "asc"
	}
	return "desc"
}

// FilterAndSort applies the category and price-range filters and the sort order
// to projected items. It is used in search mode, where nothing is filtered remotely.
func FilterAndSort(items []domain.ProductViewModel, state domain.FilterState) []domain.ProductViewModel {
	out := make([]domain.ProductViewModel, 0, len(items))
	for _, vm := range items {
		if state.CategoryID != "" && vm.CategoryID != state.CategoryID {
			continue
		}
		if !state.PriceRange.Contains(vm.Price) {
			continue
		}
		out = append(out, vm)
	}

	switch state.SortBy {
	case domain.SortPriceLowHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceHighLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case domain.SortCreatedAt:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	// Rating is constant, so sorting by it keeps index order.
	return out
}

func listingTokenKey(viewer string) string {
	return "listing-token:" + viewer
}

// issue hands out the next request token of a session viewer. The second
// result is false when the request is not guarded.
func (s *Service) issue(ctx context.Context, viewer string) (int, bool) {
	if s.tokens == nil || !domain.IsSessionViewer(viewer) {
		return 0, false
	}
	token, err := s.tokens.IncrWithTTL(ctx, listingTokenKey(viewer), listingTokenTTL)
	if err != nil {
		s.logger.Warn("Listing token unavailable, stale check skipped.", map[string]interface{}{"error": err.Error()})
		return 0, false
	}
	return token, true
}

// superseded reports whether a later token was issued for viewer.
func (s *Service) superseded(ctx context.Context, viewer string, token int) (int, bool) {
	current, err := s.tokens.GetInt(ctx, listingTokenKey(viewer))
	if err != nil {
		if !cache.IsMiss(err) {
			s.logger.Warn("Listing token unavailable, stale check skipped.", map[string]interface{}{"error": err.Error()})
		}
		return 0, false
	}
	return current, current != token
}

func (s *Service) decorate(ctx context.Context, viewer string, items []domain.ProductViewModel) {
	if s.wishlist == nil || viewer == "" || len(items) == 0 {
		return
	}
	wl, err := s.wishlist.GetWishlist(ctx, viewer)
	if err != nil {
		s.logger.Warn("Wishlist unavailable, listing not decorated.", map[string]interface{}{"error": err.Error()})
		return
	}
	for i := range items {
		items[i].InWishlist = wl.Contains(items[i].ID)
	}
}
