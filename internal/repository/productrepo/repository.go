package productrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/catalogapi"
	"sofadeal/internal/pkg/logger"
)

// CatalogClient is the part of the remote catalog API this repository reads.
type CatalogClient interface {
	SearchProducts(ctx context.Context, params catalogapi.SearchParams) (domain.CatalogPage, error)
	GetProduct(ctx context.Context, id string) (domain.RawProduct, error)
}

// ProductRepository reads products from the remote catalog, with a cache-aside
// layer in front of the by-id lookup.
type ProductRepository struct {
	Catalog  CatalogClient
	Cache    cache.Client
	CacheTTL time.Duration
	logger   logger.Logger
}

// NewProductRepository creates the repository.
func NewProductRepository(catalog CatalogClient, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		Catalog:  catalog,
		Cache:    cacheClient,
		CacheTTL: cacheTTL,
		logger:   log,
	}
}

const productCacheKey = "product:%s"

// Search runs one paginated remote search. Listings are never cached.
func (r *ProductRepository) Search(ctx context.Context, params catalogapi.SearchParams) (domain.CatalogPage, error) {
	return r.Catalog.SearchProducts(ctx, params)
}

// FindByID returns a product, trying the cache first.
// Cache failures are logged and treated as misses.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.RawProduct, error) {
	key := fmt.Sprintf(productCacheKey, id)

	cached, err := r.Cache.Get(ctx, key)
	if err == nil {
		var product domain.RawProduct
		if json.Unmarshal([]byte(cached), &product) == nil {
			r.logger.Debug("Product cache hit.", map[string]interface{}{"product_id": id})
			return product, nil
		}
		r.logger.Warn("Discarding undecodable cached product.", map[string]interface{}{"product_id": id})
	} else if !cache.IsMiss(err) {
		r.logger.Warn("Product cache read failed.", map[string]interface{}{"product_id": id, "error": err.Error()})
	}

	product, err := r.Catalog.GetProduct(ctx, id)
	if err != nil {
		return domain.RawProduct{}, err
	}

	if payload, marshalErr := json.Marshal(product); marshalErr == nil {
		if setErr := r.Cache.Set(ctx, key, payload, r.CacheTTL); setErr != nil {
			r.logger.Warn("Product cache write failed.", map[string]interface{}{"product_id": id, "error": setErr.Error()})
		}
	}

	return product, nil
}
