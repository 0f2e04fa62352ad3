// Package indexer copies the remote catalog into the search snapshot table.
package indexer

import (
	"context"
	"fmt"
	"time"

	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/catalogapi"
	"sofadeal/internal/pkg/logger"
)

// PageSize is the catalog page size used while syncing.
const PageSize = 100

// maxPages guards against a remote that never reports its last page.
const maxPages = 10000

// Catalog is the paginated product search of the remote catalog.
type Catalog interface {
	SearchProducts(ctx context.Context, params catalogapi.SearchParams) (domain.CatalogPage, error)
}

// SnapshotStore persists the product snapshots the search index loads.
type SnapshotStore interface {
	Upsert(ctx context.Context, products []domain.RawProduct, syncedAt time.Time) error
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Result summarizes one sync.
type Result struct {
	Pages    int
	Products int
	Pruned   int64
	// Complete is set when the walk reached the last page reported by the catalog.
	Complete bool
}

// Syncer walks every catalog page and upserts it.
type Syncer struct {
	catalog Catalog
	store   SnapshotStore
	logger  logger.Logger
	now     func() time.Time
}

// New creates a Syncer reading from catalog and writing to store.
func New(catalog Catalog, store SnapshotStore, log logger.Logger) *Syncer {
	return &Syncer{catalog: catalog, store: store, logger: log, now: time.Now}
}

// Sync copies the catalog page by page. Empty pages before the reported last page
// are skipped, not treated as the end. Snapshots that were not touched by this run
// are pruned only when the walk reached the last page the catalog reported; a
// response without page totals is read until an empty page but never pruned.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	started := s.now().UTC()
	var res Result

	for page := 1; page <= maxPages; page++ {
		got, err := s.catalog.SearchProducts(ctx, catalogapi.SearchParams{
			SortBy:    domain.SortCreatedAt,
			SortOrder: "desc",
			Page:      page,
			Limit:     PageSize,
		})
		if err != nil {
			return res, fmt.Errorf("catalog page %d: %w", page, err)
		}
		if len(got.Items) > 0 {
			if err := s.store.Upsert(ctx, got.Items, started); err != nil {
				return res, fmt.Errorf("store page %d: %w", page, err)
			}
		}
		res.Pages++
		res.Products += len(got.Items)
		s.logger.Debug("Catalog page indexed.", map[string]interface{}{"page": page, "products": len(got.Items)})

		if got.Meta.TotalPages > 0 {
			if page >= got.Meta.TotalPages {
				res.Complete = true
				break
			}
			continue
		}
		if len(got.Items) == 0 {
			break
		}
	}

	if !res.Complete {
		s.logger.Warn("Catalog walk incomplete, stale snapshots kept.", map[string]interface{}{
			"pages":    res.Pages,
			"products": res.Products,
		})
		return res, nil
	}

	pruned, err := s.store.PruneBefore(ctx, started)
	if err != nil {
		return res, fmt.Errorf("prune snapshots: %w", err)
	}
	res.Pruned = pruned

	s.logger.Info("Catalog sync finished.", map[string]interface{}{
		"pages":    res.Pages,
		"products": res.Products,
		"pruned":   res.Pruned,
	})
	return res, nil
}
