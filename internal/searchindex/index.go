// Package searchindex holds the in-memory product set used by search-mode listings.
// Readers never wait for population: before the first load the index reports
// itself as not initialized.
package searchindex

import (
	"context"
	"strings"
	"sync"
	"time"

	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/logger"
)

// Loader returns the full product set the index is built from.
type Loader interface {
	LoadSnapshots(ctx context.Context) ([]domain.RawProduct, error)
}

type entry struct {
	product domain.RawProduct
	text    string // lower-cased searchable text
}

// Index is a read-mostly snapshot of the catalog.
type Index struct {
	mu        sync.RWMutex
	entries   []entry
	loaded    bool
	loadedAt  time.Time
	loader    Loader
	logger    logger.Logger
	refreshMu sync.Mutex
}

// New creates an empty, uninitialized index.
func New(loader Loader, log logger.Logger) *Index {
	return &Index{loader: loader, logger: log}
}

// Replace swaps the indexed product set and marks the index initialized.
func (ix *Index) Replace(products []domain.RawProduct) {
	entries := make([]entry, 0, len(products))
	for _, p := range products {
		entries = append(entries, entry{product: p, text: searchableText(p)})
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = entries
	ix.loaded = true
	ix.loadedAt = time.Now()
}

// Search returns the products whose text contains every word of query
// (case-insensitive), in index order. The second result is false until the
// index has been loaded once.
func (ix *Index) Search(query string) ([]domain.RawProduct, bool) {
	terms := strings.Fields(strings.ToLower(query))

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.loaded {
		return nil, false
	}

	out := make([]domain.RawProduct, 0)
	for _, e := range ix.entries {
		if matches(e.text, terms) {
			out = append(out, e.product)
		}
	}
	return out, true
}

// Stats reports the number of indexed products and the time of the last load.
func (ix *Index) Stats() (int, time.Time, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries), ix.loadedAt, ix.loaded
}

// Refresh reloads the index from the loader. Concurrent refreshes are serialized;
// on error the previous snapshot stays in place.
func (ix *Index) Refresh(ctx context.Context) (int, error) {
	ix.refreshMu.Lock()
	defer ix.refreshMu.Unlock()

	products, err := ix.loader.LoadSnapshots(ctx)
	if err != nil {
		ix.logger.Error("Failed to reload search index.", err)
		return 0, err
	}
	ix.Replace(products)
	ix.logger.Info("Search index reloaded.", map[string]interface{}{"products": len(products)})
	return len(products), nil
}

// Run refreshes the index immediately and then on every tick until ctx is done.
func (ix *Index) Run(ctx context.Context, interval time.Duration) {
	ix.Refresh(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ix.logger.Info("Search index refresher stopped.", nil)
			return
		case <-ticker.C:
			ix.Refresh(ctx)
		}
	}
}

func matches(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

func searchableText(p domain.RawProduct) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte(' ')
	b.WriteString(p.Description)
	if p.Category != nil {
		b.WriteByte(' ')
		b.WriteString(p.Category.Name)
	}
	for _, v := range p.Variants {
		b.WriteByte(' ')
		b.WriteString(v.Size)
		b.WriteByte(' ')
		b.WriteString(v.Material)
		b.WriteByte(' ')
		b.WriteString(v.Color)
		b.WriteByte(' ')
		b.WriteString(v.SKU)
	}
	return strings.ToLower(b.String())
}
