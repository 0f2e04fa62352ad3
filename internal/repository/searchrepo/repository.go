package searchrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

// SnapshotRepository stores the catalog snapshot the search index is built from.
// Each product is kept as its validated JSON payload.
type SnapshotRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewSnapshotRepository creates the repository.
func NewSnapshotRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *SnapshotRepository {
	return &SnapshotRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

const upsertSQL = `INSERT INTO search_snapshots (product_id, name, payload, synced_at)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (product_id) DO UPDATE
                   SET name = EXCLUDED.name, payload = EXCLUDED.payload, synced_at = EXCLUDED.synced_at`

// Upsert writes a batch of products in one transaction, stamping them with syncedAt.
func (r *SnapshotRepository) Upsert(ctx context.Context, products []domain.RawProduct, syncedAt time.Time) (err error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return apperror.NewDBError("failed to start tx", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctxTimeout, upsertSQL)
	if err != nil {
		return apperror.NewDBError("failed to prepare snapshot upsert", err)
	}
	defer stmt.Close()

	for _, p := range products {
		payload, marshalErr := json.Marshal(p)
		if marshalErr != nil {
			err = apperror.NewInternalError("failed to encode product snapshot", marshalErr)
			return err
		}
		if _, err = stmt.ExecContext(ctxTimeout, p.ID, p.Name, payload, syncedAt); err != nil {
			return apperror.NewDBError("failed to upsert product snapshot", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperror.NewDBError("failed to commit tx", err)
	}

	r.logger.Debug("Product snapshots upserted.", map[string]interface{}{"count": len(products)})
	return nil
}

// PruneBefore deletes snapshots not refreshed since cutoff (products removed upstream).
func (r *SnapshotRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM search_snapshots WHERE synced_at < $1`, cutoff)
	if err != nil {
		return 0, apperror.NewDBError("failed to prune product snapshots", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// LoadSnapshots returns every stored product ordered by name.
// Rows whose payload no longer decodes are skipped.
func (r *SnapshotRepository) LoadSnapshots(ctx context.Context) ([]domain.RawProduct, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT product_id, payload FROM search_snapshots ORDER BY name, product_id`)
	if err != nil {
		return nil, apperror.NewDBError("failed to load product snapshots", err)
	}
	defer rows.Close()

	products := make([]domain.RawProduct, 0)
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, apperror.NewDBError("failed to scan product snapshot", err)
		}

		var p domain.RawProduct
		if err := json.Unmarshal(payload, &p); err != nil {
			r.logger.Warn("Skipping undecodable product snapshot.", map[string]interface{}{"product_id": id, "error": err.Error()})
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate product snapshots", err)
	}

	return products, nil
}
