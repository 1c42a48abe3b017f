package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fanilo/ariary-rates/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotRowID keys the singleton rate-cache row.
const snapshotRowID = 1

// Repository is the Postgres-backed store for the rate snapshot and the
// conversion history. An optional SnapshotCache fronts snapshot reads;
// Postgres is always authoritative.
type Repository struct {
	db    *pgxpool.Pool
	cache *SnapshotCache
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// WithSnapshotCache attaches a Redis look-aside cache for the snapshot row.
func (r *Repository) WithSnapshotCache(cache *SnapshotCache) *Repository {
	r.cache = cache
	return r
}

// SaveRateSnapshot upserts the singleton rate-cache row, overwriting any
// prior snapshot.
func (r *Repository) SaveRateSnapshot(ctx context.Context, snapshot *models.RateSnapshot) error {
	encoded, err := json.Marshal(snapshot.Rates)
	if err != nil {
		return fmt.Errorf("encode rates: %w", err)
	}

	query := `
		INSERT INTO rate_snapshots (id, base, rates, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET base = EXCLUDED.base, rates = EXCLUDED.rates, fetched_at = EXCLUDED.fetched_at
	`
	if _, err := r.db.Exec(ctx, query, snapshotRowID, snapshot.Base, encoded, snapshot.FetchedAt); err != nil {
		return fmt.Errorf("save rate snapshot: %w", err)
	}

	if r.cache != nil {
		r.cache.Put(ctx, snapshot)
	}
	return nil
}

// LoadRateSnapshot returns the current snapshot, or (nil, nil) if none was
// ever saved. Absence is a normal value, not an error.
func (r *Repository) LoadRateSnapshot(ctx context.Context) (*models.RateSnapshot, error) {
	if r.cache != nil {
		if snapshot := r.cache.Get(ctx); snapshot != nil {
			return snapshot, nil
		}
	}

	snapshot := &models.RateSnapshot{}
	var encoded []byte
	query := `SELECT base, rates, fetched_at FROM rate_snapshots WHERE id = $1`
	err := r.db.QueryRow(ctx, query, snapshotRowID).Scan(&snapshot.Base, &encoded, &snapshot.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load rate snapshot: %w", err)
	}

	if err := json.Unmarshal(encoded, &snapshot.Rates); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}

	if r.cache != nil {
		r.cache.Put(ctx, snapshot)
	}
	return snapshot, nil
}

// AppendHistory inserts a conversion record, filling in the assigned id and
// timestamp.
func (r *Repository) AppendHistory(ctx context.Context, record *models.ConversionRecord) error {
	query := `
		INSERT INTO conversion_history (from_currency, to_currency, amount, result, rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, converted_at
	`
	err := r.db.QueryRow(ctx, query,
		record.FromCurrency, record.ToCurrency, record.Amount, record.Result, record.Rate,
	).Scan(&record.ID, &record.ConvertedAt)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// ListHistory returns up to limit records, newest first. Ties on converted_at
// break on id so same-instant appends still list deterministically.
func (r *Repository) ListHistory(ctx context.Context, limit int) ([]models.ConversionRecord, error) {
	query := `
		SELECT id, from_currency, to_currency, amount, result, rate, converted_at
		FROM conversion_history
		ORDER BY converted_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var records []models.ConversionRecord
	for rows.Next() {
		var rec models.ConversionRecord
		if err := rows.Scan(&rec.ID, &rec.FromCurrency, &rec.ToCurrency, &rec.Amount, &rec.Result, &rec.Rate, &rec.ConvertedAt); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ClearHistory deletes all conversion records unconditionally.
func (r *Repository) ClearHistory(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM conversion_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
