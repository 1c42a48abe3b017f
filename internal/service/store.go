package service

import (
	"context"

	"github.com/fanilo/ariary-rates/internal/models"
)

// Store is the persistence surface the services depend on. The Postgres
// repository implements it in production; repository.MemStore in tests.
type Store interface {
	// SaveRateSnapshot upserts the singleton rate-cache row.
	SaveRateSnapshot(ctx context.Context, snapshot *models.RateSnapshot) error
	// LoadRateSnapshot returns the current snapshot, or (nil, nil) when none
	// was ever saved.
	LoadRateSnapshot(ctx context.Context) (*models.RateSnapshot, error)
	// AppendHistory inserts a record, assigning its id and timestamp.
	AppendHistory(ctx context.Context, record *models.ConversionRecord) error
	// ListHistory returns up to limit records, newest first.
	ListHistory(ctx context.Context, limit int) ([]models.ConversionRecord, error)
	// ClearHistory deletes all records.
	ClearHistory(ctx context.Context) error
}
