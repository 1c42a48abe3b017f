package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fanilo/ariary-rates/internal/models"
)

// MemStore is an in-memory store with the same semantics as Repository. It
// backs the unit tests and lets the service run without Postgres in local
// development.
type MemStore struct {
	mu       sync.Mutex
	snapshot *models.RateSnapshot
	history  []models.ConversionRecord
	nextID   int64

	// Error hooks for exercising degraded paths in tests.
	SnapshotLoadErr error
	SnapshotSaveErr error
	HistoryErr      error
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

func (m *MemStore) SaveRateSnapshot(ctx context.Context, snapshot *models.RateSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SnapshotSaveErr != nil {
		return m.SnapshotSaveErr
	}
	clone := *snapshot
	m.snapshot = &clone
	return nil
}

func (m *MemStore) LoadRateSnapshot(ctx context.Context) (*models.RateSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SnapshotLoadErr != nil {
		return nil, m.SnapshotLoadErr
	}
	if m.snapshot == nil {
		return nil, nil
	}
	clone := *m.snapshot
	return &clone, nil
}

func (m *MemStore) AppendHistory(ctx context.Context, record *models.ConversionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HistoryErr != nil {
		return m.HistoryErr
	}
	record.ID = m.nextID
	m.nextID++
	if record.ConvertedAt.IsZero() {
		record.ConvertedAt = time.Now().UTC()
	}
	m.history = append(m.history, *record)
	return nil
}

func (m *MemStore) ListHistory(ctx context.Context, limit int) ([]models.ConversionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}

	records := make([]models.ConversionRecord, len(m.history))
	copy(records, m.history)
	sort.Slice(records, func(i, j int) bool {
		if records[i].ConvertedAt.Equal(records[j].ConvertedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].ConvertedAt.After(records[j].ConvertedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *MemStore) ClearHistory(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HistoryErr != nil {
		return m.HistoryErr
	}
	m.history = nil
	return nil
}
