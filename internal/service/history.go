package service

import (
	"context"

	"github.com/fanilo/ariary-rates/internal/models"
	"github.com/fanilo/ariary-rates/internal/observability"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultHistoryLimit is used when the caller does not ask for a page size.
	DefaultHistoryLimit = 30
	// MaxHistoryLimit caps a single read.
	MaxHistoryLimit = 100
)

// HistoryService records completed conversions. Every operation is
// best-effort: history is a convenience feature, and a broken store must
// never block the conversion workflow, so storage errors are logged and
// swallowed here.
type HistoryService struct {
	store Store
}

func NewHistoryService(store Store) *HistoryService {
	return &HistoryService{store: store}
}

// Save appends one settled conversion. The store assigns the id and
// timestamp. Callers are expected to commit only settled conversions, once
// each; no debouncing happens here.
func (s *HistoryService) Save(ctx context.Context, from, to string, amount, result, rate decimal.Decimal) {
	record := &models.ConversionRecord{
		FromCurrency: from,
		ToCurrency:   to,
		Amount:       amount,
		Result:       result,
		Rate:         rate,
	}
	if err := s.store.AppendHistory(ctx, record); err != nil {
		observability.IncrementHistoryOp("append", "failure")
		zap.L().Warn("history append failed", zap.Error(err),
			zap.String("from", from), zap.String("to", to))
		return
	}
	observability.IncrementHistoryOp("append", "success")
}

// List returns up to limit records, newest first. The limit is clamped to
// [1, MaxHistoryLimit], defaulting to DefaultHistoryLimit. A failing store
// yields an empty slice, never an error.
func (s *HistoryService) List(ctx context.Context, limit int) []models.ConversionRecord {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.store.ListHistory(ctx, limit)
	if err != nil {
		observability.IncrementHistoryOp("list", "failure")
		zap.L().Warn("history list failed", zap.Error(err))
		return []models.ConversionRecord{}
	}
	observability.IncrementHistoryOp("list", "success")
	if records == nil {
		records = []models.ConversionRecord{}
	}
	return records
}

// Clear deletes all records. Irreversible; failures are logged only.
func (s *HistoryService) Clear(ctx context.Context) {
	if err := s.store.ClearHistory(ctx); err != nil {
		observability.IncrementHistoryOp("clear", "failure")
		zap.L().Warn("history clear failed", zap.Error(err))
		return
	}
	observability.IncrementHistoryOp("clear", "success")
}
