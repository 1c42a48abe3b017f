package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fanilo/ariary-rates/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySaveAndList(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewHistoryService(store)
	ctx := context.Background()

	svc.Save(ctx, "USD", "MGA", decimal.NewFromInt(10), decimal.NewFromInt(44000), decimal.NewFromInt(4400))
	svc.Save(ctx, "EUR", "USD", decimal.NewFromInt(5), decimal.RequireFromString("5.43"), decimal.RequireFromString("1.086"))

	records := svc.List(ctx, 1)
	require.Len(t, records, 1)
	assert.Equal(t, "EUR", records[0].FromCurrency)
	assert.Equal(t, "USD", records[0].ToCurrency)

	records = svc.List(ctx, 10)
	require.Len(t, records, 2)
	// Newest first.
	assert.Equal(t, "EUR", records[0].FromCurrency)
	assert.Equal(t, "USD", records[1].FromCurrency)
	assert.Greater(t, records[0].ID, records[1].ID)
}

func TestHistoryClear(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewHistoryService(store)
	ctx := context.Background()

	svc.Save(ctx, "USD", "EUR", decimal.NewFromInt(1), decimal.RequireFromString("0.9"), decimal.RequireFromString("0.9"))
	svc.Clear(ctx)

	assert.Empty(t, svc.List(ctx, 30))
}

func TestHistoryLimitClamping(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewHistoryService(store)
	ctx := context.Background()

	for i := 0; i < MaxHistoryLimit+20; i++ {
		svc.Save(ctx, "USD", "EUR", decimal.NewFromInt(1), decimal.RequireFromString("0.9"), decimal.RequireFromString("0.9"))
	}

	assert.Len(t, svc.List(ctx, 0), DefaultHistoryLimit)
	assert.Len(t, svc.List(ctx, -3), DefaultHistoryLimit)
	assert.Len(t, svc.List(ctx, 1000), MaxHistoryLimit)
	assert.Len(t, svc.List(ctx, 7), 7)
}

func TestHistorySwallowsStorageErrors(t *testing.T) {
	store := repository.NewMemStore()
	store.HistoryErr = errors.New("storage unavailable")
	svc := NewHistoryService(store)
	ctx := context.Background()

	// None of these must panic or propagate the error.
	svc.Save(ctx, "USD", "EUR", decimal.NewFromInt(1), decimal.RequireFromString("0.9"), decimal.RequireFromString("0.9"))
	svc.Clear(ctx)

	records := svc.List(ctx, 30)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
