package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fanilo/ariary-rates/internal/currency"
	"github.com/fanilo/ariary-rates/internal/models"
	"github.com/fanilo/ariary-rates/internal/provider"
	"github.com/fanilo/ariary-rates/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.NewFromFloat(0.9),
		"CNY": decimal.NewFromFloat(7.2),
		"MGA": decimal.NewFromInt(4400),
	}
}

func newRateService(store Store, p provider.RateProvider, now time.Time) *RateService {
	return NewRateService(store, p, time.Hour).WithClock(func() time.Time { return now })
}

func seedSnapshot(t *testing.T, store Store, fetchedAt time.Time) *models.RateSnapshot {
	t.Helper()
	snapshot := &models.RateSnapshot{
		Base:      currency.Base,
		Rates:     map[string]decimal.Decimal{"USD": decimal.NewFromInt(1), "EUR": decimal.NewFromFloat(0.95), "CNY": decimal.NewFromFloat(7.0), "MGA": decimal.NewFromInt(4300)},
		FetchedAt: fetchedAt,
	}
	require.NoError(t, store.SaveRateSnapshot(context.Background(), snapshot))
	return snapshot
}

func TestGetRatesEmptyStoreFetchSuccess(t *testing.T) {
	now := time.Now().UTC()
	store := repository.NewMemStore()
	stub := provider.NewStubProvider()
	stub.Rates = liveRates()

	svc := newRateService(store, stub, now)
	resolved, err := svc.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, resolved.Source)
	assert.Equal(t, 1, stub.Calls())
	require.NotNil(t, resolved.FetchedAt)
	assert.True(t, resolved.FetchedAt.Equal(now))
	require.NotNil(t, resolved.AgeMinutes)
	assert.Equal(t, int64(0), *resolved.AgeMinutes)
	assert.True(t, resolved.Rates["EUR"].Equal(decimal.NewFromFloat(0.9)))

	// The snapshot was persisted.
	persisted, err := store.LoadRateSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.True(t, persisted.FetchedAt.Equal(now))
	assert.True(t, persisted.Rates["MGA"].Equal(decimal.NewFromInt(4400)))
}

func TestGetRatesEmptyStoreFetchFailure(t *testing.T) {
	now := time.Now().UTC()
	store := repository.NewMemStore()
	stub := provider.NewStubProvider()
	stub.Err = &provider.NetworkError{Err: errors.New("connection refused")}

	svc := newRateService(store, stub, now)
	resolved, err := svc.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceFallback, resolved.Source)
	assert.Equal(t, 1, stub.Calls())
	assert.Nil(t, resolved.FetchedAt)
	assert.Nil(t, resolved.AgeMinutes)
	assert.True(t, resolved.Rates["USD"].Equal(decimal.NewFromInt(1)))

	// Nothing was persisted.
	persisted, err := store.LoadRateSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestGetRatesFreshCacheSkipsFetch(t *testing.T) {
	now := time.Now().UTC()
	store := repository.NewMemStore()
	seedSnapshot(t, store, now.Add(-30*time.Minute))
	stub := provider.NewStubProvider()

	svc := newRateService(store, stub, now)
	resolved, err := svc.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceCache, resolved.Source)
	assert.Equal(t, 0, stub.Calls(), "fresh cache must not hit the network")
	require.NotNil(t, resolved.AgeMinutes)
	assert.Equal(t, int64(30), *resolved.AgeMinutes)
	assert.True(t, resolved.Rates["EUR"].Equal(decimal.NewFromFloat(0.95)))
}

func TestGetRatesStaleCacheServedOnFetchFailure(t *testing.T) {
	now := time.Now().UTC()
	store := repository.NewMemStore()
	seeded := seedSnapshot(t, store, now.Add(-90*time.Minute))
	stub := provider.NewStubProvider()
	stub.Err = &provider.DataError{Err: errors.New("missing rate for MGA")}

	svc := newRateService(store, stub, now)
	resolved, err := svc.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceCache, resolved.Source)
	assert.Equal(t, 1, stub.Calls())
	require.NotNil(t, resolved.AgeMinutes)
	assert.Equal(t, int64(90), *resolved.AgeMinutes)

	// The stale snapshot remains untouched in storage.
	persisted, err := store.LoadRateSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.True(t, persisted.FetchedAt.Equal(seeded.FetchedAt))
	assert.True(t, persisted.Rates["EUR"].Equal(decimal.NewFromFloat(0.95)))
}

func TestGetRatesStaleCacheOverwrittenOnFetchSuccess(t *testing.T) {
	now := time.Now().UTC()
	store := repository.NewMemStore()
	seedSnapshot(t, store, now.Add(-90*time.Minute))
	stub := provider.NewStubProvider()
	stub.Rates = liveRates()

	svc := newRateService(store, stub, now)
	resolved, err := svc.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, resolved.Source)
	assert.Equal(t, 1, stub.Calls())
	require.NotNil(t, resolved.AgeMinutes)
	assert.Equal(t, int64(0), *resolved.AgeMinutes)

	// Old snapshot fully overwritten, not merged.
	persisted, err := store.LoadRateSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.True(t, persisted.FetchedAt.Equal(now))
	assert.True(t, persisted.Rates["EUR"].Equal(decimal.NewFromFloat(0.9)))
	assert.True(t, persisted.Rates["MGA"].Equal(decimal.NewFromInt(4400)))
}

func TestGetRatesLoadErrorTreatedAsAbsent(t *testing.T) {
	now := time.Now().UTC()
	store := repository.NewMemStore()
	store.SnapshotLoadErr = errors.New("disk on fire")
	stub := provider.NewStubProvider()
	stub.Rates = liveRates()

	svc := newRateService(store, stub, now)
	resolved, err := svc.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, resolved.Source)
	assert.Equal(t, 1, stub.Calls())
}

func TestGetRatesSaveFailureStillReturnsLive(t *testing.T) {
	now := time.Now().UTC()
	store := repository.NewMemStore()
	store.SnapshotSaveErr = errors.New("disk full")
	stub := provider.NewStubProvider()
	stub.Rates = liveRates()

	svc := newRateService(store, stub, now)
	resolved, err := svc.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceLive, resolved.Source)
	assert.True(t, resolved.Rates["CNY"].Equal(decimal.NewFromFloat(7.2)))
}
