package service

import (
	"context"
	"time"

	"github.com/fanilo/ariary-rates/internal/currency"
	"github.com/fanilo/ariary-rates/internal/models"
	"github.com/fanilo/ariary-rates/internal/observability"
	"github.com/fanilo/ariary-rates/internal/provider"
	"go.uber.org/zap"
)

// DefaultMaxSnapshotAge is the freshness threshold: snapshots younger than
// this are served without touching the network.
const DefaultMaxSnapshotAge = time.Hour

// RateService resolves the rate set for a request from three tiers of
// degrading freshness: fresh snapshot, live fetch, stale snapshot, and
// finally the built-in fallback table. Resolution is synchronous at call
// time; there is no background refresh and no locking. Two stale resolutions
// racing may both fetch and both write — the snapshot upsert makes the last
// write win, which is harmless since both carry equally fresh data.
type RateService struct {
	store    Store
	provider provider.RateProvider
	maxAge   time.Duration
	now      func() time.Time
}

func NewRateService(store Store, rateProvider provider.RateProvider, maxAge time.Duration) *RateService {
	if maxAge <= 0 {
		maxAge = DefaultMaxSnapshotAge
	}
	return &RateService{
		store:    store,
		provider: rateProvider,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *RateService) WithClock(now func() time.Time) *RateService {
	s.now = now
	return s
}

// GetRates resolves rates for one request. It never fails for rate
// unavailability: network and data errors degrade to the stale snapshot or
// the fallback table, with provenance telling the caller how much to trust
// the result. Exactly one remote attempt is made per call, and only when the
// snapshot is missing or stale.
func (s *RateService) GetRates(ctx context.Context) (*models.ResolvedRates, error) {
	now := s.now()

	snapshot, err := s.store.LoadRateSnapshot(ctx)
	if err != nil {
		// An unreadable cache row is the same as no cache row.
		zap.L().Warn("rate snapshot load failed, treating as absent", zap.Error(err))
		snapshot = nil
	}

	if snapshot != nil && snapshot.Age(now) < s.maxAge {
		return s.resolvedFromSnapshot(snapshot, now), nil
	}

	fetchStart := time.Now()
	rates, err := s.provider.FetchLiveRates(ctx)
	if err != nil {
		observability.ObserveProviderFetch("failure", time.Since(fetchStart))
		zap.L().Warn("live rate fetch failed", zap.Error(err))

		if snapshot != nil {
			// Stale-but-served: honest age, snapshot left untouched.
			return s.resolvedFromSnapshot(snapshot, now), nil
		}
		observability.IncrementResolution(string(models.SourceFallback))
		return &models.ResolvedRates{
			Base:   currency.Base,
			Rates:  currency.FallbackRates(),
			Source: models.SourceFallback,
		}, nil
	}
	observability.ObserveProviderFetch("success", time.Since(fetchStart))

	fresh := &models.RateSnapshot{
		Base:      currency.Base,
		Rates:     rates,
		FetchedAt: now,
	}
	if err := s.store.SaveRateSnapshot(ctx, fresh); err != nil {
		// The caller still gets the live rates; only the cache misses out.
		zap.L().Error("rate snapshot save failed", zap.Error(err))
	}

	observability.IncrementResolution(string(models.SourceLive))
	age := int64(0)
	fetchedAt := fresh.FetchedAt
	return &models.ResolvedRates{
		Base:       fresh.Base,
		Rates:      fresh.Rates,
		Source:     models.SourceLive,
		FetchedAt:  &fetchedAt,
		AgeMinutes: &age,
	}, nil
}

func (s *RateService) resolvedFromSnapshot(snapshot *models.RateSnapshot, now time.Time) *models.ResolvedRates {
	observability.IncrementResolution(string(models.SourceCache))
	age := int64(snapshot.Age(now).Minutes())
	fetchedAt := snapshot.FetchedAt
	return &models.ResolvedRates{
		Base:       snapshot.Base,
		Rates:      snapshot.Rates,
		Source:     models.SourceCache,
		FetchedAt:  &fetchedAt,
		AgeMinutes: &age,
	}
}
