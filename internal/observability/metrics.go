package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpDurationHistogram *prometheus.HistogramVec
	resolutionCounter     *prometheus.CounterVec
	fetchDuration         *prometheus.HistogramVec
	historyOpCounter      *prometheus.CounterVec
)

// Init registers all Prometheus collectors.
func Init() {
	registerOnce.Do(func() {
		httpDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"})

		resolutionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_resolutions_total",
			Help: "Rate resolution outcomes by provenance",
		}, []string{"provenance"})

		fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "provider_fetch_duration_seconds",
			Help:    "Remote rate fetch latency by outcome",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"})

		historyOpCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "history_operations_total",
			Help: "Conversion history operation outcomes",
		}, []string{"op", "result"})

		prometheus.MustRegister(
			httpDurationHistogram,
			resolutionCounter,
			fetchDuration,
			historyOpCounter,
		)
	})
}

func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if httpDurationHistogram == nil {
		return
	}
	httpDurationHistogram.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func IncrementResolution(provenance string) {
	if resolutionCounter == nil {
		return
	}
	resolutionCounter.WithLabelValues(provenance).Inc()
}

func ObserveProviderFetch(outcome string, duration time.Duration) {
	if fetchDuration == nil {
		return
	}
	fetchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func IncrementHistoryOp(op, result string) {
	if historyOpCounter == nil {
		return
	}
	historyOpCounter.WithLabelValues(op, result).Inc()
}
