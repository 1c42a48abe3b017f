package api

import (
	"github.com/fanilo/ariary-rates/internal/api/handler"
	"github.com/fanilo/ariary-rates/internal/api/middleware"
	"github.com/fanilo/ariary-rates/internal/api/spec"
	"github.com/fanilo/ariary-rates/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Router struct {
	logger   *zap.Logger
	db       *pgxpool.Pool
	redis    redis.Cmdable
	rates    *service.RateService
	history  *service.HistoryService
	publicRL int
}

func NewRouter(logger *zap.Logger, db *pgxpool.Pool, redisClient redis.Cmdable, rates *service.RateService, history *service.HistoryService, publicRateLimitRPS int) *Router {
	return &Router{
		logger:   logger,
		db:       db,
		redis:    redisClient,
		rates:    rates,
		history:  history,
		publicRL: publicRateLimitRPS,
	}
}

func (api *Router) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.LoggingMiddleware(api.logger))
	r.Use(middleware.RecoverMiddleware(api.logger))
	r.Use(middleware.MetricsMiddleware)

	healthHandler := handler.NewHealthHandler(api.db, api.redis)
	ratesHandler := handler.NewRatesHandler(api.rates)
	convertHandler := handler.NewConvertHandler(api.rates)
	historyHandler := handler.NewHistoryHandler(api.history)

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", spec.OpenAPIHandler())
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))

	r.Group(func(r chi.Router) {
		r.Use(middleware.PublicRateLimiter(api.publicRL))

		r.Get("/v1/rates", ratesHandler.GetRates)
		r.Get("/v1/convert", convertHandler.Convert)
		r.Get("/v1/currencies", handler.Currencies)

		r.Post("/v1/history", historyHandler.Save)
		r.Get("/v1/history", historyHandler.List)
		r.With(middleware.AdminMiddleware).Delete("/v1/history", historyHandler.Clear)
	})

	return r
}
