package health

import (
	"context"
	"shop_admin_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthReporter interface {
	GetServerHealthStatus() services.ServerHealthStatus
	GetDatabaseHealthStatus(ctx context.Context) (services.DependencyHealthStatus, error)
	GetCacheHealthStatus(ctx context.Context) (services.DependencyHealthStatus, error)
}

type HealthRoutesManager struct {
	logger        *gecho.Logger
	healthService healthReporter
	registry      *prometheus.Registry
}

func NewHealthRoutesManager(logger *gecho.Logger, healthService healthReporter) *HealthRoutesManager {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		RequestDuration,
		RequestsTotal,
		RequestsInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &HealthRoutesManager{
		logger:        logger,
		healthService: healthService,
		registry:      registry,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/database", hrm.GetDatabaseHealth)
	r.Get("/health/cache", hrm.GetCacheHealth)

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.HandlerFor(hrm.registry, promhttp.HandlerOpts{}).ServeHTTP)
}
