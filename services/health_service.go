package services

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart = time.Now()

type ServerHealthStatus struct {
	Uptime       float64   `json:"uptime"`        // in seconds
	CurrentTime  time.Time `json:"current_time"`  // server current time
	ServiceAlive bool      `json:"service_alive"` // always true if service is running
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

// DependencyHealthStatus describes a ping against the database or the cache
type DependencyHealthStatus struct {
	Connected      bool           `json:"connected"`
	LastChecked    time.Time      `json:"last_checked"`
	ResponseTimeMs int64          `json:"response_time_ms"`
	Pool           map[string]any `json:"pool,omitempty"`
}

type dbPinger interface {
	Health(ctx context.Context) error
	GetStats() sql.DBStats
}

type cachePinger interface {
	Ping(ctx context.Context) error
	GetConnectionStats() map[string]any
}

type HealthService struct {
	logger *gecho.Logger
	db     dbPinger
	cache  cachePinger
}

func NewHealthService(logger *gecho.Logger, db dbPinger, cache cachePinger) *HealthService {
	return &HealthService{
		logger: logger,
		db:     db,
		cache:  cache,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() ServerHealthStatus {
	return ServerHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		RamStats:     getRamStats(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (DependencyHealthStatus, error) {
	start := time.Now()
	err := hs.db.Health(ctx)

	stats := hs.db.GetStats()
	status := DependencyHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Pool: map[string]any{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
		},
	}
	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}
	return status, err
}

func (hs *HealthService) GetCacheHealthStatus(ctx context.Context) (DependencyHealthStatus, error) {
	start := time.Now()
	err := hs.cache.Ping(ctx)

	status := DependencyHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Pool:           hs.cache.GetConnectionStats(),
	}
	if err != nil {
		hs.logger.Error("Cache health check failed", gecho.Field("error", err))
	}
	return status, err
}
