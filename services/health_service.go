package services

import (
	"context"
	"runtime"
	"svd_ambalaj_server/database"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart time.Time

func init() {
	uptimeStart = time.Now()
}

type serverHealthStatus struct {
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

type PoolStats struct {
	MaxOpen      int   `json:"max_open"`
	Open         int   `json:"open"`
	InUse        int   `json:"in_use"`
	Idle         int   `json:"idle"`
	WaitCount    int64 `json:"wait_count"`
	WaitDuration int64 `json:"wait_duration_ms"`
}

type databaseHealthStatus struct {
	Connected      bool           `json:"connected"`
	LastChecked    time.Time      `json:"last_checked"`
	ResponseTimeMs int64          `json:"response_time_ms"`
	Pool           PoolStats      `json:"pool"`
	Cache          map[string]any `json:"cache"`
}

type HealthService struct {
	logger *gecho.Logger
	db     *database.DB
	cache  *CacheService
}

func NewHealthService(logger *gecho.Logger, db *database.DB, cache *CacheService) *HealthService {
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

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	return serverHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		RamStats:     getRamStats(),
	}
}

func (hs *HealthService) GetPoolStats() PoolStats {
	stats := hs.db.GetStats()
	return PoolStats{
		MaxOpen:      stats.MaxOpenConnections,
		Open:         stats.OpenConnections,
		InUse:        stats.InUse,
		Idle:         stats.Idle,
		WaitCount:    stats.WaitCount,
		WaitDuration: stats.WaitDuration.Milliseconds(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (databaseHealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := hs.db.Health(ctx)
	elapsed := time.Since(start).Milliseconds()

	dbStatus := databaseHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: elapsed,
		Pool:           hs.GetPoolStats(),
		Cache:          hs.cache.GetConnectionStats(),
	}

	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}
	return dbStatus, err
}
