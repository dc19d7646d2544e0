package health

import (
	"svd_ambalaj_server/services"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "api",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// poolCollectors exposes the database pool counters, sampled on every scrape
func poolCollectors(hs *services.HealthService) []prometheus.Collector {
	gauge := func(name, help string, value func(services.PoolStats) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "api",
				Subsystem: "db_pool",
				Name:      name,
				Help:      help,
			},
			func() float64 { return value(hs.GetPoolStats()) },
		)
	}

	return []prometheus.Collector{
		gauge("max_open", "Configured maximum of open connections", func(s services.PoolStats) float64 { return float64(s.MaxOpen) }),
		gauge("open", "Open connections", func(s services.PoolStats) float64 { return float64(s.Open) }),
		gauge("in_use", "Connections currently in use", func(s services.PoolStats) float64 { return float64(s.InUse) }),
		gauge("idle", "Idle connections", func(s services.PoolStats) float64 { return float64(s.Idle) }),
		gauge("wait_count", "Total waits for a connection", func(s services.PoolStats) float64 { return float64(s.WaitCount) }),
	}
}
