package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restroomfinder",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restroomfinder",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restroomfinder",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Search metrics
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restroomfinder",
		Subsystem: "search",
		Name:      "requests_total",
		Help:      "Total restroom searches by location modality and outcome",
	}, []string{"modality", "outcome"})

	LocationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restroomfinder",
		Subsystem: "search",
		Name:      "location_failures_total",
		Help:      "Total searches whose location could not be resolved",
	}, []string{"modality", "reason"})

	SearchResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restroomfinder",
		Subsystem: "search",
		Name:      "results",
		Help:      "Number of directory records returned per search",
		Buckets:   []float64{0, 1, 2, 5, 10, 20},
	}, []string{"modality"})

	EmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restroomfinder",
		Subsystem: "email",
		Name:      "results_total",
		Help:      "Total results emails by delivery status",
	}, []string{"status"})

	// Provider metrics
	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restroomfinder",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Latency of outbound provider calls",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"provider"})

	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restroomfinder",
		Subsystem: "provider",
		Name:      "errors_total",
		Help:      "Total failed outbound provider calls",
	}, []string{"provider"})

	PostalCodesLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "restroomfinder",
		Subsystem: "postal",
		Name:      "codes_loaded",
		Help:      "Entries in the in-memory postal code table",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restroomfinder",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restroomfinder",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "restroomfinder",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "restroomfinder",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "restroomfinder",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// ObserveProvider records the latency of one provider call and counts it as
// an error when err is non-nil.
func ObserveProvider(provider string, start time.Time, err error) {
	ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		ProviderErrors.WithLabelValues(provider).Inc()
	}
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates database pool metrics from pgx pool stats.
func UpdateDBPoolMetrics(stat interface{}) {
	// Matches *pgxpool.Stat without importing pgx here.
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
