// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic. Metrics()
// measures request counts, latencies, in-flight concurrency, and response
// sizes. Label cardinality stays bounded by using the registered Gin route
// ("/api/products/:id") rather than raw URLs:
//
//   - method: HTTP verb
//   - path:   registered route, or the raw path when no route matched
//   - status: numeric status code as a string
//
// All collectors are safe for concurrent use.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// storeReqs counts requests by method, route path, and status code.
	storeReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// storeLat records request duration in seconds by method and route path.
	// Status is omitted to keep histogram cardinality lower.
	storeLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// storeInflight gauges the number of in-flight requests.
	storeInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// storeRespSize captures response sizes in bytes by method and route
	// path. Buckets are tuned for catalog/basket JSON payloads.
	storeRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "store_http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				200, 500, 1 << 10, 2 << 10, 5 << 10,
				10 << 10, 25 << 10, 50 << 10,
				100 << 10, 250 << 10, 500 << 10,
				1 << 20,
			},
		},
		[]string{"method", "path"},
	)

	// ordersPlaced counts successfully created orders.
	ordersPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_orders_created_total",
			Help: "Total number of orders successfully placed.",
		},
	)
)

func init() {
	prometheus.MustRegister(storeReqs, storeLat, storeInflight, storeRespSize, ordersPlaced)
}

// CountOrderPlaced increments the placed-orders counter. Called by the
// order handler after a successful 201.
func CountOrderPlaced() { ordersPlaced.Inc() }

// Metrics returns a Gin middleware that instruments requests with
// Prometheus. Mount promhttp.Handler() at /metrics alongside it.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		storeInflight.Inc()
		defer storeInflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		size := c.Writer.Size() // -1 when unknown

		storeReqs.WithLabelValues(method, path, status).Inc()
		storeLat.WithLabelValues(method, path).Observe(dur)
		if size >= 0 {
			storeRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
