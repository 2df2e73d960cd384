package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	wordLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "word_lookup_total",
			Help: "Total number of word store lookups",
		},
		[]string{"table", "result"},
	)

	dailyWordsRemaining = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "daily_words_remaining",
			Help: "Daily words assigned to today or a later date",
		},
		[]string{"size"},
	)
)

// MetricsMiddleware collects Prometheus metrics for each request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// RecordWordLookup records the outcome of a store lookup: "found",
// "not_found" or "error".
func RecordWordLookup(table, result string) {
	wordLookupTotal.WithLabelValues(table, result).Inc()
}

func SetDailyWordsRemaining(size int, remaining int64) {
	dailyWordsRemaining.WithLabelValues(strconv.Itoa(size)).Set(float64(remaining))
}
