package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	progressOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_operations_total",
			Help: "Progress store operations by op and result.",
		},
		[]string{"op", "result"},
	)

	sessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_events_total",
			Help: "Session transitions by type.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, progressOps, sessionEvents)
}

// ObserveProgressOp records the outcome of a progress store operation.
func ObserveProgressOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	progressOps.WithLabelValues(op, result).Inc()
}

// CountSessionEvent records a login/logout transition.
func CountSessionEvent(eventType string) {
	sessionEvents.WithLabelValues(eventType).Inc()
}

// Middleware records request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := strconv.Itoa(c.Writer.Status())

		httpRequests.WithLabelValues(path, c.Request.Method, code).Inc()
		httpDuration.WithLabelValues(path, c.Request.Method, code).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
