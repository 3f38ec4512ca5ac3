package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application's Prometheus collectors
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "foodshare",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodshare",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodshare",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodshare",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	messagesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "foodshare",
			Subsystem: "messaging",
			Name:      "messages_sent_total",
			Help:      "Messages committed to conversations.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		loginAttempts,
		messagesSent,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// MetricsHandler exposes the registry in Prometheus text format
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// MetricsMiddleware records request count, latency and in-flight gauge.
// Routes are labelled by their pattern so ids do not explode cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordLogin counts a login attempt; outcome is success, invalid or error
func RecordLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

// RecordMessageSent counts a committed message
func RecordMessageSent() {
	messagesSent.Inc()
}
