// Package metrics exposes prometheus collectors for solar computations,
// device transitions, and the HTTP server.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "heliocore"

var (
	Computations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Total number of solar angle computations by operation and result.",
		},
		[]string{"operation", "result"},
	)

	Transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "device_transitions_total",
			Help:      "Total number of scheduled device transitions by device and result.",
		},
		[]string{"device", "result"},
	)

	Brightness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "device_brightness_percent",
			Help:      "Brightness most recently sent to a device by the scheduler.",
		},
		[]string{"device"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(Computations)
	prometheus.MustRegister(Transitions)
	prometheus.MustRegister(Brightness)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
}

// Result is the result label for err
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler returns the prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

var knownRoutes = map[string]bool{
	"/":                      true,
	"/healthz":               true,
	"/metrics":               true,
	"/api/v1/orbital-degree": true,
	"/api/v1/zenith-angle":   true,
	"/api/v1/events":         true,
}

// normalizeRoute collapses device labels and unknown paths so that
// the path label has bounded cardinality
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}

	if label, ok := strings.CutPrefix(path, "/devices/"); ok && label != "" {
		if strings.HasSuffix(label, "/status") {
			return "/devices/{label}/status"
		}
		if !strings.Contains(label, "/") {
			return "/devices/{label}"
		}
	}

	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
