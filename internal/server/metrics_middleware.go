package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/devfort/behabitual/pkg/habit"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behabitual_http_requests_total",
			Help: "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "behabitual_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	recordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behabitual_records_total",
			Help: "Total number of recorded data points by resolution",
		},
		[]string{"resolution"},
	)

	activeHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "behabitual_active_habits_total",
			Help: "Number of unarchived habits",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path, r.Method, statusCode).Observe(duration)
	})
}

// observeRecord is wired into the engine as its record observer.
func observeRecord(h habit.Habit, tp habit.TimePeriod, value int) {
	recordsTotal.WithLabelValues(string(tp.Resolution)).Inc()
}
