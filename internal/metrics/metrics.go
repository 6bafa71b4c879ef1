// Package metrics exposes Prometheus collectors for the HTTP API, the seed
// reconciler and the event classifier.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maqam_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maqam_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maqam_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"route"},
	)

	SeedRowsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maqam_seed_rows_inserted_total",
			Help: "Rows inserted by the seed reconciler",
		},
		[]string{"kind"},
	)

	SeedFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maqam_seed_failures_total",
			Help: "Entity kinds whose seeding was rolled back",
		},
		[]string{"kind"},
	)

	ClassifierPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maqam_classifier_passes_total",
			Help: "Event classifier passes by trigger",
		},
		[]string{"trigger"},
	)

	ClassifierEventsMoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maqam_classifier_events_moved_total",
			Help: "Events moved between upcoming and past",
		},
		[]string{"direction"},
	)

	ClassifierLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "maqam_classifier_last_run_timestamp_seconds",
			Help: "Unix time of the last successful classifier pass",
		},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSeed records the outcome of seeding one kind.
func RecordSeed(kind string, inserted int, err error) {
	if err != nil {
		SeedFailures.WithLabelValues(kind).Inc()
		return
	}
	SeedRowsInserted.WithLabelValues(kind).Add(float64(inserted))
}

// RecordClassifierPass records one successful classifier pass.
func RecordClassifierPass(trigger string, markedPast, markedUpcoming int64, at time.Time) {
	ClassifierPasses.WithLabelValues(trigger).Inc()
	ClassifierEventsMoved.WithLabelValues("past").Add(float64(markedPast))
	ClassifierEventsMoved.WithLabelValues("upcoming").Add(float64(markedUpcoming))
	ClassifierLastRun.Set(float64(at.Unix()))
}

// Middleware records request counts and latency labelled by the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if status == http.StatusTooManyRequests {
			APIRateLimitHits.WithLabelValues(route).Inc()
		}
		RecordAPIRequest(r.Method, route, status, time.Since(start))
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
