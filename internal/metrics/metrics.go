package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_http_requests_total",
		Help: "HTTP requests by method, route pattern, and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookmarks_http_request_duration_seconds",
		Help:    "Time from request receipt to response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	ValidationRejectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_validation_rejects_total",
		Help: "Payloads rejected by validation, by field.",
	}, []string{"field"})

	StoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_store_errors_total",
		Help: "Bookmark store failures, by operation.",
	}, []string{"op"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookmarks_rate_limited_total",
		Help: "Requests refused by the per-client rate limiter.",
	})

	BookmarksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookmarks_total",
		Help: "Total number of bookmarks in the database.",
	})
)
