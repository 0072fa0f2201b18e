package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Content metrics
	ViewsCounted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_views_counted_total",
			Help: "Detail views that incremented views_count (first view per address)",
		},
		[]string{"content_type"},
	)

	AdmissionsSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admissions_submissions_total",
			Help: "Admissions applications by outcome",
		},
		[]string{"outcome"},
	)

	StatisticsRollups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statistics_rollups_total",
			Help: "Daily statistics rollups by outcome",
		},
		[]string{"outcome"},
	)
)
