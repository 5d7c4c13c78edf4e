package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests forwarded to the backend API",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ShapeCoercions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_shape_coercions_total",
			Help: "Backend responses accepted from a non-canonical envelope",
		},
		[]string{"endpoint", "path"},
	)

	SectionSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_section_saves_total",
			Help: "Profile section saves by outcome",
		},
		[]string{"section", "outcome"},
	)

	SnapshotCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_snapshot_cache_total",
			Help: "Profile snapshot cache lookups by result",
		},
		[]string{"result"},
	)
)
