package monitoring

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Interaction kinds recorded by ScreamInteractions
const (
	InteractionCreated   = "created"
	InteractionCommented = "commented"
	InteractionLiked     = "liked"
	InteractionUnliked   = "unliked"
	InteractionDeleted   = "deleted"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ActiveRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	ScreamInteractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scream_interactions_total",
			Help: "Total number of successful scream writes by kind",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the given registerer
// Safe to call more than once; only the first call registers
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			HttpRequestsTotal,
			HttpRequestDuration,
			ActiveRequests,
			ScreamInteractions,
		)
	})
}

// RecordInteraction bumps the interaction counter for kind
func RecordInteraction(kind string) {
	ScreamInteractions.WithLabelValues(kind).Inc()
}
