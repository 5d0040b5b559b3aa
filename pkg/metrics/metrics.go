package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetup_external_calls_total",
			Help: "Outbound calls to text generation and maps services by outcome",
		},
		[]string{"service", "outcome"},
	)

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meetup_external_call_duration_seconds",
			Help:    "Latency of outbound calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetup_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	VenueParseTier = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetup_venue_parse_tier_total",
			Help: "Which extraction tier produced the venue list",
		},
		[]string{"tier"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "meetup_active_sessions",
			Help: "Sessions currently held in memory",
		},
	)
)

const (
	ServiceLLM        = "llm"
	ServiceDirections = "directions"
	ServiceGeocode    = "geocode"

	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)
