package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehub_ai_requests_total",
		Help: "Completion requests by operation and status.",
	}, []string{"operation", "status"})

	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gamehub_ai_request_duration_seconds",
		Help:    "Completion latency by operation.",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
	}, []string{"operation"})

	aiFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamehub_ai_fallbacks_total",
		Help: "Times an operation served deterministic content instead of generated content.",
	}, []string{"operation"})
)
