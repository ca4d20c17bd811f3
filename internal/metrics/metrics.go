// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floorplan_generations_total",
			Help: "Completed floor-plan generations by provenance",
		},
		[]string{"provenance"},
	)

	GenerationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floorplan_generation_fallbacks_total",
			Help: "Fallback generations by failure reason",
		},
		[]string{"reason"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "floorplan_generation_duration_seconds",
			Help: "End-to-end generation duration",
		},
		[]string{"provenance"},
	)

	PredictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "price_predictions_total",
			Help: "Completed price predictions",
		},
	)
)
