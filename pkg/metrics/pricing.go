package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records price calculation outcomes.
type PricingMetrics struct {
	duration     *prometheus.HistogramVec
	requests     *prometheus.CounterVec
	floorApplied *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_duration_seconds",
		Help:    "Duration of price calculations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_requests_total",
		Help: "Price calculations by outcome.",
	}, []string{"outcome"})
	floorApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_floor_applied_total",
		Help: "Price calculations where the minimum price floor was applied.",
	}, []string{"part_type"})
	reg.MustRegister(duration, requests, floorApplied)
	return &PricingMetrics{
		duration:     duration,
		requests:     requests,
		floorApplied: floorApplied,
	}
}

// ObserveDuration records the duration of one calculation with its outcome.
func (p *PricingMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncRequest increments the request counter for the given outcome.
func (p *PricingMetrics) IncRequest(outcome string) {
	if p == nil || p.requests == nil {
		return
	}
	p.requests.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncFloorApplied increments the floor counter for the given part type.
func (p *PricingMetrics) IncFloorApplied(partType string) {
	if p == nil || p.floorApplied == nil {
		return
	}
	p.floorApplied.WithLabelValues(normalizeLabel(partType)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
