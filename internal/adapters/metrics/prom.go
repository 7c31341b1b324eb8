package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"multidrop-routing-service/internal/ports"
)

// PromSink records availability and grouping telemetry in Prometheus metrics.
type PromSink struct {
	calculations *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	groupings    prometheus.Counter
	groupSize    prometheus.Histogram
	validations  *prometheus.CounterVec
}

// NewPromSink registers the routing metrics on the default registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_calculations_total",
		Help: "Total number of availability calculations",
	}, []string{"route_type", "fallback"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "availability_calculation_seconds",
		Help:    "Time spent per availability calculation",
		Buckets: prometheus.DefBuckets,
	}, []string{"route_type"})
	groupings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_grouping_runs_total",
		Help: "Total number of batch grouping runs",
	})
	groupSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_grouping_bookings_per_route",
		Help:    "Average bookings per route produced by a grouping run",
		Buckets: []float64{1, 2, 3, 4, 5, 6},
	})
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "request_validation_failures_total",
		Help: "Requests rejected before calculation",
	}, []string{"endpoint"})

	if err := reg.Register(calculations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			calculations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(groupings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			groupings = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(groupSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			groupSize = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(validations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			validations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		calculations: calculations,
		latency:      latency,
		groupings:    groupings,
		groupSize:    groupSize,
		validations:  validations,
	}, nil
}

func (s *PromSink) RecordCalculation(e ports.CalculationEvent) {
	s.calculations.WithLabelValues(e.RouteType, strconv.FormatBool(e.Fallback)).Inc()
	s.latency.WithLabelValues(e.RouteType).Observe(e.Elapsed.Seconds())
}

func (s *PromSink) RecordGrouping(e ports.GroupingEvent) {
	s.groupings.Inc()
	if e.Routes > 0 {
		s.groupSize.Observe(float64(e.Bookings) / float64(e.Routes))
	}
}

func (s *PromSink) RecordValidationFailure(e ports.ValidationEvent) {
	s.validations.WithLabelValues(e.Endpoint).Inc()
}
