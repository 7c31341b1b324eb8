package metrics

import "multidrop-routing-service/internal/ports"

// NopSink discards all telemetry. Used in tests and tooling where a metrics
// endpoint is not wired up.
type NopSink struct{}

func (NopSink) RecordCalculation(ports.CalculationEvent)      {}
func (NopSink) RecordGrouping(ports.GroupingEvent)            {}
func (NopSink) RecordValidationFailure(ports.ValidationEvent) {}
