package ports

import "time"

// CalculationEvent describes one availability calculation.
type CalculationEvent struct {
	RouteType  string
	Confidence int
	Fallback   bool
	Elapsed    time.Duration
}

// GroupingEvent describes one batch grouping run.
type GroupingEvent struct {
	Bookings int
	Routes   int
	Elapsed  time.Duration
}

// ValidationEvent describes one rejected request.
type ValidationEvent struct {
	Endpoint string
	Reason   string
}

// Port: a sink for calculation telemetry. Implementations must not block;
// recording failures are invisible to callers.
type CalculationRecorder interface {
	RecordCalculation(e CalculationEvent)
	RecordGrouping(e GroupingEvent)
	RecordValidationFailure(e ValidationEvent)
}
