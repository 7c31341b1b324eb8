package domain

// ConstraintResult is one admission constraint's verdict with its raw evidence.
// Reason is non-empty only on failure and is used verbatim when composing the
// overall ineligibility reason.
type ConstraintResult struct {
	Passed bool
	Value  float64
	Limit  float64
	Reason string
}

type AlternativeType string

const (
	AlternativeSingleOrder   AlternativeType = "SINGLE_ORDER"
	AlternativeReturnJourney AlternativeType = "RETURN_JOURNEY"
	AlternativeSplitLoad     AlternativeType = "SPLIT_LOAD"
)

// AlternativeOption is a fallback service offer with an estimated price.
type AlternativeOption struct {
	Type           AlternativeType
	Description    string
	EstimatedPrice float64
}

// MultiDropEligibility is the full verdict on whether a booking may be offered
// route sharing, independent of whether a partner booking currently exists.
// Computed fresh per request, never persisted.
type MultiDropEligibility struct {
	Eligible   bool
	Reason     string // empty when eligible
	Confidence int    // 0-100, informational only

	LoadConstraint      ConstraintResult
	DistanceConstraint  ConstraintResult
	TimeConstraint      ConstraintResult
	LargeItemConstraint ConstraintResult

	Alternatives []AlternativeOption
}

// MatchScore grades one pending booking as a sharing partner.
type MatchScore struct {
	BookingID             string
	Score                 float64 // 0-100
	CombinedDistanceMiles float64
	DeviationMiles        float64
	ShareFraction         float64 // this booking's share of the combined route
}

// RouteAddCheck is the verdict on adding one booking to an in-flight route.
type RouteAddCheck struct {
	Feasible                bool
	AdditionalDistanceMiles float64
	AdditionalTimeMinutes   float64
	Reason                  string // empty when feasible
}
