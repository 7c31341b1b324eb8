package services

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/config"
	"multidrop-routing-service/internal/domain"
	"multidrop-routing-service/internal/geo"
	"multidrop-routing-service/internal/ports"
)

// EligibilityEngine decides whether a booking may be offered route sharing.
// Four independent constraints (load, distance, time, large items) must all
// pass. The constraints are order-insensitive and each carries its own
// evidence so callers can show customers exactly what failed.
type EligibilityEngine struct {
	cfg      *config.Config
	analyzer *LoadAnalyzer
	pricer   ports.PriceEstimator
	recorder ports.CalculationRecorder
	log      zerolog.Logger
}

func NewEligibilityEngine(
	cfg *config.Config,
	analyzer *LoadAnalyzer,
	pricer ports.PriceEstimator,
	recorder ports.CalculationRecorder,
	log zerolog.Logger,
) *EligibilityEngine {
	return &EligibilityEngine{
		cfg:      cfg,
		analyzer: analyzer,
		pricer:   pricer,
		recorder: recorder,
		log:      log,
	}
}

// Analyze runs the full eligibility check for one booking. Address validation
// failures are returned as errors; an infeasible booking is a normal result
// with Eligible false, never an error.
func (e *EligibilityEngine) Analyze(ctx context.Context, booking domain.BookingRequest) (domain.MultiDropEligibility, error) {
	if err := booking.Pickup.Validate("pickup"); err != nil {
		e.recordRejection("eligibility", err)
		return domain.MultiDropEligibility{}, fmt.Errorf("analyze eligibility: %w", err)
	}
	if err := booking.Dropoff.Validate("dropoff"); err != nil {
		e.recordRejection("eligibility", err)
		return domain.MultiDropEligibility{}, fmt.Errorf("analyze eligibility: %w", err)
	}

	load := e.analyzer.Analyze(booking.Load)
	utilization := e.loadFraction(load)

	distance := geo.Distance(booking.Pickup.Coordinates, booking.Dropoff.Coordinates)
	drivingMinutes := distance / e.cfg.Feasibility.AverageSpeedMph * 60
	totalMinutes := drivingMinutes + load.EstimatedHandlingMinutes

	loadC := e.checkLoadConstraint(utilization)
	distC := e.checkDistanceConstraint(distance)
	timeC := e.checkTimeConstraint(totalMinutes)
	largeC := e.checkLargeItemConstraint(load.LargeItemCount)

	eligible := loadC.Passed && distC.Passed && timeC.Passed && largeC.Passed

	result := domain.MultiDropEligibility{
		Eligible:            eligible,
		Confidence:          e.confidence(utilization, distance, totalMinutes),
		LoadConstraint:      loadC,
		DistanceConstraint:  distC,
		TimeConstraint:      timeC,
		LargeItemConstraint: largeC,
	}
	if !eligible {
		result.Reason = joinFailureReasons(loadC, distC, timeC, largeC)
	}

	alternatives, err := e.alternatives(ctx, distance, utilization, load)
	if err != nil {
		return domain.MultiDropEligibility{}, fmt.Errorf("analyze eligibility: %w", err)
	}
	result.Alternatives = alternatives

	e.log.Debug().
		Str("booking_id", booking.ID).
		Bool("eligible", eligible).
		Int("confidence", result.Confidence).
		Float64("utilization", utilization).
		Float64("distance_miles", distance).
		Msg("multi-drop eligibility analyzed")

	return result, nil
}

// loadFraction returns the booking's share of the reference vehicle,
// deliberately unclamped so overflow loads stay visible to the split-load
// check.
func (e *EligibilityEngine) loadFraction(load domain.LoadSummary) float64 {
	ref := e.cfg.ReferenceVehicle()
	fraction := load.TotalWeightKg / ref.MaxWeightKg
	if v := load.TotalVolumeM3 / ref.MaxVolumeM3; v > fraction {
		fraction = v
	}
	return fraction
}

func (e *EligibilityEngine) checkLoadConstraint(utilization float64) domain.ConstraintResult {
	limit := e.cfg.MultiDrop.MaxLoadFraction
	c := domain.ConstraintResult{
		Passed: utilization < limit,
		Value:  utilization,
		Limit:  limit,
	}
	if !c.Passed {
		current := int(math.Round(utilization * 100))
		available := int(math.Round((1 - utilization) * 100))
		c.Reason = fmt.Sprintf(
			"Load too large for multi-drop (%d%% > %.0f%%). Van is %d%% full, leaving only %d%% for other customers. Recommend single order pricing.",
			current, limit*100, current, available)
	}
	return c
}

func (e *EligibilityEngine) checkDistanceConstraint(distanceMiles float64) domain.ConstraintResult {
	limit := e.cfg.MultiDrop.MaxDistanceMiles
	c := domain.ConstraintResult{
		Passed: distanceMiles < limit,
		Value:  distanceMiles,
		Limit:  limit,
	}
	if !c.Passed {
		c.Reason = fmt.Sprintf(
			"Route too long for multi-drop (%.0f miles > %.0f miles). Long-distance routes don't allow time for additional stops. Recommend single order or return journey pricing.",
			math.Round(distanceMiles), limit)
	}
	return c
}

func (e *EligibilityEngine) checkTimeConstraint(totalMinutes float64) domain.ConstraintResult {
	limitHours := e.cfg.MultiDrop.MaxTotalHours
	c := domain.ConstraintResult{
		Passed: totalMinutes < limitHours*60,
		Value:  totalMinutes / 60,
		Limit:  limitHours,
	}
	if !c.Passed {
		c.Reason = fmt.Sprintf(
			"Route takes too long for multi-drop (%.1f hours > %.0f hours). No time for additional stops. Recommend single order pricing.",
			totalMinutes/60, limitHours)
	}
	return c
}

func (e *EligibilityEngine) checkLargeItemConstraint(largeItems int) domain.ConstraintResult {
	limit := e.cfg.MultiDrop.MaxLargeItems
	c := domain.ConstraintResult{
		Passed: largeItems <= limit,
		Value:  float64(largeItems),
		Limit:  float64(limit),
	}
	if !c.Passed {
		c.Reason = fmt.Sprintf(
			"Too many large items for multi-drop (%d > %d). Bulky loads leave no room for other customers' items. Recommend single order pricing.",
			largeItems, limit)
	}
	return c
}

// confidence grades how good a multi-drop fit this booking is. Informational
// only; it never gates eligibility.
func (e *EligibilityEngine) confidence(utilization, distanceMiles, totalMinutes float64) int {
	md := e.cfg.MultiDrop
	score := 100.0
	score -= utilization * 30
	score -= distanceMiles / md.MaxDistanceMiles * 30
	score -= totalMinutes / (md.MaxTotalHours * 60) * 20

	if utilization >= md.IdealLoadMin && utilization <= md.IdealLoadMax {
		score += 10
	}
	if distanceMiles < md.ShortDistanceMiles {
		score += 10
	}

	return int(math.Max(0, math.Min(100, math.Round(score))))
}

func (e *EligibilityEngine) alternatives(
	ctx context.Context,
	distanceMiles, utilization float64,
	load domain.LoadSummary,
) ([]domain.AlternativeOption, error) {
	singlePrice, err := e.pricer.SingleOrderPrice(ctx, distanceMiles, load)
	if err != nil {
		return nil, fmt.Errorf("price single order: %w", err)
	}

	options := []domain.AlternativeOption{{
		Type:           domain.AlternativeSingleOrder,
		Description:    "Dedicated van service with exclusive use. No sharing with other customers.",
		EstimatedPrice: singlePrice,
	}}

	if distanceMiles > e.cfg.MultiDrop.ReturnJourneyMinMiles {
		options = append(options, domain.AlternativeOption{
			Type:           domain.AlternativeReturnJourney,
			Description:    "Share van with return journey customer. Save up to 60% on long-distance moves.",
			EstimatedPrice: singlePrice * 0.5,
		})
	}

	if utilization > 1.0 {
		options = append(options, domain.AlternativeOption{
			Type:           domain.AlternativeSplitLoad,
			Description:    "Load requires 2 vans. Items will be transported in two separate vehicles.",
			EstimatedPrice: singlePrice * 1.8,
		})
	}

	return options, nil
}

func (e *EligibilityEngine) recordRejection(endpoint string, err error) {
	if e.recorder == nil {
		return
	}
	e.recorder.RecordValidationFailure(ports.ValidationEvent{
		Endpoint: endpoint,
		Reason:   err.Error(),
	})
}

func joinFailureReasons(constraints ...domain.ConstraintResult) string {
	reason := ""
	for _, c := range constraints {
		if c.Passed {
			continue
		}
		if reason != "" {
			reason += " "
		}
		reason += c.Reason
	}
	return reason
}

// ScoreMatch grades another pending booking as a sharing partner for this
// booking. The combined route runs pickup, partner pickup, partner dropoff,
// own dropoff; the score penalizes deviation from the direct leg, schedule
// mismatch, and a combined load near capacity.
func (e *EligibilityEngine) ScoreMatch(booking, candidate domain.BookingLite) domain.MatchScore {
	direct := geo.Distance(booking.Pickup, booking.Dropoff)
	combined := geo.RouteDistance(booking.Pickup, candidate.Pickup, candidate.Dropoff, booking.Dropoff)
	deviation := combined - direct

	score := 100.0
	if direct > 0 {
		score -= math.Min(deviation/direct*100, 50)
	}

	timeDiffHours := math.Abs(booking.ScheduledAt.Sub(candidate.ScheduledAt).Hours())
	score -= math.Min(timeDiffHours*5, 20)

	combinedLoad := booking.LoadFraction + candidate.LoadFraction
	if combinedLoad > 0.90 {
		score -= 20
	}

	return domain.MatchScore{
		BookingID:             candidate.BookingID,
		Score:                 math.Max(0, score),
		CombinedDistanceMiles: combined,
		DeviationMiles:        deviation,
		ShareFraction:         candidate.LoadFraction,
	}
}

// BestMatch scores a pool of pending bookings and returns the highest-scoring
// acceptable partner. Ties break on booking id so repeated runs agree.
func (e *EligibilityEngine) BestMatch(booking domain.BookingLite, pool []domain.BookingLite) (domain.MatchScore, bool) {
	var best domain.MatchScore
	found := false

	for _, candidate := range pool {
		if candidate.BookingID == booking.BookingID {
			continue
		}
		match := e.ScoreMatch(booking, candidate)
		if match.Score < e.cfg.MultiDrop.MinMatchScore {
			continue
		}
		if !found || match.Score > best.Score ||
			(match.Score == best.Score && match.BookingID < best.BookingID) {
			best = match
			found = true
		}
	}

	return best, found
}
