package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/config"
	"multidrop-routing-service/internal/domain"
	"multidrop-routing-service/internal/geo"
	"multidrop-routing-service/internal/ports"
)

// FeasibilityEngine answers "when can we serve this booking, and on which
// tier". The decision tree tries express and standard service for the next
// day first, then existing shared routes on the corridor, then a predicted
// consolidation date. Collaborator failures degrade to a low-confidence
// fallback result rather than an error; only invalid input is an error.
type FeasibilityEngine struct {
	cfg      *config.Config
	analyzer *LoadAnalyzer
	fleet    ports.FleetDirectory
	routes   ports.RouteCandidateRepository
	recorder ports.CalculationRecorder
	log      zerolog.Logger
	now      func() time.Time
}

func NewFeasibilityEngine(
	cfg *config.Config,
	analyzer *LoadAnalyzer,
	fleet ports.FleetDirectory,
	routes ports.RouteCandidateRepository,
	recorder ports.CalculationRecorder,
	log zerolog.Logger,
) *FeasibilityEngine {
	return &FeasibilityEngine{
		cfg:      cfg,
		analyzer: analyzer,
		fleet:    fleet,
		routes:   routes,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// CalculateAvailability is the primary entry point. It returns an error only
// for invalid addresses; any collaborator failure yields the fallback result.
func (e *FeasibilityEngine) CalculateAvailability(
	ctx context.Context,
	pickup domain.StructuredAddress,
	drops []domain.StructuredAddress,
	load domain.LoadSpec,
	requestID string,
) (domain.AvailabilityResult, error) {
	start := e.now()

	if err := pickup.Validate("pickup"); err != nil {
		e.recordRejection("availability", err)
		return domain.AvailabilityResult{}, fmt.Errorf("calculate availability: %w", err)
	}
	if len(drops) == 0 {
		err := fmt.Errorf("calculate availability: at least one drop address is required")
		e.recordRejection("availability", err)
		return domain.AvailabilityResult{}, err
	}
	for i, drop := range drops {
		if err := drop.Validate(fmt.Sprintf("drop[%d]", i)); err != nil {
			e.recordRejection("availability", err)
			return domain.AvailabilityResult{}, fmt.Errorf("calculate availability: %w", err)
		}
	}

	summary := e.analyzer.Analyze(load)

	dropPoints := make([]domain.Coordinates, 0, len(drops))
	for _, d := range drops {
		dropPoints = append(dropPoints, d.Coordinates)
	}
	corridor := geo.Corridor(pickup.Coordinates, dropPoints)

	now := e.now()
	tomorrow := dateOnly(now.AddDate(0, 0, 1))

	// The fleet lookup and the corridor candidate fetch are independent;
	// only the branch selection below is sequential.
	var (
		wg         sync.WaitGroup
		drivers    []domain.DriverShift
		vehicles   []domain.VehicleCapacity
		candidates []domain.RouteCandidate
		fleetErr   error
		routesErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		drivers, fleetErr = e.fleet.AvailableDrivers(ctx, tomorrow)
		if fleetErr != nil {
			return
		}
		vehicles, fleetErr = e.fleet.SuitableVehicles(ctx, summary)
	}()
	go func() {
		defer wg.Done()
		candidates, routesErr = e.routes.CandidatesInCorridor(ctx, corridor, tomorrow, tomorrow.AddDate(0, 0, 14))
	}()
	wg.Wait()

	if fleetErr != nil {
		return e.fallback(requestID, start, fmt.Errorf("fleet lookup: %w", fleetErr)), nil
	}
	if routesErr != nil {
		return e.fallback(requestID, start, fmt.Errorf("route candidates for corridor %q: %w", corridor, routesErr)), nil
	}

	if result, ok := e.checkImmediate(drivers, vehicles, pickup, drops, summary, tomorrow); ok {
		e.recordResult(requestID, result, start, false)
		return result, nil
	}

	result, err := e.checkEconomy(ctx, candidates, summary, corridor, now)
	if err != nil {
		return e.fallback(requestID, start, err), nil
	}

	e.recordResult(requestID, result, start, false)
	return result, nil
}

// checkImmediate decides express or standard service for the next day.
// Oversized jobs never qualify regardless of fleet availability.
func (e *FeasibilityEngine) checkImmediate(
	drivers []domain.DriverShift,
	vehicles []domain.VehicleCapacity,
	pickup domain.StructuredAddress,
	drops []domain.StructuredAddress,
	load domain.LoadSummary,
	tomorrow time.Time,
) (domain.AvailabilityResult, bool) {
	pairs := len(drivers)
	if len(vehicles) < pairs {
		pairs = len(vehicles)
	}
	if pairs == 0 {
		return domain.AvailabilityResult{}, false
	}

	points := make([]domain.Coordinates, 0, len(drops)+1)
	points = append(points, pickup.Coordinates)
	for _, d := range drops {
		points = append(points, d.Coordinates)
	}
	travelMinutes := geo.RouteDistance(points...) / e.cfg.Feasibility.AverageSpeedMph * 60
	duration := travelMinutes + load.EstimatedHandlingMinutes

	if duration > e.cfg.Feasibility.MaxJobDurationMinutes {
		e.log.Warn().
			Float64("estimated_minutes", duration).
			Float64("max_minutes", e.cfg.Feasibility.MaxJobDurationMinutes).
			Msg("job exceeds maximum duration, immediate service refused")
		return domain.AvailabilityResult{}, false
	}

	if pairs >= e.cfg.Feasibility.ExpressDriverPairs {
		return domain.AvailabilityResult{
			NextAvailableDate: tomorrow,
			Window:            domain.WindowAllDay,
			RouteType:         domain.RouteExpress,
			Confidence:        95,
			Explanation:       "Dedicated vehicle available tomorrow",
			CapacityUsedPct:   100,
			FillRate:          100,
			DispatchTime:      "08:00",
		}, true
	}

	return domain.AvailabilityResult{
		NextAvailableDate: tomorrow,
		Window:            domain.WindowAM,
		RouteType:         domain.RouteStandard,
		Confidence:        85,
		Explanation:       "Priority slot available tomorrow morning",
		CapacityUsedPct:   75,
		FillRate:          75,
		DispatchTime:      "09:00",
	}, true
}

// checkEconomy walks corridor candidates in stored order and claims the first
// one that accepts the load at a viable fill rate. Reservation is atomic at
// the repository; a lost race moves on to the next candidate.
func (e *FeasibilityEngine) checkEconomy(
	ctx context.Context,
	candidates []domain.RouteCandidate,
	load domain.LoadSummary,
	corridor string,
	now time.Time,
) (domain.AvailabilityResult, error) {
	buffer := e.cfg.Feasibility.CapacityBuffer

	for _, candidate := range candidates {
		if !CheckCapacityFit(candidate, load, buffer) {
			continue
		}
		fillRate := ProjectedFillRate(candidate, load)
		if fillRate < e.cfg.Feasibility.MinFillRatePct {
			continue
		}

		claimed, err := e.routes.ReserveCapacity(ctx, candidate.ID, load.TotalWeightKg, load.TotalVolumeM3, buffer)
		if err != nil {
			return domain.AvailabilityResult{}, fmt.Errorf("reserve capacity on route %q: %w", candidate.ID, err)
		}
		if !claimed {
			continue
		}

		dispatch := "13:00"
		if candidate.Window == domain.WindowAM {
			dispatch = "08:00"
		}
		return domain.AvailabilityResult{
			NextAvailableDate: candidate.Date,
			Window:            candidate.Window,
			RouteType:         domain.RouteEconomy,
			Confidence:        90,
			Explanation:       fmt.Sprintf("Route ready with %.0f%% fill rate", fillRate),
			CapacityUsedPct:   fillRate,
			FillRate:          fillRate,
			RouteID:           candidate.ID,
			DispatchTime:      dispatch,
		}, nil
	}

	// No viable candidate yet; predict a consolidation date instead of failing.
	predicted := dateOnly(now.AddDate(0, 0, e.cfg.Feasibility.PredictedEconomyDays))
	e.log.Info().
		Str("corridor", corridor).
		Time("predicted_date", predicted).
		Msg("no open route candidate, predicting consolidation date")

	return domain.AvailabilityResult{
		NextAvailableDate: predicted,
		Window:            domain.WindowAM,
		RouteType:         domain.RouteEconomy,
		Confidence:        75,
		Explanation:       "Projected route consolidation based on demand patterns",
		CapacityUsedPct:   85,
		FillRate:          85,
		DispatchTime:      "08:00",
	}, nil
}

func (e *FeasibilityEngine) fallback(requestID string, start time.Time, cause error) domain.AvailabilityResult {
	e.log.Error().
		Err(cause).
		Str("request_id", requestID).
		Msg("availability calculation degraded to fallback")

	result := domain.AvailabilityResult{
		NextAvailableDate: dateOnly(e.now().AddDate(0, 0, e.cfg.Feasibility.FallbackDays)),
		Window:            domain.WindowAllDay,
		RouteType:         domain.RouteStandard,
		Confidence:        60,
		Explanation:       "Fallback scheduling - manual review required",
		CapacityUsedPct:   50,
		FillRate:          50,
	}
	e.recordResult(requestID, result, start, true)
	return result
}

func (e *FeasibilityEngine) recordResult(requestID string, result domain.AvailabilityResult, start time.Time, fallback bool) {
	if e.recorder == nil {
		return
	}
	e.recorder.RecordCalculation(ports.CalculationEvent{
		RouteType:  string(result.RouteType),
		Confidence: result.Confidence,
		Fallback:   fallback,
		Elapsed:    e.now().Sub(start),
	})
}

func (e *FeasibilityEngine) recordRejection(endpoint string, err error) {
	if e.recorder == nil {
		return
	}
	e.recorder.RecordValidationFailure(ports.ValidationEvent{
		Endpoint: endpoint,
		Reason:   err.Error(),
	})
}

// CheckCapacityFit reports whether the load fits the candidate's remaining
// capacity once the safety buffer is held back from both axes.
func CheckCapacityFit(candidate domain.RouteCandidate, load domain.LoadSummary, buffer float64) bool {
	return load.TotalWeightKg <= candidate.RemainingWeightKg()*(1-buffer) &&
		load.TotalVolumeM3 <= candidate.RemainingVolumeM3()*(1-buffer)
}

// ProjectedFillRate is the candidate's fill rate percentage after adding the
// load, on the limiting axis. Values over 100 signal overcommit and are left
// unclamped on purpose.
func ProjectedFillRate(candidate domain.RouteCandidate, load domain.LoadSummary) float64 {
	weightPct := (candidate.CurrentWeightKg + load.TotalWeightKg) / candidate.MaxWeightKg * 100
	volumePct := (candidate.CurrentVolumeM3 + load.TotalVolumeM3) / candidate.MaxVolumeM3 * 100
	if weightPct > volumePct {
		return weightPct
	}
	return volumePct
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
