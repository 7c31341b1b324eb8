package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/config"
	"multidrop-routing-service/internal/domain"
	"multidrop-routing-service/internal/geo"
	"multidrop-routing-service/internal/ports"
)

// GroupingOptimizer clusters pending bookings into capacity- and
// time-window-bounded route groups with a single greedy pass. Admission looks
// at combined load and schedule proximity only; geographic compatibility is
// handled upstream by corridor matching and must not be re-checked here.
type GroupingOptimizer struct {
	cfg      *config.Config
	recorder ports.CalculationRecorder
	log      zerolog.Logger
	newID    func() string
}

func NewGroupingOptimizer(cfg *config.Config, recorder ports.CalculationRecorder, log zerolog.Logger) *GroupingOptimizer {
	return &GroupingOptimizer{
		cfg:      cfg,
		recorder: recorder,
		log:      log,
		newID:    uuid.NewString,
	}
}

// CreateOptimalRoutes places every booking into exactly one route group.
// Bookings are seeded in priority order; each seed collects compatible
// followers until the route is full. Bookings with unusable coordinates are
// placed alone rather than failing the batch.
func (o *GroupingOptimizer) CreateOptimalRoutes(bookings []domain.BookingLite) []domain.RouteGroup {
	start := time.Now()

	ordered := make([]domain.BookingLite, len(bookings))
	copy(ordered, bookings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].BookingID < ordered[j].BookingID
	})

	assigned := make(map[string]bool, len(ordered))
	groups := make([]domain.RouteGroup, 0)

	for _, seed := range ordered {
		if assigned[seed.BookingID] {
			continue
		}
		assigned[seed.BookingID] = true

		members := []domain.BookingLite{seed}
		combinedLoad := seed.LoadFraction

		if seed.Pickup.Valid() && seed.Dropoff.Valid() {
			for _, candidate := range ordered {
				if assigned[candidate.BookingID] || len(members) >= o.cfg.Grouping.MaxStops {
					continue
				}
				if !candidate.Pickup.Valid() || !candidate.Dropoff.Valid() {
					continue
				}
				if combinedLoad+candidate.LoadFraction > o.cfg.Grouping.MaxCombinedLoadFraction {
					continue
				}
				gap := math.Abs(seed.ScheduledAt.Sub(candidate.ScheduledAt).Hours())
				if gap > o.cfg.Grouping.MaxTimeWindowHours {
					continue
				}

				assigned[candidate.BookingID] = true
				members = append(members, candidate)
				combinedLoad += candidate.LoadFraction
			}
		} else {
			o.log.Warn().
				Str("booking_id", seed.BookingID).
				Msg("booking has unusable coordinates, routed alone")
		}

		groups = append(groups, o.buildGroup(members))
	}

	if o.recorder != nil {
		o.recorder.RecordGrouping(ports.GroupingEvent{
			Bookings: len(bookings),
			Routes:   len(groups),
			Elapsed:  time.Since(start),
		})
	}

	return groups
}

// buildGroup finalizes one cluster: distance is the sum of each member's own
// direct leg, duration adds a fixed service stop per booking.
func (o *GroupingOptimizer) buildGroup(members []domain.BookingLite) domain.RouteGroup {
	var totalDistance, totalValue float64
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.BookingID)
		totalValue += m.ValueGBP
		if m.Pickup.Valid() && m.Dropoff.Valid() {
			totalDistance += geo.Distance(m.Pickup, m.Dropoff)
		}
	}

	stops := len(members)
	duration := totalDistance/o.cfg.Feasibility.AverageSpeedMph*60 +
		float64(stops)*o.cfg.Grouping.StopServiceMinutes

	return domain.RouteGroup{
		ID:                   o.newID(),
		BookingIDs:           ids,
		TotalDistanceMiles:   totalDistance,
		TotalDurationMinutes: duration,
		TotalValue:           totalValue,
		OptimizationScore:    float64(stops)*100 - totalDistance*0.5,
	}
}

// CanAddBookingToRoute checks one incremental admission into an existing,
// possibly in-flight route. All four checks must pass; failures are reported
// together so dispatchers see the full picture at once.
func (o *GroupingOptimizer) CanAddBookingToRoute(
	routeID string,
	existing []domain.BookingLite,
	booking domain.BookingLite,
	maxDetourPct float64,
	maxAdditionalTimeMinutes float64,
) domain.RouteAddCheck {
	combinedLoad := booking.LoadFraction
	var existingDistance float64
	for _, b := range existing {
		combinedLoad += b.LoadFraction
		if b.Pickup.Valid() && b.Dropoff.Valid() {
			existingDistance += geo.Distance(b.Pickup, b.Dropoff)
		}
	}

	additionalDistance := geo.Distance(booking.Pickup, booking.Dropoff)
	additionalTime := additionalDistance/o.cfg.Feasibility.AverageSpeedMph*60 +
		o.cfg.Grouping.StopServiceMinutes
	existingTime := existingDistance/o.cfg.Feasibility.AverageSpeedMph*60 +
		float64(len(existing))*o.cfg.Grouping.StopServiceMinutes

	var reasons []string

	if combinedLoad > o.cfg.Grouping.MaxCombinedLoadFraction {
		reasons = append(reasons, fmt.Sprintf("combined load %.0f%% exceeds %.0f%% limit",
			combinedLoad*100, o.cfg.Grouping.MaxCombinedLoadFraction*100))
	}

	if existingDistance > 0 {
		detourPct := additionalDistance / existingDistance * 100
		if detourPct > maxDetourPct {
			reasons = append(reasons, fmt.Sprintf("detour %.0f%% exceeds %.0f%% limit", detourPct, maxDetourPct))
		}
	}

	if additionalTime > maxAdditionalTimeMinutes {
		reasons = append(reasons, fmt.Sprintf("additional time %.0f min exceeds %.0f min limit",
			additionalTime, maxAdditionalTimeMinutes))
	}

	if existingTime+additionalTime > o.cfg.Grouping.MaxWorkingDayMinutes {
		reasons = append(reasons, fmt.Sprintf("total time %.0f min exceeds %.0f min working day",
			existingTime+additionalTime, o.cfg.Grouping.MaxWorkingDayMinutes))
	}

	check := domain.RouteAddCheck{
		Feasible:                len(reasons) == 0,
		AdditionalDistanceMiles: additionalDistance,
		AdditionalTimeMinutes:   additionalTime,
	}
	if !check.Feasible {
		check.Reason = strings.Join(reasons, "; ")
		o.log.Debug().
			Str("route_id", routeID).
			Str("booking_id", booking.BookingID).
			Str("reason", check.Reason).
			Msg("booking rejected for route")
	}
	return check
}
