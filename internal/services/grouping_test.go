package services

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/domain"
)

func newGroupingOptimizer(t *testing.T) *GroupingOptimizer {
	t.Helper()
	o := NewGroupingOptimizer(testConfig(t), nopRecorder{}, zerolog.Nop())
	n := 0
	o.newID = func() string {
		n++
		return fmt.Sprintf("group-%d", n)
	}
	return o
}

func liteBooking(id string, at time.Time, load float64, priority int) domain.BookingLite {
	return domain.BookingLite{
		BookingID:    id,
		Pickup:       domain.Coordinates{Lat: 51.5074, Lng: -0.1278},
		Dropoff:      domain.Coordinates{Lat: 51.4922, Lng: -0.1631},
		ScheduledAt:  at,
		LoadFraction: load,
		Priority:     priority,
		ValueGBP:     100,
	}
}

func TestCreateOptimalRoutesGroupsCompatibleBookings(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	var bookings []domain.BookingLite
	for i := 0; i < 6; i++ {
		bookings = append(bookings,
			liteBooking(fmt.Sprintf("bk-%d", i), at.Add(time.Duration(i)*20*time.Minute), 0.10, 5))
	}

	groups := o.CreateOptimalRoutes(bookings)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1 (all six fit one route)", len(groups))
	}
	if len(groups[0].BookingIDs) != 6 {
		t.Errorf("bookings in group = %d, want 6", len(groups[0].BookingIDs))
	}
	if groups[0].TotalValue != 600 {
		t.Errorf("total value = %v, want 600", groups[0].TotalValue)
	}
}

func TestCreateOptimalRoutesSplitsOnTimeWindow(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	groups := o.CreateOptimalRoutes([]domain.BookingLite{
		liteBooking("bk-early", at, 0.10, 5),
		liteBooking("bk-late", at.Add(5*time.Hour), 0.10, 5),
	})
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2 (five hours apart)", len(groups))
	}
}

func TestCreateOptimalRoutesSplitsOnLoad(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	groups := o.CreateOptimalRoutes([]domain.BookingLite{
		liteBooking("bk-heavy", at, 0.50, 5),
		liteBooking("bk-other", at, 0.30, 4),
	})
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2 (combined 80%% over the 70%% cap)", len(groups))
	}
}

func TestCreateOptimalRoutesCapsStops(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	var bookings []domain.BookingLite
	for i := 0; i < 8; i++ {
		bookings = append(bookings, liteBooking(fmt.Sprintf("bk-%d", i), at, 0.05, 5))
	}

	groups := o.CreateOptimalRoutes(bookings)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if len(groups[0].BookingIDs) != 6 {
		t.Errorf("first group size = %d, want 6 (stop cap)", len(groups[0].BookingIDs))
	}
	if len(groups[1].BookingIDs) != 2 {
		t.Errorf("second group size = %d, want 2", len(groups[1].BookingIDs))
	}
}

func TestCreateOptimalRoutesPriorityOrder(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	groups := o.CreateOptimalRoutes([]domain.BookingLite{
		liteBooking("bk-low", at, 0.40, 1),
		liteBooking("bk-high", at, 0.40, 9),
	})

	// Loads cannot combine, so the high-priority booking must seed the first
	// route.
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].BookingIDs[0] != "bk-high" {
		t.Errorf("first seed = %q, want bk-high", groups[0].BookingIDs[0])
	}
}

func TestCreateOptimalRoutesIsolatesBadCoordinates(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	broken := liteBooking("bk-broken", at, 0.10, 9)
	broken.Pickup = domain.Coordinates{Lat: math.NaN(), Lng: 0}

	groups := o.CreateOptimalRoutes([]domain.BookingLite{
		broken,
		liteBooking("bk-a", at, 0.10, 5),
		liteBooking("bk-b", at, 0.10, 5),
	})

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2 (broken booking routed alone)", len(groups))
	}
	if len(groups[0].BookingIDs) != 1 || groups[0].BookingIDs[0] != "bk-broken" {
		t.Errorf("first group = %v, want the broken booking alone", groups[0].BookingIDs)
	}
	if len(groups[1].BookingIDs) != 2 {
		t.Errorf("second group = %v, want the two healthy bookings", groups[1].BookingIDs)
	}
}

func TestRouteGroupDurationAndScore(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	groups := o.CreateOptimalRoutes([]domain.BookingLite{
		liteBooking("bk-a", at, 0.10, 5),
		liteBooking("bk-b", at, 0.10, 5),
	})
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	g := groups[0]

	wantDuration := g.TotalDistanceMiles/50*60 + 2*30
	if math.Abs(g.TotalDurationMinutes-wantDuration) > 1e-9 {
		t.Errorf("duration = %v, want %v", g.TotalDurationMinutes, wantDuration)
	}
	wantScore := 2*100 - g.TotalDistanceMiles*0.5
	if math.Abs(g.OptimizationScore-wantScore) > 1e-9 {
		t.Errorf("score = %v, want %v", g.OptimizationScore, wantScore)
	}
}

func TestCanAddBookingToRouteFeasible(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	existing := []domain.BookingLite{
		liteBooking("bk-a", at, 0.20, 5),
		liteBooking("bk-b", at, 0.20, 5),
	}
	check := o.CanAddBookingToRoute("route-1", existing, liteBooking("bk-new", at, 0.20, 5), 150, 120)

	if !check.Feasible {
		t.Fatalf("expected feasible, reason: %q", check.Reason)
	}
	if check.AdditionalDistanceMiles <= 0 {
		t.Errorf("additional distance = %v, want positive", check.AdditionalDistanceMiles)
	}
	if check.Reason != "" {
		t.Errorf("reason = %q, want empty", check.Reason)
	}
}

func TestCanAddBookingToRouteLoadExceeded(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	existing := []domain.BookingLite{liteBooking("bk-a", at, 0.60, 5)}
	check := o.CanAddBookingToRoute("route-1", existing, liteBooking("bk-new", at, 0.20, 5), 150, 120)

	if check.Feasible {
		t.Fatal("80% combined load must not be feasible")
	}
	if !strings.Contains(check.Reason, "combined load") {
		t.Errorf("reason = %q, want combined load failure", check.Reason)
	}
}

func TestCanAddBookingToRouteDetourExceeded(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	existing := []domain.BookingLite{liteBooking("bk-a", at, 0.10, 5)}

	// A Birmingham leg against a short London route is a detour of thousands
	// of percent.
	far := domain.BookingLite{
		BookingID:    "bk-far",
		Pickup:       domain.Coordinates{Lat: 52.4862, Lng: -1.8904},
		Dropoff:      domain.Coordinates{Lat: 53.4808, Lng: -2.2426},
		ScheduledAt:  at,
		LoadFraction: 0.10,
	}
	check := o.CanAddBookingToRoute("route-1", existing, far, 50, 600)

	if check.Feasible {
		t.Fatal("massive detour must not be feasible")
	}
	if !strings.Contains(check.Reason, "detour") {
		t.Errorf("reason = %q, want detour failure", check.Reason)
	}
}

func TestCanAddBookingToRouteReportsAllFailures(t *testing.T) {
	o := newGroupingOptimizer(t)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	existing := []domain.BookingLite{liteBooking("bk-a", at, 0.60, 5)}
	far := domain.BookingLite{
		BookingID:    "bk-far",
		Pickup:       domain.Coordinates{Lat: 52.4862, Lng: -1.8904},
		Dropoff:      domain.Coordinates{Lat: 55.9533, Lng: -3.1883},
		ScheduledAt:  at,
		LoadFraction: 0.20,
	}
	check := o.CanAddBookingToRoute("route-1", existing, far, 10, 30)

	if check.Feasible {
		t.Fatal("expected rejection")
	}
	parts := strings.Split(check.Reason, "; ")
	if len(parts) < 3 {
		t.Errorf("reason = %q, want at least three failures reported together", check.Reason)
	}
}
