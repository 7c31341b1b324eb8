package geo

import (
	"math"
	"testing"

	"multidrop-routing-service/internal/domain"
)

var (
	london     = domain.Coordinates{Lat: 51.5074, Lng: -0.1278}
	battersea  = domain.Coordinates{Lat: 51.4922, Lng: -0.1631}
	manchester = domain.Coordinates{Lat: 53.4808, Lng: -2.2426}
)

func TestDistanceIdentity(t *testing.T) {
	if d := Distance(london, london); d != 0 {
		t.Fatalf("Distance(a, a) = %v, want 0", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	ab := Distance(london, manchester)
	ba := Distance(manchester, london)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("Distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceIncludesRoadFactor(t *testing.T) {
	// London -> Manchester is ~163 great-circle miles; with the 15% road
	// uplift the estimate must land near 187, well clear of the raw figure.
	d := Distance(london, manchester)
	if d < 180 || d > 200 {
		t.Fatalf("Distance(london, manchester) = %v, want ~187", d)
	}
}

func TestRouteDistanceChainsLegs(t *testing.T) {
	direct := Distance(london, battersea) + Distance(battersea, manchester)
	chained := RouteDistance(london, battersea, manchester)
	if math.Abs(direct-chained) > 1e-9 {
		t.Fatalf("RouteDistance = %v, want %v", chained, direct)
	}

	if d := RouteDistance(london); d != 0 {
		t.Fatalf("RouteDistance with one point = %v, want 0", d)
	}
}

func TestCorridorDeterministic(t *testing.T) {
	drops := []domain.Coordinates{battersea}

	first := Corridor(london, drops)
	for i := 0; i < 10; i++ {
		if got := Corridor(london, drops); got != first {
			t.Fatalf("corridor not deterministic: %q vs %q", got, first)
		}
	}

	if first != "5149_5151_-16_-13" {
		t.Fatalf("corridor = %q, want 5149_5151_-16_-13", first)
	}
}

func TestCorridorSeparatesDisjointClusters(t *testing.T) {
	londonID := Corridor(london, []domain.Coordinates{battersea})
	manchesterID := Corridor(manchester, []domain.Coordinates{{Lat: 53.4084, Lng: -2.9916}})

	if londonID == manchesterID {
		t.Fatalf("disjoint clusters share corridor id %q", londonID)
	}
}
