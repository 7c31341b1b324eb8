package pricing

import (
	"context"
	"math"
	"testing"

	"multidrop-routing-service/internal/domain"
)

func TestSingleOrderPrice(t *testing.T) {
	e := NewStaticEstimator()

	price, err := e.SingleOrderPrice(context.Background(), 100, domain.LoadSummary{
		TotalWeightKg: 200,
		TotalVolumeM3: 5,
	})
	if err != nil {
		t.Fatalf("price: %v", err)
	}

	want := 45 + 100*1.80 + 200*0.50 + 5*10.0
	if math.Abs(price-want) > 1e-9 {
		t.Errorf("price = %v, want %v", price, want)
	}
}

func TestSingleOrderPriceMinimum(t *testing.T) {
	e := NewStaticEstimator()

	price, err := e.SingleOrderPrice(context.Background(), 1, domain.LoadSummary{
		TotalWeightKg: 5,
		TotalVolumeM3: 0.1,
	})
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if price != e.MinimumGBP {
		t.Errorf("price = %v, want minimum %v", price, e.MinimumGBP)
	}
}

func TestSingleOrderPriceRejectsNegativeDistance(t *testing.T) {
	e := NewStaticEstimator()

	if _, err := e.SingleOrderPrice(context.Background(), -1, domain.LoadSummary{}); err == nil {
		t.Fatal("expected error for negative distance")
	}
}
