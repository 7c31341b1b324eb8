package services

import (
	"math"
	"testing"

	"multidrop-routing-service/internal/config"
	"multidrop-routing-service/internal/domain"
)

func defaultLoadConfig() config.LoadConfig {
	var cfg config.Config
	cfg.SetDefaults()
	return cfg.Load
}

func TestAnalyzeMeasuredItems(t *testing.T) {
	a := NewLoadAnalyzer(defaultLoadConfig())

	summary := a.Analyze(domain.LoadSpec{
		Items: []domain.Item{
			{Category: "furniture", Name: "dining_table", Quantity: 1, WeightKg: 45, VolumeM3: 1.4},
			{Category: "boxes", Name: "medium", Quantity: 10, WeightKg: 8, VolumeM3: 0.1},
		},
	})

	if summary.TotalWeightKg != 125 {
		t.Errorf("total weight = %v, want 125", summary.TotalWeightKg)
	}
	if math.Abs(summary.TotalVolumeM3-2.4) > 1e-9 {
		t.Errorf("total volume = %v, want 2.4", summary.TotalVolumeM3)
	}
	if summary.ItemCount != 11 {
		t.Errorf("item count = %d, want 11", summary.ItemCount)
	}
	if summary.Provenance != domain.ProvenanceMeasured {
		t.Errorf("provenance = %q, want measured", summary.Provenance)
	}

	// (1.4*4)*1.2 load + (1.4*3)*1.2 unload for the table,
	// plus 10 boxes at (0.1*4)*1.2 + (0.1*3)*1.2.
	wantHandling := (1.4*4+1.4*3)*1.2 + 10*(0.1*4+0.1*3)*1.2
	if math.Abs(summary.EstimatedHandlingMinutes-wantHandling) > 1e-9 {
		t.Errorf("handling minutes = %v, want %v", summary.EstimatedHandlingMinutes, wantHandling)
	}
}

func TestAnalyzeFallsBackToCatalog(t *testing.T) {
	a := NewLoadAnalyzer(defaultLoadConfig())

	summary := a.Analyze(domain.LoadSpec{
		Items: []domain.Item{
			{Category: "furniture", Name: "wardrobe", Quantity: 1},
		},
	})

	if summary.TotalWeightKg != 100 {
		t.Errorf("catalog weight = %v, want 100", summary.TotalWeightKg)
	}
	if summary.TotalVolumeM3 != 2.0 {
		t.Errorf("catalog volume = %v, want 2.0", summary.TotalVolumeM3)
	}
	if summary.Provenance != domain.ProvenanceEstimated {
		t.Errorf("provenance = %q, want estimated", summary.Provenance)
	}
	if !summary.NeedsTwoWorkers {
		t.Error("wardrobe should require two workers")
	}
	if summary.LargeItemCount != 1 {
		t.Errorf("large item count = %d, want 1", summary.LargeItemCount)
	}
}

func TestAnalyzeUnknownCategoryUsesBoxTable(t *testing.T) {
	a := NewLoadAnalyzer(defaultLoadConfig())

	summary := a.Analyze(domain.LoadSpec{
		Items: []domain.Item{
			{Category: "garden", Name: "unknown_thing", Quantity: 2},
		},
	})

	if summary.TotalWeightKg != 20 {
		t.Errorf("fallback weight = %v, want 20", summary.TotalWeightKg)
	}
	if math.Abs(summary.TotalVolumeM3-0.2) > 1e-9 {
		t.Errorf("fallback volume = %v, want 0.2", summary.TotalVolumeM3)
	}
}

func TestAnalyzeFloorMultiplier(t *testing.T) {
	a := NewLoadAnalyzer(defaultLoadConfig())

	spec := domain.LoadSpec{
		Items: []domain.Item{
			{Category: "boxes", Name: "large", Quantity: 1, WeightKg: 15, VolumeM3: 0.15},
		},
	}

	ground := a.Analyze(spec)

	spec.FloorLevel = 2
	secondFloor := a.Analyze(spec)

	want := ground.EstimatedHandlingMinutes * 1.4 * 1.4
	if math.Abs(secondFloor.EstimatedHandlingMinutes-want) > 1e-9 {
		t.Errorf("second floor handling = %v, want %v", secondFloor.EstimatedHandlingMinutes, want)
	}

	spec.HasLift = true
	withLift := a.Analyze(spec)
	if withLift.EstimatedHandlingMinutes != ground.EstimatedHandlingMinutes {
		t.Error("lift should cancel the floor multiplier")
	}
}

func TestAnalyzeHeavyItemNeedsTwoWorkers(t *testing.T) {
	a := NewLoadAnalyzer(defaultLoadConfig())

	summary := a.Analyze(domain.LoadSpec{
		Items: []domain.Item{
			{Category: "furniture", Name: "safe", Quantity: 1, WeightKg: 90, VolumeM3: 0.4},
		},
	})
	if !summary.NeedsTwoWorkers {
		t.Error("90kg item should require two workers")
	}
	if summary.LargeItemCount != 1 {
		t.Errorf("large item count = %d, want 1 (weight over limit)", summary.LargeItemCount)
	}
}

func TestAnalyzeDismantleTime(t *testing.T) {
	a := NewLoadAnalyzer(defaultLoadConfig())

	plain := a.Analyze(domain.LoadSpec{
		Items: []domain.Item{{Category: "furniture", Name: "bed_double", Quantity: 1, WeightKg: 60, VolumeM3: 1.8}},
	})
	flat := a.Analyze(domain.LoadSpec{
		Items: []domain.Item{{
			Category: "furniture", Name: "bed_double", Quantity: 1, WeightKg: 60, VolumeM3: 1.8,
			DismantleMinutes: 20, ReassembleMinutes: 30,
		}},
	})

	// Dismantle and reassemble minutes carry the same 20% buffer.
	want := plain.EstimatedHandlingMinutes + (20+30)*1.2
	if math.Abs(flat.EstimatedHandlingMinutes-want) > 1e-9 {
		t.Errorf("handling with dismantle = %v, want %v", flat.EstimatedHandlingMinutes, want)
	}
}
