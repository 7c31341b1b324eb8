package services

import (
	"math"

	"multidrop-routing-service/internal/config"
	"multidrop-routing-service/internal/domain"
)

// LoadAnalyzer turns a booking's item list into a load summary. Measured
// weights and volumes are used when present; gaps are filled from the
// catalog tables and the summary is marked estimated.
type LoadAnalyzer struct {
	cfg config.LoadConfig
}

func NewLoadAnalyzer(cfg config.LoadConfig) *LoadAnalyzer {
	return &LoadAnalyzer{cfg: cfg}
}

// Analyze aggregates weight, volume, handling time and crew requirements
// across all items. Handling time covers loading and unloading, scaled per
// floor level when the building has no lift.
func (a *LoadAnalyzer) Analyze(spec domain.LoadSpec) domain.LoadSummary {
	var (
		totalWeight  float64
		totalVolume  float64
		loadMinutes  float64
		unloadMins   float64
		twoWorkers   bool
		largeItems   int
		itemCount    int
		anyEstimated bool
	)

	for _, item := range spec.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		volume := item.VolumeM3
		if volume == 0 && item.Dimensions != nil {
			volume = item.Dimensions.VolumeM3()
		}
		if volume == 0 {
			volume = estimateItemVolume(item.Category, item.Name)
			anyEstimated = true
		}

		weight := item.WeightKg
		if weight == 0 {
			weight = estimateItemWeight(item.Category, item.Name)
			anyEstimated = true
		}

		totalVolume += volume * float64(qty)
		totalWeight += weight * float64(qty)

		perItemLoad := (volume*a.cfg.LoadMinutesPerM3 + item.DismantleMinutes) * a.cfg.HandlingBuffer
		perItemUnload := (volume*a.cfg.UnloadMinutesPerM3 + item.ReassembleMinutes) * a.cfg.HandlingBuffer
		loadMinutes += perItemLoad * float64(qty)
		unloadMins += perItemUnload * float64(qty)

		if item.RequiresTwoWorkers || isTwoWorkerItem(item.Name, weight, a.cfg.TwoWorkerWeightKg) {
			twoWorkers = true
		}
		if volume > a.cfg.LargeItemVolumeM3 || weight > a.cfg.LargeItemWeightKg {
			largeItems += qty
		}
		itemCount += qty
	}

	if spec.FloorLevel > 0 && !spec.HasLift {
		multiplier := math.Pow(a.cfg.FloorMultiplier, float64(spec.FloorLevel))
		loadMinutes *= multiplier
		unloadMins *= multiplier
	}

	provenance := domain.ProvenanceMeasured
	if anyEstimated {
		provenance = domain.ProvenanceEstimated
	}

	return domain.LoadSummary{
		TotalWeightKg:            totalWeight,
		TotalVolumeM3:            totalVolume,
		EstimatedHandlingMinutes: loadMinutes + unloadMins,
		NeedsTwoWorkers:          twoWorkers,
		LargeItemCount:           largeItems,
		ItemCount:                itemCount,
		Provenance:               provenance,
	}
}
