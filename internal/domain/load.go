package domain

// Provenance distinguishes measured load figures from catalog estimates.
// Feasibility decisions accept estimates; pricing elsewhere in the platform
// is stricter and fails loudly on missing weights.
type Provenance string

const (
	ProvenanceMeasured  Provenance = "measured"
	ProvenanceEstimated Provenance = "estimated"
)

// Item dimensions in centimetres.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// VolumeM3 converts the bounding box to cubic metres.
func (d Dimensions) VolumeM3() float64 {
	return d.LengthCm * d.WidthCm * d.HeightCm / 1_000_000
}

// A single inventory line on a booking. Weight and volume are optional;
// missing figures are resolved from the item catalog during load analysis.
type Item struct {
	Category           string
	Name               string
	Quantity           int
	WeightKg           float64 // 0 = unknown
	VolumeM3           float64 // 0 = unknown
	Dimensions         *Dimensions
	RequiresTwoWorkers bool
	Fragile            bool
	Valuable           bool
	DismantleMinutes   float64
	ReassembleMinutes  float64
}

// LoadSpec is the full physical description of a booking's cargo.
type LoadSpec struct {
	Items      []Item
	FloorLevel int
	HasLift    bool
}

// LoadSummary is the aggregate produced by the load analyzer.
type LoadSummary struct {
	TotalWeightKg            float64
	TotalVolumeM3            float64
	EstimatedHandlingMinutes float64
	NeedsTwoWorkers          bool
	LargeItemCount           int
	ItemCount                int
	Provenance               Provenance
}
