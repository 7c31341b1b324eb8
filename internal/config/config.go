// Package config holds the tunable business constants of the routing core.
// Thresholds and speeds were fixed literals in earlier revisions; they are
// configuration inputs now so operations can tune them without a redeploy.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Capacity    CapacityConfig    `json:"capacity"`
	Load        LoadConfig        `json:"load"`
	Feasibility FeasibilityConfig `json:"feasibility"`
	MultiDrop   MultiDropConfig   `json:"multiDrop"`
	Grouping    GroupingConfig    `json:"grouping"`
	Vehicle     VehicleConfig     `json:"vehicle"`
	Cache       CacheConfig       `json:"cache"`
}

// CapacityConfig drives the FULL_LOAD / PARTIAL_LOAD classification.
type CapacityConfig struct {
	FullLoadThreshold    float64 `json:"fullLoadThreshold"`
	PartialLoadThreshold float64 `json:"partialLoadThreshold"`
}

// LoadConfig drives the load analyzer's handling-time model.
type LoadConfig struct {
	LoadMinutesPerM3   float64 `json:"loadMinutesPerM3"`
	UnloadMinutesPerM3 float64 `json:"unloadMinutesPerM3"`
	HandlingBuffer     float64 `json:"handlingBuffer"`  // e.g. 1.2 = +20%
	FloorMultiplier    float64 `json:"floorMultiplier"` // per floor without lift
	TwoWorkerWeightKg  float64 `json:"twoWorkerWeightKg"`
	LargeItemVolumeM3  float64 `json:"largeItemVolumeM3"`
	LargeItemWeightKg  float64 `json:"largeItemWeightKg"`
}

// FeasibilityConfig drives the availability decision tree.
type FeasibilityConfig struct {
	AverageSpeedMph       float64 `json:"averageSpeedMph"`
	MaxJobDurationMinutes float64 `json:"maxJobDurationMinutes"` // hard ceiling for express/standard
	MinFillRatePct        float64 `json:"minFillRatePct"`
	CapacityBuffer        float64 `json:"capacityBuffer"` // fraction of remaining capacity held back
	ExpressDriverPairs    int     `json:"expressDriverPairs"`
	PredictedEconomyDays  int     `json:"predictedEconomyDays"`
	FallbackDays          int     `json:"fallbackDays"`
}

// MultiDropConfig drives the eligibility constraints and match scoring.
type MultiDropConfig struct {
	MaxLoadFraction       float64 `json:"maxLoadFraction"`
	MaxDistanceMiles      float64 `json:"maxDistanceMiles"`
	MaxTotalHours         float64 `json:"maxTotalHours"`
	MaxLargeItems         int     `json:"maxLargeItems"`
	MinMatchScore         float64 `json:"minMatchScore"`
	ReturnJourneyMinMiles float64 `json:"returnJourneyMinMiles"`
	IdealLoadMin          float64 `json:"idealLoadMin"`
	IdealLoadMax          float64 `json:"idealLoadMax"`
	ShortDistanceMiles    float64 `json:"shortDistanceMiles"`
}

// GroupingConfig drives the batch route grouping optimizer.
type GroupingConfig struct {
	MaxCombinedLoadFraction float64 `json:"maxCombinedLoadFraction"`
	MaxTimeWindowHours      float64 `json:"maxTimeWindowHours"`
	MaxStops                int     `json:"maxStops"`
	MaxWorkingDayMinutes    float64 `json:"maxWorkingDayMinutes"`
	StopServiceMinutes      float64 `json:"stopServiceMinutes"`
}

// VehicleConfig is the reference vehicle class all fractions are computed
// against (the ~1000 kg / 15 m³ large van).
type VehicleConfig struct {
	MaxWeightKg float64 `json:"maxWeightKg"`
	MaxVolumeM3 float64 `json:"maxVolumeM3"`
	CrewSize    int     `json:"crewSize"`
}

// CacheConfig controls the corridor candidate cache.
type CacheConfig struct {
	TTLSeconds int `json:"ttlSeconds"`
}

func (c *Config) SetDefaults() {
	if c.Capacity.FullLoadThreshold == 0 {
		c.Capacity.FullLoadThreshold = 0.90
	}
	if c.Capacity.PartialLoadThreshold == 0 {
		c.Capacity.PartialLoadThreshold = 0.70
	}

	if c.Load.LoadMinutesPerM3 == 0 {
		c.Load.LoadMinutesPerM3 = 4
	}
	if c.Load.UnloadMinutesPerM3 == 0 {
		c.Load.UnloadMinutesPerM3 = 3
	}
	if c.Load.HandlingBuffer == 0 {
		c.Load.HandlingBuffer = 1.2
	}
	if c.Load.FloorMultiplier == 0 {
		c.Load.FloorMultiplier = 1.4
	}
	if c.Load.TwoWorkerWeightKg == 0 {
		c.Load.TwoWorkerWeightKg = 50
	}
	if c.Load.LargeItemVolumeM3 == 0 {
		c.Load.LargeItemVolumeM3 = 1.0
	}
	if c.Load.LargeItemWeightKg == 0 {
		c.Load.LargeItemWeightKg = 30
	}

	if c.Feasibility.AverageSpeedMph == 0 {
		c.Feasibility.AverageSpeedMph = 50
	}
	if c.Feasibility.MaxJobDurationMinutes == 0 {
		c.Feasibility.MaxJobDurationMinutes = 10 * 60
	}
	if c.Feasibility.MinFillRatePct == 0 {
		c.Feasibility.MinFillRatePct = 50
	}
	if c.Feasibility.CapacityBuffer == 0 {
		c.Feasibility.CapacityBuffer = 0.10
	}
	if c.Feasibility.ExpressDriverPairs == 0 {
		c.Feasibility.ExpressDriverPairs = 2
	}
	if c.Feasibility.PredictedEconomyDays == 0 {
		c.Feasibility.PredictedEconomyDays = 2
	}
	if c.Feasibility.FallbackDays == 0 {
		c.Feasibility.FallbackDays = 7
	}

	if c.MultiDrop.MaxLoadFraction == 0 {
		c.MultiDrop.MaxLoadFraction = 0.70
	}
	if c.MultiDrop.MaxDistanceMiles == 0 {
		c.MultiDrop.MaxDistanceMiles = 200
	}
	if c.MultiDrop.MaxTotalHours == 0 {
		c.MultiDrop.MaxTotalHours = 8
	}
	if c.MultiDrop.MaxLargeItems == 0 {
		c.MultiDrop.MaxLargeItems = 8
	}
	if c.MultiDrop.MinMatchScore == 0 {
		c.MultiDrop.MinMatchScore = 60
	}
	if c.MultiDrop.ReturnJourneyMinMiles == 0 {
		c.MultiDrop.ReturnJourneyMinMiles = 150
	}
	if c.MultiDrop.IdealLoadMin == 0 {
		c.MultiDrop.IdealLoadMin = 0.20
	}
	if c.MultiDrop.IdealLoadMax == 0 {
		c.MultiDrop.IdealLoadMax = 0.40
	}
	if c.MultiDrop.ShortDistanceMiles == 0 {
		c.MultiDrop.ShortDistanceMiles = 100
	}

	if c.Grouping.MaxCombinedLoadFraction == 0 {
		c.Grouping.MaxCombinedLoadFraction = 0.70
	}
	if c.Grouping.MaxTimeWindowHours == 0 {
		c.Grouping.MaxTimeWindowHours = 2
	}
	if c.Grouping.MaxStops == 0 {
		c.Grouping.MaxStops = 6
	}
	if c.Grouping.MaxWorkingDayMinutes == 0 {
		c.Grouping.MaxWorkingDayMinutes = 13 * 60
	}
	if c.Grouping.StopServiceMinutes == 0 {
		c.Grouping.StopServiceMinutes = 30
	}

	if c.Vehicle.MaxWeightKg == 0 {
		c.Vehicle.MaxWeightKg = 1000
	}
	if c.Vehicle.MaxVolumeM3 == 0 {
		c.Vehicle.MaxVolumeM3 = 15
	}
	if c.Vehicle.CrewSize == 0 {
		c.Vehicle.CrewSize = 2
	}

	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
}

func (c *Config) Validate() error {
	if c.Capacity.PartialLoadThreshold <= 0 || c.Capacity.PartialLoadThreshold >= 1 {
		return fmt.Errorf("config: partialLoadThreshold %v must be in (0, 1)", c.Capacity.PartialLoadThreshold)
	}
	if c.Capacity.FullLoadThreshold <= c.Capacity.PartialLoadThreshold {
		return fmt.Errorf("config: fullLoadThreshold %v must exceed partialLoadThreshold %v",
			c.Capacity.FullLoadThreshold, c.Capacity.PartialLoadThreshold)
	}
	if c.Feasibility.AverageSpeedMph <= 0 {
		return fmt.Errorf("config: averageSpeedMph %v must be positive", c.Feasibility.AverageSpeedMph)
	}
	if c.Feasibility.CapacityBuffer < 0 || c.Feasibility.CapacityBuffer >= 1 {
		return fmt.Errorf("config: capacityBuffer %v must be in [0, 1)", c.Feasibility.CapacityBuffer)
	}
	if c.Grouping.MaxStops < 1 {
		return fmt.Errorf("config: maxStops %d must be at least 1", c.Grouping.MaxStops)
	}
	if c.Vehicle.MaxWeightKg <= 0 || c.Vehicle.MaxVolumeM3 <= 0 {
		return fmt.Errorf("config: vehicle capacity must be positive (weight %v, volume %v)",
			c.Vehicle.MaxWeightKg, c.Vehicle.MaxVolumeM3)
	}
	return nil
}

// ReferenceVehicle returns the configured reference vehicle class.
func (c *Config) ReferenceVehicle() VehicleReference {
	return VehicleReference{
		MaxWeightKg: c.Vehicle.MaxWeightKg,
		MaxVolumeM3: c.Vehicle.MaxVolumeM3,
		CrewSize:    c.Vehicle.CrewSize,
	}
}

// VehicleReference mirrors domain.VehicleCapacity without importing it,
// keeping config dependency-free.
type VehicleReference struct {
	MaxWeightKg float64
	MaxVolumeM3 float64
	CrewSize    int
}

// Load reads an optional YAML file and applies MDR_ environment overrides
// (MDR_CAPACITY__FULLLOADTHRESHOLD maps to capacity.fullLoadThreshold).
// An empty path yields pure defaults plus environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("MDR_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mdr_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
