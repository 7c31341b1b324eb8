package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with defaults: %v", err)
	}
	if cfg.Capacity.FullLoadThreshold != 0.90 {
		t.Errorf("fullLoadThreshold = %v, want 0.90", cfg.Capacity.FullLoadThreshold)
	}
	if cfg.Capacity.PartialLoadThreshold != 0.70 {
		t.Errorf("partialLoadThreshold = %v, want 0.70", cfg.Capacity.PartialLoadThreshold)
	}
	if cfg.Feasibility.AverageSpeedMph != 50 {
		t.Errorf("averageSpeedMph = %v, want 50", cfg.Feasibility.AverageSpeedMph)
	}
	if cfg.Grouping.MaxStops != 6 {
		t.Errorf("maxStops = %d, want 6", cfg.Grouping.MaxStops)
	}
	if cfg.Vehicle.MaxWeightKg != 1000 || cfg.Vehicle.MaxVolumeM3 != 15 {
		t.Errorf("vehicle = %v/%v, want 1000/15", cfg.Vehicle.MaxWeightKg, cfg.Vehicle.MaxVolumeM3)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MDR_FEASIBILITY__AVERAGESPEEDMPH", "40")
	t.Setenv("MDR_GROUPING__MAXSTOPS", "4")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with env overrides: %v", err)
	}
	if cfg.Feasibility.AverageSpeedMph != 40 {
		t.Errorf("averageSpeedMph = %v, want 40", cfg.Feasibility.AverageSpeedMph)
	}
	if cfg.Grouping.MaxStops != 4 {
		t.Errorf("maxStops = %d, want 4", cfg.Grouping.MaxStops)
	}
}

func TestValidateRejectsInvertedThresholds(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	cfg.Capacity.FullLoadThreshold = 0.60
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for fullLoadThreshold below partialLoadThreshold")
	}
}

func TestValidateRejectsZeroSpeed(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	cfg.Feasibility.AverageSpeedMph = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive speed")
	}
}
