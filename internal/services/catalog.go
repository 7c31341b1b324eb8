package services

import "strings"

// Fallback volume and weight tables for items submitted without measured
// dimensions. Keyed by category then item name; unknown categories fall back
// to the boxes table, unknown names to the category default.

var itemVolumesM3 = map[string]map[string]float64{
	"furniture": {
		"sofa":             2.5,
		"bed_double":       1.8,
		"bed_king":         2.2,
		"wardrobe":         2.0,
		"dining_table":     1.5,
		"chest_of_drawers": 0.8,
		"bookshelf":        1.0,
		"tv_stand":         0.6,
		"desk":             1.2,
		"chair":            0.3,
		"default":          1.0,
	},
	"appliances": {
		"fridge":          1.5,
		"washing_machine": 1.0,
		"dishwasher":      0.8,
		"oven":            1.2,
		"microwave":       0.15,
		"default":         0.8,
	},
	"boxes": {
		"small":   0.05,
		"medium":  0.1,
		"large":   0.15,
		"default": 0.1,
	},
}

var itemWeightsKg = map[string]map[string]float64{
	"furniture": {
		"sofa":             80,
		"bed_double":       60,
		"bed_king":         75,
		"wardrobe":         100,
		"dining_table":     50,
		"chest_of_drawers": 40,
		"bookshelf":        45,
		"tv_stand":         30,
		"desk":             40,
		"chair":            15,
		"default":          40,
	},
	"appliances": {
		"fridge":          70,
		"washing_machine": 65,
		"dishwasher":      50,
		"oven":            60,
		"microwave":       15,
		"default":         40,
	},
	"boxes": {
		"small":   5,
		"medium":  10,
		"large":   15,
		"default": 10,
	},
}

// Items that always need a second crew member regardless of weight.
var twoWorkerItems = []string{
	"wardrobe",
	"bed_king",
	"bed_super_king",
	"sofa_3_seater",
	"sofa_corner",
	"fridge_american",
	"washing_machine",
	"piano",
}

func estimateItemVolume(category, name string) float64 {
	table, ok := itemVolumesM3[category]
	if !ok {
		table = itemVolumesM3["boxes"]
	}
	if v, ok := table[name]; ok {
		return v
	}
	if v, ok := table["default"]; ok {
		return v
	}
	return 0.5
}

func estimateItemWeight(category, name string) float64 {
	table, ok := itemWeightsKg[category]
	if !ok {
		table = itemWeightsKg["boxes"]
	}
	if w, ok := table[name]; ok {
		return w
	}
	if w, ok := table["default"]; ok {
		return w
	}
	return 20
}

func isTwoWorkerItem(name string, weightKg, threshold float64) bool {
	if weightKg > threshold {
		return true
	}
	for _, id := range twoWorkerItems {
		if strings.Contains(name, id) {
			return true
		}
	}
	return false
}
