package pricing

import (
	"fmt"
	"sort"

	"wasteops/internal/model"
)

// Tier is one step of the volume-tier base-price table.
type Tier struct {
	MaxHomes int     `yaml:"maxHomes" json:"maxHomes"` // 0 = open-ended top tier
	Price    float64 `yaml:"price" json:"price"`       // USD per unit per month
}

// Config carries every pricing knob. It is an explicit value passed into
// each call; the engine holds no mutable "active config" state.
type Config struct {
	TargetMarginPercent       float64 `yaml:"targetMarginPercent" json:"targetMarginPercent"`
	MaxMarginPercent          float64 `yaml:"maxMarginPercent" json:"maxMarginPercent"`
	BenchmarkTolerancePercent float64 `yaml:"benchmarkTolerancePercent" json:"benchmarkTolerancePercent"`
	PlaceholderCostPerUnit    float64 `yaml:"placeholderCostPerUnit" json:"placeholderCostPerUnit"`

	BaseRates map[model.UnitType]float64 `yaml:"baseRates" json:"baseRates"`

	// Condo communities are priced by shared container, not by cart.
	UnitsPerContainer     int     `yaml:"unitsPerContainer" json:"unitsPerContainer"`
	TrashContainerRate    float64 `yaml:"trashContainerRate" json:"trashContainerRate"`
	RecycleContainerRate  float64 `yaml:"recycleContainerRate" json:"recycleContainerRate"`

	WalkoutPremiumFraction    float64 `yaml:"walkoutPremiumFraction" json:"walkoutPremiumFraction"`
	GatedSurcharge            float64 `yaml:"gatedSurcharge" json:"gatedSurcharge"`
	SpecialContainerSurcharge float64 `yaml:"specialContainerSurcharge" json:"specialContainerSurcharge"`

	Benchmarks map[model.UnitType]float64 `yaml:"benchmarks" json:"benchmarks"`

	Tiers []Tier `yaml:"tiers" json:"tiers"`

	ComplexityMultiplier   float64 `yaml:"complexityMultiplier" json:"complexityMultiplier"`
	VolumeDiscount         float64 `yaml:"volumeDiscount" json:"volumeDiscount"`
	VolumeDiscountMinHomes int     `yaml:"volumeDiscountMinHomes" json:"volumeDiscountMinHomes"`
	RoutePairingDiscount   float64 `yaml:"routePairingDiscount" json:"routePairingDiscount"`
	TruckConstraintPenalty float64 `yaml:"truckConstraintPenalty" json:"truckConstraintPenalty"`
}

func DefaultConfig() Config {
	return Config{
		TargetMarginPercent:       20,
		MaxMarginPercent:          40,
		BenchmarkTolerancePercent: 10,
		PlaceholderCostPerUnit:    19.50,
		BaseRates: map[model.UnitType]float64{
			model.UnitSingleFamily:     28.50,
			model.UnitTownhome:         24.00,
			model.UnitMixedResidential: 26.25,
			model.UnitUnknown:          27.00,
		},
		UnitsPerContainer:    8,
		TrashContainerRate:   165.00,
		RecycleContainerRate: 85.00,

		WalkoutPremiumFraction:    0.33,
		GatedSurcharge:            3.50,
		SpecialContainerSurcharge: 2.75,

		Benchmarks: map[model.UnitType]float64{
			model.UnitSingleFamily:     29.00,
			model.UnitTownhome:         25.00,
			model.UnitCondo:            30.00,
			model.UnitMixedResidential: 27.00,
			model.UnitUnknown:          27.00,
		},

		Tiers: []Tier{
			{MaxHomes: 50, Price: 34.00},
			{MaxHomes: 150, Price: 29.50},
			{MaxHomes: 300, Price: 26.50},
			{MaxHomes: 600, Price: 24.00},
			{MaxHomes: 0, Price: 22.00},
		},

		ComplexityMultiplier:   1.10,
		VolumeDiscount:         0.05,
		VolumeDiscountMinHomes: 200,
		RoutePairingDiscount:   0.08,
		TruckConstraintPenalty: 0.15,
	}
}

// Validate rejects an out-of-bounds config before any request is served.
func (c Config) Validate() error {
	if c.MaxMarginPercent < c.TargetMarginPercent {
		return fmt.Errorf("pricing config: maxMarginPercent %.1f < targetMarginPercent %.1f", c.MaxMarginPercent, c.TargetMarginPercent)
	}
	if c.TargetMarginPercent < 0 || c.MaxMarginPercent > 100 {
		return fmt.Errorf("pricing config: margin bounds must be within [0,100]")
	}
	if c.BenchmarkTolerancePercent <= 0 {
		return fmt.Errorf("pricing config: benchmarkTolerancePercent must be > 0")
	}
	if c.PlaceholderCostPerUnit <= 0 {
		return fmt.Errorf("pricing config: placeholderCostPerUnit must be > 0")
	}
	if c.UnitsPerContainer <= 0 {
		return fmt.Errorf("pricing config: unitsPerContainer must be > 0")
	}
	if c.WalkoutPremiumFraction < 0 || c.WalkoutPremiumFraction > 1 {
		return fmt.Errorf("pricing config: walkoutPremiumFraction must be within [0,1]")
	}
	for ut, rate := range c.BaseRates {
		if rate <= 0 {
			return fmt.Errorf("pricing config: base rate for %s must be > 0", ut)
		}
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("pricing config: at least one volume tier is required")
	}
	// Tier prices must be non-increasing as communities grow.
	sorted := append([]Tier(nil), c.Tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MaxHomes == 0 {
			return false
		}
		if sorted[j].MaxHomes == 0 {
			return true
		}
		return sorted[i].MaxHomes < sorted[j].MaxHomes
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Price > sorted[i-1].Price {
			return fmt.Errorf("pricing config: tier prices must not increase with community size (tier %d)", i)
		}
	}
	for _, d := range []float64{c.VolumeDiscount, c.RoutePairingDiscount} {
		if d < 0 || d >= 1 {
			return fmt.Errorf("pricing config: discounts must be within [0,1)")
		}
	}
	if c.TruckConstraintPenalty < 0 {
		return fmt.Errorf("pricing config: truckConstraintPenalty must be >= 0")
	}
	if c.ComplexityMultiplier < 1 {
		return fmt.Errorf("pricing config: complexityMultiplier must be >= 1")
	}
	return nil
}

// TierPrice resolves the base per-unit price for a community size.
func (c Config) TierPrice(homes int) float64 {
	sorted := append([]Tier(nil), c.Tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MaxHomes == 0 {
			return false
		}
		if sorted[j].MaxHomes == 0 {
			return true
		}
		return sorted[i].MaxHomes < sorted[j].MaxHomes
	})
	for _, t := range sorted {
		if t.MaxHomes == 0 || homes <= t.MaxHomes {
			return t.Price
		}
	}
	return sorted[len(sorted)-1].Price
}
