package pricing

import (
	"fmt"

	"wasteops/internal/model"
)

// TieredInput carries the context the tier modifier needs beyond the
// request itself.
type TieredInput struct {
	Homes          int
	StreamCount    int
	Fleet          model.FleetAnalysisResult
	HasNearbyRoute bool
	// Insight is blended 50/50 into the tier base when it carries high
	// confidence; otherwise ignored.
	Insight *model.PricingInsight
}

// TieredPrice applies the volume-tier base price and the fixed modifier
// sequence. Order is deliberate: the truck-constraint penalty lands
// last, after discounts, so stacked discounts can never fully offset it.
func TieredPrice(cfg Config, in TieredInput) model.TieredPrice {
	out := model.TieredPrice{}

	base := cfg.TierPrice(in.Homes)
	out.Breakdown = append(out.Breakdown, fmt.Sprintf("tier base for %d homes: $%.2f/unit", in.Homes, base))

	if in.Insight != nil && in.Insight.Confidence == model.ConfidenceHigh {
		blended := (base + in.Insight.SuggestedPricePerHome) / 2
		out.Breakdown = append(out.Breakdown, fmt.Sprintf("blended 50/50 with historical anchor $%.2f: $%.2f/unit", in.Insight.SuggestedPricePerHome, blended))
		base = blended
	}
	out.BasePrice = base

	price := base
	apply := func(name string, factor float64, applied bool, note string) {
		out.Modifiers = append(out.Modifiers, model.PriceModifier{Name: name, Factor: factor, Applied: applied})
		if !applied {
			return
		}
		price *= factor
		out.Breakdown = append(out.Breakdown, fmt.Sprintf("%s (x%.2f): $%.2f/unit", note, factor, price))
	}

	apply("multi_stream_complexity", cfg.ComplexityMultiplier, in.StreamCount > 2, "multi-stream complexity")
	apply("volume_discount", 1-cfg.VolumeDiscount, in.Homes > cfg.VolumeDiscountMinHomes, "volume discount")
	apply("route_pairing_discount", 1-cfg.RoutePairingDiscount, in.HasNearbyRoute, "route pairing discount")
	apply("truck_constraint_penalty", 1+cfg.TruckConstraintPenalty, in.Fleet.AdditionalTrucksNeeded > 0, "truck constraint penalty")

	out.FinalPricePerUnit = price
	out.MonthlyRevenue = price * float64(in.Homes)
	return out
}
