package engine

import (
	"fmt"

	"wasteops/internal/model"
	"wasteops/internal/pricing"
)

// Serviceability bands. Thresholds are monotonic within each band; the
// final score is the sum of the band awards plus the historical bonus.
const (
	marginBandHigh = 25.0 // >= -> 40 pts
	marginBandMid  = 15.0 // >= -> 35 pts
	marginBandLow  = 5.0  // >= -> 20 pts

	fleetBandComfort = 85.0  // < -> 30 pts
	fleetBandTight   = 100.0 // < -> 15 pts

	routeBandNear = 30.0 // < minutes -> 20 pts
	routeBandFar  = 45.0 // < minutes -> 10 pts

	historicalBonus = 10

	bidScoreFloor  = 60
	bidMarginFloor = 10.0
)

// synthesize folds every intermediate result into the final
// recommendation. Every number in the reasoning is a computed value.
func (e *Engine) synthesize(req model.ServiceRequest, ev *model.Evaluation, monthlyRevenue, monthlyCost float64) model.RecommendationResult {
	rec := model.RecommendationResult{}

	rec.ProfitMarginPercent = pricing.Margin(monthlyRevenue, monthlyCost)
	rec.MonthlyProfit = monthlyRevenue - monthlyCost

	score := 0

	switch m := rec.ProfitMarginPercent; {
	case m >= marginBandHigh:
		score += 40
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("projected margin %.1f%% is at or above the %.0f%% strong-margin band (+40)", m, marginBandHigh))
	case m >= marginBandMid:
		score += 35
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("projected margin %.1f%% is within the %.0f-%.0f%% band (+35)", m, marginBandMid, marginBandHigh))
	case m >= marginBandLow:
		score += 20
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("projected margin %.1f%% is within the %.0f-%.0f%% band (+20)", m, marginBandLow, marginBandMid))
	default:
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("projected margin %.1f%% is below the %.0f%% viability floor (+0)", m, marginBandLow))
	}

	switch l := ev.Fleet.FleetLoadPercent; {
	case l < fleetBandComfort:
		score += 30
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("fleet load %.1f%% stays under the %.0f%% comfort threshold (+30)", l, fleetBandComfort))
	case l < fleetBandTight:
		score += 15
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("fleet load %.1f%% is tight but under %.0f%% (+15)", l, fleetBandTight))
	default:
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("fleet load %.1f%% exceeds available hours (+0)", l))
	}

	switch d := ev.Route.DurationMinutes; {
	case d < routeBandNear:
		score += 20
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("drive time %.0f min is within the %.0f min service radius (+20)", d, routeBandNear))
	case d < routeBandFar:
		score += 10
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("drive time %.0f min stretches the route but is under %.0f min (+10)", d, routeBandFar))
	default:
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("drive time %.0f min is outside the routine service radius (+0)", d))
	}

	if len(ev.Insight.Matches) > 0 {
		score += historicalBonus
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("%d comparable historical customer(s) anchor the estimate (+%d)", len(ev.Insight.Matches), historicalBonus))
	} else {
		rec.Reasoning = append(rec.Reasoning, "no comparable historical customer; pricing anchored on defaults (+0)")
	}

	if score > 100 {
		score = 100
	}
	rec.ServiceabilityScore = score

	rec.ShouldBid = score >= bidScoreFloor &&
		rec.ProfitMarginPercent > bidMarginFloor &&
		ev.Fleet.AdditionalTrucksNeeded == 0

	switch {
	case score >= 80 && rec.ProfitMarginPercent > 20:
		rec.Confidence = model.ConfidenceHigh
	case score >= 50 && rec.ProfitMarginPercent > 5:
		rec.Confidence = model.ConfidenceMedium
	default:
		rec.Confidence = model.ConfidenceLow
	}

	rec.RiskFlags, rec.Conditions = e.risksAndConditions(ev, rec)
	return rec
}

func (e *Engine) risksAndConditions(ev *model.Evaluation, rec model.RecommendationResult) ([]model.RiskFlag, []string) {
	flags := append([]model.RiskFlag(nil), ev.Pricing.RiskFlags...)
	var conditions []string

	if n := ev.Fleet.AdditionalTrucksNeeded; n > 0 {
		flags = append(flags, model.RiskFlag{Kind: model.RiskAdditionalTrucks, Count: n})
		conditions = append(conditions, fmt.Sprintf("acquire or reassign %d truck(s) before service start", n))
	}
	if l := ev.Fleet.FleetLoadPercent; l >= fleetBandComfort {
		flags = append(flags, model.RiskFlag{Kind: model.RiskHighFleetLoad, Percent: l})
	}
	if d := ev.Route.DurationMinutes; d >= routeBandFar {
		flags = append(flags, model.RiskFlag{Kind: model.RiskLongHaul, Percent: d})
		conditions = append(conditions, fmt.Sprintf("confirm routing economics for the %.0f-minute haul", d))
	}
	if m := rec.ProfitMarginPercent; m <= bidMarginFloor {
		flags = append(flags, model.RiskFlag{Kind: model.RiskLowMargin, Percent: m})
	}
	if !ev.Pricing.Benchmark.IsWithinBenchmark {
		conditions = append(conditions, fmt.Sprintf("review pricing against the $%.2f market benchmark (%.1f%% variance)",
			ev.Pricing.Benchmark.BenchmarkPrice, ev.Pricing.Benchmark.VariancePercent))
	}
	if ev.Route.Fallback {
		conditions = append(conditions, "verify drive distance with the routing service before committing")
	}
	return model.DedupRiskFlags(flags), conditions
}
