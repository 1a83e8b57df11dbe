package pricing

import (
	"fmt"
	"math"
	"strings"

	"wasteops/internal/model"
)

// UnitEngine prices a request bucket-by-unit-type, applies premiums
// additively, validates against market benchmarks, and derives overall
// confidence. It is pure: same request and config, same breakdown.
type UnitEngine struct {
	Cfg Config
}

func NewUnitEngine(cfg Config) *UnitEngine {
	return &UnitEngine{Cfg: cfg}
}

// Price computes the full pricing breakdown for a request.
func (e *UnitEngine) Price(req model.ServiceRequest) model.PricingBreakdown {
	bd := model.PricingBreakdown{
		AddOnsApplied: model.AddOnsApplied{
			Walkout:           req.IsWalkout,
			Gated:             req.IsGated,
			SpecialContainers: req.HasSpecialContainers,
		},
	}

	buckets := e.buckets(req)
	totalUnits := 0
	var flags []model.RiskFlag
	for _, b := range buckets {
		up := e.priceBucket(req, b.unitType, b.count)
		bd.UnitTypePricing = append(bd.UnitTypePricing, up)
		bd.TotalMonthlyRevenue += up.MonthlyRevenue
		totalUnits += up.UnitCount
		flags = append(flags, up.RiskFlags...)
	}
	if totalUnits > 0 {
		bd.AveragePricePerUnit = bd.TotalMonthlyRevenue / float64(totalUnits)
	}

	flags = append(flags, specialRequirementFlags(req)...)

	bd.Benchmark = e.validateBenchmark(req, buckets, bd.AveragePricePerUnit)
	if !bd.Benchmark.IsWithinBenchmark {
		flags = append(flags, model.RiskFlag{Kind: model.RiskBenchmarkDeviation, Percent: bd.Benchmark.VariancePercent})
	}

	bd.RiskFlags = model.DedupRiskFlags(flags)
	bd.MarginPercent = Margin(bd.TotalMonthlyRevenue, float64(totalUnits)*e.Cfg.PlaceholderCostPerUnit)
	bd.Confidence, bd.Warnings = e.confidence(req, bd)
	return bd
}

type bucket struct {
	unitType model.UnitType
	count    int
}

// buckets resolves the unit breakdown, falling back to a single bucket
// of the request's declared type.
func (e *UnitEngine) buckets(req model.ServiceRequest) []bucket {
	if len(req.UnitBreakdown) > 0 {
		out := make([]bucket, 0, len(req.UnitBreakdown))
		accounted := 0
		for _, ut := range []model.UnitType{model.UnitSingleFamily, model.UnitTownhome, model.UnitCondo} {
			if n := req.UnitBreakdown[ut]; n > 0 {
				out = append(out, bucket{unitType: ut, count: n})
				accounted += n
			}
		}
		// Units outside the breakdown are priced at the declared type.
		if rest := req.Homes - accounted; rest > 0 {
			out = append(out, bucket{unitType: req.UnitType, count: rest})
		}
		return out
	}
	return []bucket{{unitType: req.UnitType, count: req.Homes}}
}

func (e *UnitEngine) priceBucket(req model.ServiceRequest, ut model.UnitType, count int) model.UnitTypePricing {
	up := model.UnitTypePricing{UnitType: ut, UnitCount: count}

	if ut == model.UnitCondo {
		// Condos are priced per shared container pair, spread across units.
		up.ContainersNeeded = int(math.Ceil(float64(count) / float64(e.Cfg.UnitsPerContainer)))
		monthly := float64(up.ContainersNeeded) * (e.Cfg.TrashContainerRate + e.Cfg.RecycleContainerRate)
		up.BasePrice = monthly / float64(count)
	} else {
		up.BasePrice = e.Cfg.BaseRates[ut]
		if up.BasePrice == 0 {
			up.BasePrice = e.Cfg.BaseRates[model.UnitUnknown]
		}
	}

	if req.IsWalkout {
		up.WalkoutPremium = up.BasePrice * e.Cfg.WalkoutPremiumFraction
		up.RiskFlags = append(up.RiskFlags, model.RiskFlag{Kind: model.RiskWalkoutService})
	}
	if req.IsGated {
		up.GatedPremium = e.Cfg.GatedSurcharge
		up.RiskFlags = append(up.RiskFlags, model.RiskFlag{Kind: model.RiskGatedAccess})
	}
	if req.HasSpecialContainers {
		up.SpecialContainerPremium = e.Cfg.SpecialContainerSurcharge
		up.RiskFlags = append(up.RiskFlags, model.RiskFlag{Kind: model.RiskSpecialContainers})
	}

	up.FinalPricePerUnit = up.BasePrice + up.WalkoutPremium + up.GatedPremium + up.SpecialContainerPremium
	up.MonthlyRevenue = up.FinalPricePerUnit * float64(count)

	if ut == model.UnitUnknown {
		up.RiskFlags = append(up.RiskFlags, model.RiskFlag{Kind: model.RiskUnknownUnitType})
	}
	if ut == model.UnitMixedResidential && len(req.UnitBreakdown) == 0 {
		up.RiskFlags = append(up.RiskFlags, model.RiskFlag{Kind: model.RiskMissingBreakdown})
	}
	return up
}

// validateBenchmark compares the blended per-unit price against the
// unit-count-weighted market benchmark.
func (e *UnitEngine) validateBenchmark(req model.ServiceRequest, buckets []bucket, avgPrice float64) model.BenchmarkValidation {
	var weighted float64
	total := 0
	for _, b := range buckets {
		bm := e.Cfg.Benchmarks[b.unitType]
		if bm == 0 {
			bm = e.Cfg.Benchmarks[model.UnitUnknown]
		}
		weighted += bm * float64(b.count)
		total += b.count
	}
	v := model.BenchmarkValidation{}
	if total == 0 || weighted == 0 {
		v.Message = "no benchmark available for this unit mix"
		v.IsWithinBenchmark = true
		return v
	}
	v.BenchmarkPrice = weighted / float64(total)
	v.VariancePercent = (avgPrice - v.BenchmarkPrice) / v.BenchmarkPrice * 100
	v.IsWithinBenchmark = math.Abs(v.VariancePercent) < e.Cfg.BenchmarkTolerancePercent
	if v.IsWithinBenchmark {
		v.Message = fmt.Sprintf("price $%.2f is within %.0f%% of the $%.2f benchmark (%.1f%% variance)",
			avgPrice, e.Cfg.BenchmarkTolerancePercent, v.BenchmarkPrice, v.VariancePercent)
	} else {
		direction := "above"
		if v.VariancePercent < 0 {
			direction = "below"
		}
		v.Message = fmt.Sprintf("price $%.2f is %.1f%% %s the $%.2f benchmark (tolerance %.0f%%)",
			avgPrice, math.Abs(v.VariancePercent), direction, v.BenchmarkPrice, e.Cfg.BenchmarkTolerancePercent)
	}
	return v
}

// confidence starts at 100 and is penalized for estimation gaps; the
// final score maps to the three-level scale.
func (e *UnitEngine) confidence(req model.ServiceRequest, bd model.PricingBreakdown) (model.Confidence, []string) {
	score := 100.0
	var warnings []string

	if req.UnitType == model.UnitUnknown {
		score -= 20
		warnings = append(warnings, "unit type unknown (-20 confidence)")
	}
	if req.UnitType == model.UnitMixedResidential && len(req.UnitBreakdown) == 0 {
		score -= 15
		warnings = append(warnings, "mixed-residential without unit breakdown (-15 confidence)")
	}

	variance := math.Abs(bd.Benchmark.VariancePercent)
	switch {
	case variance > 15:
		score -= 25
		warnings = append(warnings, fmt.Sprintf("benchmark variance %.1f%% exceeds 15%% (-25 confidence)", variance))
	case variance > 10:
		score -= 10
		warnings = append(warnings, fmt.Sprintf("benchmark variance %.1f%% exceeds 10%% (-10 confidence)", variance))
	}

	switch n := len(bd.RiskFlags); {
	case n > 3:
		score -= 20
		warnings = append(warnings, fmt.Sprintf("%d risk flags (-20 confidence)", n))
	case n > 1:
		score -= 10
		warnings = append(warnings, fmt.Sprintf("%d risk flags (-10 confidence)", n))
	}

	// Premium flags without corroborating text in the requirements are
	// treated as speculative.
	if req.IsWalkout && !mentionsAny(req.SpecialRequirements, "walk") {
		score -= 15
		warnings = append(warnings, "walk-out premium lacks corroborating requirements text (-15 confidence)")
	}
	if req.IsGated && !mentionsAny(req.SpecialRequirements, "gate", "access code", "keypad") {
		score -= 10
		warnings = append(warnings, "gated premium lacks corroborating requirements text (-10 confidence)")
	}

	switch {
	case score >= 80:
		return model.ConfidenceHigh, warnings
	case score >= 60:
		return model.ConfidenceMedium, warnings
	}
	return model.ConfidenceLow, warnings
}

// Margin is the percent margin with the degenerate cases pinned:
// 0 when both sides are zero, -100 when there is cost but no revenue.
func Margin(revenue, cost float64) float64 {
	if revenue <= 0 {
		if cost > 0 {
			return -100
		}
		return 0
	}
	return (revenue - cost) / revenue * 100
}

func specialRequirementFlags(req model.ServiceRequest) []model.RiskFlag {
	var flags []model.RiskFlag
	for _, sr := range req.SpecialRequirements {
		lower := strings.ToLower(sr)
		for _, kw := range []string{"hazard", "medical", "sharps", "bulk", "construction"} {
			if strings.Contains(lower, kw) {
				flags = append(flags, model.RiskFlag{Kind: model.RiskSpecialHandling, Note: sr})
				break
			}
		}
	}
	return flags
}

func mentionsAny(texts []string, keywords ...string) bool {
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
