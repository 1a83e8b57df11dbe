package model

import "fmt"

// RiskFlagKind tags one category of bid risk. Flags carry structured
// data; display strings are rendered separately so callers never need
// substring matching to interpret them.
type RiskFlagKind string

const (
	RiskAdditionalTrucks   RiskFlagKind = "additional_trucks_required"
	RiskHighFleetLoad      RiskFlagKind = "high_fleet_load"
	RiskBenchmarkDeviation RiskFlagKind = "benchmark_deviation"
	RiskWalkoutService     RiskFlagKind = "walkout_service"
	RiskGatedAccess        RiskFlagKind = "gated_access"
	RiskSpecialContainers  RiskFlagKind = "special_containers"
	RiskUnverifiedPremium  RiskFlagKind = "unverified_premium"
	RiskUnknownUnitType    RiskFlagKind = "unknown_unit_type"
	RiskMissingBreakdown   RiskFlagKind = "missing_unit_breakdown"
	RiskLongHaul           RiskFlagKind = "long_haul"
	RiskLowMargin          RiskFlagKind = "low_margin"
	RiskSpecialHandling    RiskFlagKind = "special_handling"
)

// RiskFlag is one tagged risk with whatever quantity backs it. Count and
// Percent are zero when the kind has no numeric payload.
type RiskFlag struct {
	Kind    RiskFlagKind `json:"kind"`
	Count   int          `json:"count,omitempty"`
	Percent float64      `json:"percent,omitempty"`
	Note    string       `json:"note,omitempty"`
}

func (f RiskFlag) String() string {
	switch f.Kind {
	case RiskAdditionalTrucks:
		return fmt.Sprintf("requires %d additional truck(s) beyond current fleet", f.Count)
	case RiskHighFleetLoad:
		return fmt.Sprintf("fleet load would reach %.1f%% of available hours", f.Percent)
	case RiskBenchmarkDeviation:
		return fmt.Sprintf("price deviates %.1f%% from market benchmark", f.Percent)
	case RiskWalkoutService:
		return "walk-out service increases per-stop labor"
	case RiskGatedAccess:
		return "gated access may slow route progression"
	case RiskSpecialContainers:
		return "special containers require non-standard equipment"
	case RiskUnverifiedPremium:
		return fmt.Sprintf("premium flag %q lacks corroborating requirements text", f.Note)
	case RiskUnknownUnitType:
		return "unit type unknown; base rate is an estimate"
	case RiskMissingBreakdown:
		return "mixed-residential request without a unit breakdown"
	case RiskLongHaul:
		return fmt.Sprintf("drive time of %.0f minutes exceeds routine service radius", f.Percent)
	case RiskLowMargin:
		return fmt.Sprintf("projected margin of %.1f%% is below target", f.Percent)
	case RiskSpecialHandling:
		return fmt.Sprintf("special requirement noted: %s", f.Note)
	}
	return string(f.Kind)
}

// DedupRiskFlags keeps the first occurrence of each (kind, note) pair,
// preserving order.
func DedupRiskFlags(flags []RiskFlag) []RiskFlag {
	seen := map[string]struct{}{}
	out := make([]RiskFlag, 0, len(flags))
	for _, f := range flags {
		key := string(f.Kind) + "|" + f.Note
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

// FormatRiskFlags renders flags to display strings in order.
func FormatRiskFlags(flags []RiskFlag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, f.String())
	}
	return out
}
