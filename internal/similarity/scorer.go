package similarity

import (
	"fmt"
	"sort"
	"strings"

	"wasteops/internal/model"
)

// Factor weights sum to 100; a candidate needs more than the qualifying
// threshold to anchor pricing.
const (
	communityTypeWeight = 40.0
	homeCountWeight     = 30.0
	accessTypeWeight    = 20.0
	complexityWeight    = 10.0

	qualifyingScore = 60.0
	topMatches      = 3

	// Fallback anchor when no historical profile qualifies.
	defaultPricePerHome          = 27.50
	defaultLaborPerHundredHomes  = 5.5
	defaultDisposalWeightTons    = 3.0
	standardComplexityMaxStreams = 2
)

// Score rates how closely one historical profile matches the prospect.
func Score(req model.ServiceRequest, p model.CustomerProfile) model.SimilarityScore {
	s := model.SimilarityScore{CustomerID: p.ID, Profile: p}

	if req.CommunityType != "" && strings.EqualFold(req.CommunityType, p.CommunityType) {
		s.Score += communityTypeWeight
		s.MatchFactors = append(s.MatchFactors, fmt.Sprintf("community type %q matches", p.CommunityType))
	}

	if req.Homes > 0 && p.Homes > 0 {
		larger := float64(req.Homes)
		if p.Homes > req.Homes {
			larger = float64(p.Homes)
		}
		diff := float64(req.Homes - p.Homes)
		if diff < 0 {
			diff = -diff
		}
		sim := (1 - diff/larger) * homeCountWeight
		s.Score += sim
		s.MatchFactors = append(s.MatchFactors, fmt.Sprintf("home count within %.0f%% (%d vs %d)", diff/larger*100, req.Homes, p.Homes))
	}

	if req.AccessType != "" && strings.EqualFold(req.AccessType, p.AccessType) {
		s.Score += accessTypeWeight
		s.MatchFactors = append(s.MatchFactors, fmt.Sprintf("access type %q matches", p.AccessType))
	}

	if len(req.Streams) <= standardComplexityMaxStreams {
		s.Score += complexityWeight
		s.MatchFactors = append(s.MatchFactors, "standard service complexity")
	}
	return s
}

// Rank scores every profile and returns them descending by score.
func Rank(req model.ServiceRequest, profiles []model.CustomerProfile) []model.SimilarityScore {
	scores := make([]model.SimilarityScore, 0, len(profiles))
	for _, p := range profiles {
		scores = append(scores, Score(req, p))
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores
}

// Insight derives a confidence-weighted pricing anchor from the top
// qualifying matches. With no qualifying match it falls back to the
// default anchor at low confidence and says so.
func Insight(req model.ServiceRequest, profiles []model.CustomerProfile) model.PricingInsight {
	ranked := Rank(req, profiles)

	qualified := make([]model.SimilarityScore, 0, topMatches)
	for _, s := range ranked {
		if s.Score > qualifyingScore {
			qualified = append(qualified, s)
		}
		if len(qualified) == topMatches {
			break
		}
	}

	if len(qualified) == 0 {
		return model.PricingInsight{
			SuggestedPricePerHome:     defaultPricePerHome,
			LaborHoursPerHundredHomes: defaultLaborPerHundredHomes,
			AvgDisposalWeightTons:     defaultDisposalWeightTons,
			Confidence:                model.ConfidenceLow,
			Reasoning: []string{
				fmt.Sprintf("no historical customer scored above %.0f; using default anchor of $%.2f/home", qualifyingScore, defaultPricePerHome),
			},
		}
	}

	var totalWeight, price, labor, disposal float64
	for _, s := range qualified {
		totalWeight += s.Score
		price += s.Profile.MonthlyCostPerUnit * s.Score
		labor += s.Profile.LaborHoursPerHundredHomes * s.Score
		disposal += s.Profile.AvgDisposalWeightTons * s.Score
	}

	conf := model.ConfidenceLow
	switch {
	case len(qualified) >= 3:
		conf = model.ConfidenceHigh
	case len(qualified) == 2:
		conf = model.ConfidenceMedium
	}

	out := model.PricingInsight{
		SuggestedPricePerHome:     price / totalWeight,
		LaborHoursPerHundredHomes: labor / totalWeight,
		AvgDisposalWeightTons:     disposal / totalWeight,
		Confidence:                conf,
		Matches:                   qualified,
	}
	out.Reasoning = append(out.Reasoning,
		fmt.Sprintf("%d historical customer(s) scored above %.0f; top match %s at %.1f", len(qualified), qualifyingScore, qualified[0].CustomerID, qualified[0].Score),
		fmt.Sprintf("score-weighted anchor: $%.2f/home/month", out.SuggestedPricePerHome),
	)
	return out
}
