package similarity

import (
	"math"
	"testing"

	"wasteops/internal/model"
)

func hoaRequest(homes int) model.ServiceRequest {
	return model.ServiceRequest{
		Homes:         homes,
		CommunityType: "hoa",
		AccessType:    "curbside",
		Streams: []model.ServiceStream{
			{Type: model.StreamTrash, FrequencyPerWeek: 1},
			{Type: model.StreamRecycling, FrequencyPerWeek: 1},
		},
	}
}

func profile(id string, homes int, price float64) model.CustomerProfile {
	return model.CustomerProfile{
		ID: id, CommunityType: "hoa", Homes: homes, AccessType: "curbside",
		MonthlyCostPerUnit: price, LaborHoursPerHundredHomes: 5, AvgDisposalWeightTons: 3,
	}
}

func TestScoreWeights(t *testing.T) {
	s := Score(hoaRequest(150), profile("c1", 140, 22))
	// 40 community + (1-10/150)*30 home count + 20 access + 10 complexity
	want := 40 + (1-10.0/150.0)*30 + 20 + 10
	if math.Abs(s.Score-want) > 1e-9 {
		t.Fatalf("score: got %v want %v", s.Score, want)
	}
	if len(s.MatchFactors) != 4 {
		t.Fatalf("match factors: got %d want 4", len(s.MatchFactors))
	}
}

func TestScoreNoOverlap(t *testing.T) {
	req := hoaRequest(150)
	req.CommunityType = "municipal"
	req.AccessType = "alley"
	req.Streams = append(req.Streams, model.ServiceStream{Type: model.StreamYardWaste, FrequencyPerWeek: 1})
	s := Score(req, profile("c1", 150, 22))
	// Only the home-count term contributes.
	if s.Score > 30 {
		t.Fatalf("score: got %v, want <= 30", s.Score)
	}
}

func TestInsightHighConfidence(t *testing.T) {
	profiles := []model.CustomerProfile{
		profile("c1", 140, 22.10),
		profile("c2", 180, 21.40),
		profile("c3", 220, 20.75),
		profile("c4", 5000, 12.00), // too different to qualify
	}
	ins := Insight(hoaRequest(150), profiles)
	if ins.Confidence != model.ConfidenceHigh {
		t.Fatalf("confidence: got %s want high", ins.Confidence)
	}
	if len(ins.Matches) != 3 {
		t.Fatalf("matches: got %d want 3", len(ins.Matches))
	}
	if ins.SuggestedPricePerHome < 20.75 || ins.SuggestedPricePerHome > 22.10 {
		t.Fatalf("weighted price out of range: %v", ins.SuggestedPricePerHome)
	}
	// Highest-scoring match first.
	if ins.Matches[0].CustomerID != "c1" {
		t.Fatalf("top match: got %s want c1", ins.Matches[0].CustomerID)
	}
}

func TestInsightMediumConfidence(t *testing.T) {
	ins := Insight(hoaRequest(150), []model.CustomerProfile{
		profile("c1", 140, 22),
		profile("c2", 160, 23),
	})
	if ins.Confidence != model.ConfidenceMedium {
		t.Fatalf("confidence: got %s want medium", ins.Confidence)
	}
}

func TestInsightFallbackWhenNoneQualify(t *testing.T) {
	req := hoaRequest(150)
	req.CommunityType = "industrial"
	req.AccessType = "dock"
	req.Streams = append(req.Streams, model.ServiceStream{Type: model.StreamYardWaste, FrequencyPerWeek: 1})
	ins := Insight(req, []model.CustomerProfile{profile("c1", 4000, 15)})
	if ins.Confidence != model.ConfidenceLow {
		t.Fatalf("confidence: got %s want low", ins.Confidence)
	}
	if ins.SuggestedPricePerHome != defaultPricePerHome {
		t.Fatalf("fallback price: got %v want %v", ins.SuggestedPricePerHome, defaultPricePerHome)
	}
	if len(ins.Reasoning) == 0 {
		t.Fatal("fallback must explain itself")
	}
	if len(ins.Matches) != 0 {
		t.Fatalf("fallback should carry no matches, got %d", len(ins.Matches))
	}
}

func TestInsightEmptyReferenceSet(t *testing.T) {
	ins := Insight(hoaRequest(100), nil)
	if ins.Confidence != model.ConfidenceLow {
		t.Fatalf("confidence: got %s want low", ins.Confidence)
	}
}
