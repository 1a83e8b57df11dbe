package routing

import (
	"context"
	"errors"
	"math"
	"testing"

	"wasteops/internal/model"
)

type failingEstimator struct{}

func (failingEstimator) EstimateRoute(context.Context, model.GeoPoint, model.GeoPoint) (model.RouteEstimate, error) {
	return model.RouteEstimate{}, errors.New("routing service down")
}

func TestFallbackEstimateDeterministic(t *testing.T) {
	a := model.GeoPoint{Lat: 35.2271, Lng: -80.8431}
	b := model.GeoPoint{Lat: 35.3105, Lng: -80.7420}
	e1 := FallbackEstimate(a, b)
	e2 := FallbackEstimate(a, b)
	if e1 != e2 {
		t.Fatalf("fallback must be deterministic: %v vs %v", e1, e2)
	}
	if !e1.Fallback {
		t.Fatal("fallback flag should be set")
	}
	straight := HaversineMeters(a, b) / metersPerMile
	if math.Abs(e1.DistanceMiles-straight*roadFactor) > 1e-9 {
		t.Fatalf("distance should be %.2fx haversine: got %v straight %v", roadFactor, e1.DistanceMiles, straight)
	}
	if math.Abs(e1.DurationMinutes-e1.DistanceMiles/fallbackAvgMPH*60) > 1e-9 {
		t.Fatalf("duration should assume %v mph: got %v", fallbackAvgMPH, e1.DurationMinutes)
	}
}

func TestEstimateWithFallbackRecovers(t *testing.T) {
	a := model.GeoPoint{Lat: 35.0, Lng: -80.0}
	b := model.GeoPoint{Lat: 35.1, Lng: -80.1}
	got := EstimateWithFallback(context.Background(), failingEstimator{}, a, b, nil)
	if !got.Fallback {
		t.Fatal("expected fallback estimate on collaborator failure")
	}
	if got != FallbackEstimate(a, b) {
		t.Fatalf("expected the deterministic fallback, got %v", got)
	}
}

func TestHaversineZeroDistance(t *testing.T) {
	p := model.GeoPoint{Lat: 40.0, Lng: -70.0}
	if d := HaversineMeters(p, p); d != 0 {
		t.Fatalf("same point distance: got %v", d)
	}
}
