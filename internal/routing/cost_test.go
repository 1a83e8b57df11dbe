package routing

import (
	"math"
	"testing"

	"wasteops/internal/model"
)

func TestEstimateCostItemization(t *testing.T) {
	trips := []model.TripRequirement{
		{StreamType: model.StreamTrash, TripsNeeded: 2, TruckHours: 3, WeeklyWeight: 4},
		{StreamType: model.StreamRecycling, TripsNeeded: 1, TruckHours: 2, WeeklyWeight: 1},
	}
	route := model.RouteEstimate{DistanceMiles: 10, DurationMinutes: 20}
	cost := EstimateCost(trips, route, DefaultCostRates())

	// 10 mi x 3 trips x 2 legs x $1.10
	if got, want := cost.FuelCost, 66.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("fuel: got %v want %v", got, want)
	}
	// drive 20x3x2=120 min + service 300 min = 7h x $28.50
	if got, want := cost.LaborCost, 199.5; math.Abs(got-want) > 1e-9 {
		t.Fatalf("labor: got %v want %v", got, want)
	}
	if got, want := cost.DisposalCost, 260.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("disposal cost: got %v want %v", got, want)
	}
	if got, want := cost.DisposalRevenue, 20.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("disposal revenue: got %v want %v", got, want)
	}
	if got, want := cost.TotalRouteCost, 66.0+199.5+260.0-20.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("total: got %v want %v", got, want)
	}
}

// Recycling rebates are revenue: the total may drop below fuel+labor+disposal.
func TestRecyclingRevenueLowersTotal(t *testing.T) {
	trips := []model.TripRequirement{
		{StreamType: model.StreamRecycling, TripsNeeded: 1, TruckHours: 1, WeeklyWeight: 10},
	}
	route := model.RouteEstimate{DistanceMiles: 1, DurationMinutes: 5}
	cost := EstimateCost(trips, route, DefaultCostRates())
	if cost.TotalRouteCost >= cost.FuelCost+cost.LaborCost {
		t.Fatalf("rebate should lower total below fuel+labor: total=%v fuel+labor=%v", cost.TotalRouteCost, cost.FuelCost+cost.LaborCost)
	}
	if cost.DisposalCost != 0 {
		t.Fatalf("pure recycling has no disposal cost, got %v", cost.DisposalCost)
	}
}

func TestEstimateCostNoTrips(t *testing.T) {
	cost := EstimateCost(nil, model.RouteEstimate{DistanceMiles: 10, DurationMinutes: 20}, DefaultCostRates())
	if cost.TotalRouteCost != 0 {
		t.Fatalf("no trips should cost nothing, got %v", cost.TotalRouteCost)
	}
}
