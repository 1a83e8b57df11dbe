package routing

import (
	"wasteops/internal/model"
)

// CostRates holds per-unit operating rates. Disposal rates are signed:
// positive is a tipping cost, negative is rebate revenue (recycling).
type CostRates struct {
	FuelPerMile    float64                      `yaml:"fuelPerMile" json:"fuelPerMile"`
	LaborPerHour   float64                      `yaml:"laborPerHour" json:"laborPerHour"`
	DisposalPerTon map[model.StreamType]float64 `yaml:"disposalPerTon" json:"disposalPerTon"`
}

func DefaultCostRates() CostRates {
	return CostRates{
		FuelPerMile:  1.10,
		LaborPerHour: 28.50,
		DisposalPerTon: map[model.StreamType]float64{
			model.StreamTrash:     65.0,
			model.StreamYardWaste: 45.0,
			// Recycling rebate: processors pay for clean single-stream.
			model.StreamRecycling: -20.0,
		},
	}
}

// EstimateCost turns trip requirements plus a drive estimate into weekly
// fuel, labor, and disposal dollars. Recycling rebates can pull the total
// below fuel+labor alone; that is the intended business model, surfaced
// explicitly as DisposalRevenue.
func EstimateCost(trips []model.TripRequirement, route model.RouteEstimate, rates CostRates) model.RouteCost {
	var cost model.RouteCost
	totalTrips := 0
	serviceMinutes := 0.0
	for _, tr := range trips {
		totalTrips += tr.TripsNeeded
		serviceMinutes += tr.TruckHours * 60

		signed := rates.DisposalPerTon[tr.StreamType] * tr.WeeklyWeight
		if signed >= 0 {
			cost.DisposalCost += signed
		} else {
			cost.DisposalRevenue += -signed
		}
	}

	// Each trip drives out and back.
	driveMinutes := route.DurationMinutes * float64(totalTrips) * 2
	cost.FuelCost = route.DistanceMiles * float64(totalTrips) * 2 * rates.FuelPerMile
	cost.LaborCost = (driveMinutes + serviceMinutes) / 60 * rates.LaborPerHour
	cost.TotalRouteCost = cost.FuelCost + cost.LaborCost + cost.DisposalCost - cost.DisposalRevenue
	return cost
}
