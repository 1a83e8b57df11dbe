package fleet

import (
	"fmt"
	"math"

	"wasteops/internal/model"
)

// Analyzer aggregates per-stream trip requirements against the fleet's
// remaining weekly hours.
type Analyzer struct {
	Spec TruckSpec
	Cfg  Config
}

func NewAnalyzer(spec TruckSpec, cfg Config) *Analyzer {
	return &Analyzer{Spec: spec, Cfg: cfg}
}

// Analyze computes whether the current fleet can absorb the request.
// util is the caller's committed-load snapshot; nil means the default
// committed fraction applies. The snapshot is never mutated.
func (a *Analyzer) Analyze(req model.ServiceRequest, util *model.FleetUtilization) model.FleetAnalysisResult {
	res := model.FleetAnalysisResult{}

	for _, s := range req.Streams {
		tr := TripsForStream(req.Homes, s, a.Spec, a.Cfg.FixedOverheadHours)
		if tr.TripsNeeded == 0 {
			continue
		}
		res.RequiredTrips = append(res.RequiredTrips, tr)
		res.TotalTripsNeeded += tr.TripsNeeded
		res.TotalHoursNeeded += tr.TruckHours
	}

	trucks := a.Cfg.Trucks
	if util != nil && util.CurrentTrucks > 0 {
		trucks = util.CurrentTrucks
	}
	res.AvailableHoursPerWeek = float64(trucks) * a.Spec.MaxRouteHoursPerDay * float64(a.Cfg.WorkingDaysPerWeek)

	if util != nil && util.HoursPerTruckPerDay > 0 {
		res.CommittedHours = util.HoursPerTruckPerDay * float64(trucks) * float64(a.Cfg.WorkingDaysPerWeek)
	} else {
		res.CommittedHours = res.AvailableHoursPerWeek * a.Cfg.DefaultCommittedFraction
	}

	if res.AvailableHoursPerWeek > 0 {
		res.FleetLoadPercent = (res.CommittedHours + res.TotalHoursNeeded) / res.AvailableHoursPerWeek * 100
	}

	// Plannable hours are buffered below the raw total; hours beyond the
	// buffer translate into additional trucks.
	usable := res.AvailableHoursPerWeek * a.Cfg.UtilizationBuffer
	shortfall := res.CommittedHours + res.TotalHoursNeeded - usable
	if shortfall > 0 {
		perTruck := a.Cfg.WeeklyHoursPerTruck(a.Spec)
		if perTruck <= 0 {
			perTruck = 1
		}
		res.AdditionalTrucksNeeded = int(math.Ceil(shortfall / perTruck))
	}
	res.CanServiceWithCurrentFleet = res.AdditionalTrucksNeeded == 0

	// Different waste types never share a compartment, so multi-stream
	// service always runs logically separate trips even over the same homes.
	if len(res.RequiredTrips) > 1 {
		res.Constraints = append(res.Constraints,
			fmt.Sprintf("%d waste streams require separate collection trips; streams cannot share a truck compartment", len(res.RequiredTrips)))
	}
	if res.FleetLoadPercent > a.Cfg.UtilizationBuffer*100 {
		res.Constraints = append(res.Constraints,
			fmt.Sprintf("projected fleet load %.1f%% exceeds the %.0f%% planning buffer", res.FleetLoadPercent, a.Cfg.UtilizationBuffer*100))
	}
	return res
}
