package fleet

import (
	"testing"

	"wasteops/internal/model"
)

func twoStreamRequest(homes int) model.ServiceRequest {
	return model.ServiceRequest{
		Homes:    homes,
		UnitType: model.UnitSingleFamily,
		Streams: []model.ServiceStream{
			{Type: model.StreamTrash, VolumePerUnitPerWeek: 0.45, WeightPerUnitPerWeek: 40, FrequencyPerWeek: 1},
			{Type: model.StreamRecycling, VolumePerUnitPerWeek: 0.30, WeightPerUnitPerWeek: 18, FrequencyPerWeek: 1},
		},
	}
}

func TestAnalyzeWithinFleet(t *testing.T) {
	a := NewAnalyzer(DefaultTruckSpec(), DefaultConfig())
	util := &model.FleetUtilization{CurrentTrucks: 3, HoursPerTruckPerDay: 7.5}
	res := a.Analyze(twoStreamRequest(150), util)

	if res.AvailableHoursPerWeek != 150 {
		t.Fatalf("available hours: got %v want 150", res.AvailableHoursPerWeek)
	}
	if res.CommittedHours != 112.5 {
		t.Fatalf("committed hours: got %v want 112.5", res.CommittedHours)
	}
	if res.AdditionalTrucksNeeded != 0 {
		t.Fatalf("additional trucks: got %d want 0", res.AdditionalTrucksNeeded)
	}
	if !res.CanServiceWithCurrentFleet {
		t.Fatal("expected serviceable with current fleet")
	}
	if res.FleetLoadPercent <= 0 || res.FleetLoadPercent >= 85 {
		t.Fatalf("fleet load: got %v, want within (0,85)", res.FleetLoadPercent)
	}
	if len(res.Constraints) == 0 {
		t.Fatal("two streams should produce a separate-trips constraint")
	}
}

func TestAnalyzeNeedsAdditionalTruck(t *testing.T) {
	a := NewAnalyzer(DefaultTruckSpec(), DefaultConfig())
	// 90% committed leaves 15h raw, 0h after the 85% buffer.
	util := &model.FleetUtilization{CurrentTrucks: 3, HoursPerTruckPerDay: 9}
	req := twoStreamRequest(500)
	req.Streams[0].FrequencyPerWeek = 3
	req.Streams = append(req.Streams, model.ServiceStream{
		Type: model.StreamYardWaste, VolumePerUnitPerWeek: 0.40, WeightPerUnitPerWeek: 55, FrequencyPerWeek: 1,
	})
	res := a.Analyze(req, util)
	if res.AdditionalTrucksNeeded == 0 {
		t.Fatalf("expected additional trucks, load=%v needed=%v", res.FleetLoadPercent, res.TotalHoursNeeded)
	}
	if res.CanServiceWithCurrentFleet {
		t.Fatal("should not be serviceable with current fleet")
	}
	if res.FleetLoadPercent <= 100 {
		t.Fatalf("fleet load should exceed 100%%, got %v", res.FleetLoadPercent)
	}
}

func TestAnalyzeDefaultCommittedFraction(t *testing.T) {
	a := NewAnalyzer(DefaultTruckSpec(), DefaultConfig())
	res := a.Analyze(twoStreamRequest(50), nil)
	if res.CommittedHours != res.AvailableHoursPerWeek*0.75 {
		t.Fatalf("default committed: got %v want %v", res.CommittedHours, res.AvailableHoursPerWeek*0.75)
	}
}

// The buffer invariant: no additional trucks exactly when buffered load fits.
func TestAnalyzeBufferInvariant(t *testing.T) {
	a := NewAnalyzer(DefaultTruckSpec(), DefaultConfig())
	for _, homes := range []int{10, 100, 300, 700, 1500} {
		res := a.Analyze(twoStreamRequest(homes), &model.FleetUtilization{CurrentTrucks: 3, HoursPerTruckPerDay: 7.5})
		fits := res.CommittedHours+res.TotalHoursNeeded <= res.AvailableHoursPerWeek*a.Cfg.UtilizationBuffer
		if fits != (res.AdditionalTrucksNeeded == 0) {
			t.Fatalf("homes=%d: fits=%v but additionalTrucks=%d", homes, fits, res.AdditionalTrucksNeeded)
		}
	}
}

func TestAnalyzeLoadMonotonicInHomes(t *testing.T) {
	a := NewAnalyzer(DefaultTruckSpec(), DefaultConfig())
	util := &model.FleetUtilization{CurrentTrucks: 3, HoursPerTruckPerDay: 7.5}
	prev := -1.0
	for _, homes := range []int{10, 50, 150, 400, 900} {
		res := a.Analyze(twoStreamRequest(homes), util)
		if res.FleetLoadPercent < prev {
			t.Fatalf("homes=%d: load %v decreased from %v", homes, res.FleetLoadPercent, prev)
		}
		prev = res.FleetLoadPercent
	}
}
