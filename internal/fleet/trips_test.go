package fleet

import (
	"strings"
	"testing"

	"wasteops/internal/model"
)

func weeklyTrash() model.ServiceStream {
	return model.ServiceStream{Type: model.StreamTrash, VolumePerUnitPerWeek: 0.45, WeightPerUnitPerWeek: 40, FrequencyPerWeek: 1}
}

func TestTripsVolumeLimited(t *testing.T) {
	spec := DefaultTruckSpec()
	tr := TripsForStream(150, weeklyTrash(), spec, 0.75)
	if tr.TripsNeeded != 2 {
		t.Fatalf("trips: got %d want 2", tr.TripsNeeded)
	}
	if !strings.HasPrefix(tr.LimitingFactor, "volume-limited") {
		t.Fatalf("limiting factor: got %q", tr.LimitingFactor)
	}
	if tr.WeeklyVolume != 67.5 {
		t.Fatalf("weekly volume: got %v", tr.WeeklyVolume)
	}
	if tr.WeeklyWeight != 3.0 {
		t.Fatalf("weekly weight: got %v", tr.WeeklyWeight)
	}
}

func TestTripsWeightLimited(t *testing.T) {
	// Dense stream: 100 lb per 0.1 yd3 per unit.
	s := model.ServiceStream{Type: model.StreamTrash, VolumePerUnitPerWeek: 0.1, WeightPerUnitPerWeek: 100, FrequencyPerWeek: 1}
	tr := TripsForStream(500, s, DefaultTruckSpec(), 0.75)
	// volume: 50/62.5 -> 1 trip; weight: 25/10 -> 3 trips
	if tr.TripsNeeded != 3 {
		t.Fatalf("trips: got %d want 3", tr.TripsNeeded)
	}
	if !strings.HasPrefix(tr.LimitingFactor, "weight-limited") {
		t.Fatalf("limiting factor: got %q", tr.LimitingFactor)
	}
}

func TestTripsBalancedLoad(t *testing.T) {
	tr := TripsForStream(10, weeklyTrash(), DefaultTruckSpec(), 0.75)
	if tr.TripsNeeded != 1 {
		t.Fatalf("trips: got %d want 1", tr.TripsNeeded)
	}
	if tr.LimitingFactor != "balanced load" {
		t.Fatalf("limiting factor: got %q", tr.LimitingFactor)
	}
}

func TestTripsAtLeastOneWheneverVolumePositive(t *testing.T) {
	for _, homes := range []int{1, 7, 50, 333, 1000} {
		tr := TripsForStream(homes, weeklyTrash(), DefaultTruckSpec(), 0.75)
		if tr.TripsNeeded < 1 {
			t.Fatalf("homes=%d: trips %d < 1", homes, tr.TripsNeeded)
		}
	}
}

func TestTripsZeroHomesContributeNothing(t *testing.T) {
	tr := TripsForStream(0, weeklyTrash(), DefaultTruckSpec(), 0.75)
	if tr.TripsNeeded != 0 || tr.TruckHours != 0 {
		t.Fatalf("zero homes: got trips=%d hours=%v", tr.TripsNeeded, tr.TruckHours)
	}
	s := weeklyTrash()
	s.FrequencyPerWeek = 0
	tr = TripsForStream(100, s, DefaultTruckSpec(), 0.75)
	if tr.TripsNeeded != 0 || tr.TruckHours != 0 {
		t.Fatalf("zero frequency: got trips=%d hours=%v", tr.TripsNeeded, tr.TruckHours)
	}
}

func TestTripHoursScaleWithFrequency(t *testing.T) {
	once := TripsForStream(150, weeklyTrash(), DefaultTruckSpec(), 0.75)
	s := weeklyTrash()
	s.FrequencyPerWeek = 3
	thrice := TripsForStream(150, s, DefaultTruckSpec(), 0.75)
	if thrice.TripsNeeded <= once.TripsNeeded {
		t.Fatalf("3x frequency should need more trips: %d vs %d", thrice.TripsNeeded, once.TripsNeeded)
	}
	if thrice.WeeklyVolume != once.WeeklyVolume*3 {
		t.Fatalf("weekly volume should triple: %v vs %v", thrice.WeeklyVolume, once.WeeklyVolume)
	}
}
