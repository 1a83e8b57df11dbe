package fleet

import (
	"fmt"
	"math"

	"wasteops/internal/model"
)

const poundsPerTon = 2000.0

// TripsForStream converts one stream of a prospect into truck trips and
// hours. The binding constraint is whichever of volume or weight needs
// more trips; a tie is reported as a balanced load. Streams with zero
// homes or zero frequency contribute nothing.
func TripsForStream(homes int, stream model.ServiceStream, spec TruckSpec, overheadHours float64) model.TripRequirement {
	req := model.TripRequirement{StreamType: stream.Type}
	if homes <= 0 || stream.FrequencyPerWeek <= 0 {
		req.LimitingFactor = "no service volume"
		return req
	}

	freq := float64(stream.FrequencyPerWeek)
	req.WeeklyVolume = float64(homes) * stream.VolumePerUnitPerWeek * freq
	req.WeeklyWeight = float64(homes) * stream.WeightPerUnitPerWeek * freq / poundsPerTon

	volumeTrips := 0
	if req.WeeklyVolume > 0 {
		volumeTrips = int(math.Ceil(req.WeeklyVolume / spec.EffectiveCapacity()))
	}
	weightTrips := 0
	if req.WeeklyWeight > 0 {
		weightTrips = int(math.Ceil(req.WeeklyWeight / spec.MaxPayloadTons))
	}

	req.TripsNeeded = volumeTrips
	if weightTrips > req.TripsNeeded {
		req.TripsNeeded = weightTrips
	}
	switch {
	case req.TripsNeeded == 0:
		req.LimitingFactor = "no service volume"
		return req
	case volumeTrips > weightTrips:
		req.LimitingFactor = fmt.Sprintf("volume-limited: %.1f yd³/week vs %.1f yd³ effective capacity", req.WeeklyVolume, spec.EffectiveCapacity())
	case weightTrips > volumeTrips:
		req.LimitingFactor = fmt.Sprintf("weight-limited: %.1f tons/week vs %.1f ton payload", req.WeeklyWeight, spec.MaxPayloadTons)
	default:
		req.LimitingFactor = "balanced load"
	}

	// Stops are spread evenly across the trips a stream needs.
	serviceHoursPerTrip := (float64(homes) / float64(req.TripsNeeded)) * spec.AvgStopTimeMinutes / 60.0
	req.TruckHours = float64(req.TripsNeeded) * (serviceHoursPerTrip + overheadHours)
	return req
}
