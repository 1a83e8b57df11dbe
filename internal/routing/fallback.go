package routing

import (
	"context"
	"math"

	"go.uber.org/zap"

	"wasteops/internal/model"
)

const (
	// roadFactor inflates straight-line distance to approximate road miles.
	roadFactor = 1.3
	// fallbackAvgMPH includes stop-and-go collection traffic.
	fallbackAvgMPH = 35.0
	metersPerMile  = 1609.344
)

// HaversineMeters is the great-circle distance between two points.
func HaversineMeters(a, b model.GeoPoint) float64 {
	const R = 6371000.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return R * c
}

// FallbackEstimate is the deterministic straight-line-with-road-factor
// estimate used when the route collaborator is unavailable.
func FallbackEstimate(origin, destination model.GeoPoint) model.RouteEstimate {
	miles := HaversineMeters(origin, destination) / metersPerMile * roadFactor
	return model.RouteEstimate{
		DistanceMiles:   miles,
		DurationMinutes: miles / fallbackAvgMPH * 60,
		Fallback:        true,
	}
}

// EstimateWithFallback asks the collaborator and degrades to the fixed
// estimate on error or timeout. It never fails.
func EstimateWithFallback(ctx context.Context, est Estimator, origin, destination model.GeoPoint, log *zap.Logger) model.RouteEstimate {
	if est != nil {
		r, err := est.EstimateRoute(ctx, origin, destination)
		if err == nil {
			return r
		}
		if log != nil {
			log.Warn("route collaborator unavailable, using haversine fallback", zap.Error(err))
		}
	}
	return FallbackEstimate(origin, destination)
}
