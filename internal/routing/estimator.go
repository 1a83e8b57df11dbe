package routing

import (
	"context"

	"wasteops/internal/model"
)

// Estimator is the external route-distance collaborator contract.
// Implementations may fail or time out; callers recover through
// EstimateWithFallback rather than surfacing the error.
type Estimator interface {
	// EstimateRoute returns drive distance and duration between two points.
	EstimateRoute(ctx context.Context, origin, destination model.GeoPoint) (model.RouteEstimate, error)
}
