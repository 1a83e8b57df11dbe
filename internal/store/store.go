package store

import (
	"context"
	"errors"

	"wasteops/internal/model"
)

// Store reads customer data. Both lookups are read-only; absence of data
// degrades the engine (low-confidence defaults, no nearby route) and is
// never a hard failure.
type Store interface {
	// LoadHistoricalProfiles returns the reference set for similarity scoring.
	LoadHistoricalProfiles(ctx context.Context) ([]model.CustomerProfile, error)
	// LoadActiveCustomers returns customers currently on routes.
	LoadActiveCustomers(ctx context.Context) ([]model.ActiveCustomer, error)
}

var ErrNotFound = errors.New("not found")
