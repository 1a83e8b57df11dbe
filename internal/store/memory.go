package store

import (
	"context"
	"sync"

	"wasteops/internal/model"
)

// Memory is the demo-data store used when no DATABASE_URL is set.
type Memory struct {
	mu       sync.RWMutex
	profiles []model.CustomerProfile
	active   []model.ActiveCustomer
}

// NewMemory seeds representative suburban accounts so the engine answers
// usefully out of the box.
func NewMemory() *Memory {
	return &Memory{
		profiles: []model.CustomerProfile{
			{
				ID: "cust_oakridge", CommunityType: "hoa", Homes: 180, BinType: "96gal_cart",
				AccessType: "curbside", MonthlyCostPerUnit: 21.40,
				LaborHoursPerHundredHomes: 5.2, AvgDisposalWeightTons: 3.4,
			},
			{
				ID: "cust_maplewood", CommunityType: "hoa", Homes: 140, BinType: "96gal_cart",
				AccessType: "curbside", MonthlyCostPerUnit: 22.10,
				LaborHoursPerHundredHomes: 5.6, AvgDisposalWeightTons: 2.9,
			},
			{
				ID: "cust_stonebridge", CommunityType: "hoa", Homes: 220, BinType: "96gal_cart",
				AccessType: "curbside", SpecialInstructions: []string{"holiday schedule shift"},
				MonthlyCostPerUnit: 20.75, LaborHoursPerHundredHomes: 4.9, AvgDisposalWeightTons: 4.1,
			},
			{
				ID: "cust_harborview", CommunityType: "condo", Homes: 320, BinType: "4yd_container",
				AccessType: "alley", SpecialInstructions: []string{"gated entrance, code 4411"},
				MonthlyCostPerUnit: 24.90, LaborHoursPerHundredHomes: 3.8, AvgDisposalWeightTons: 5.6,
			},
			{
				ID: "cust_pinehollow", CommunityType: "municipal", Homes: 850, BinType: "96gal_cart",
				AccessType: "curbside", MonthlyCostPerUnit: 18.30,
				LaborHoursPerHundredHomes: 4.4, AvgDisposalWeightTons: 14.2,
			},
			{
				ID: "cust_willowgate", CommunityType: "hoa", Homes: 95, BinType: "96gal_cart",
				AccessType: "walkout", SpecialInstructions: []string{"walk-out service to side yards"},
				MonthlyCostPerUnit: 29.80, LaborHoursPerHundredHomes: 7.8, AvgDisposalWeightTons: 1.8,
			},
		},
		active: []model.ActiveCustomer{
			{ID: "cust_oakridge", Address: "Oakridge HOA", Location: &model.GeoPoint{Lat: 35.2271, Lng: -80.8431}, Homes: 180},
			{ID: "cust_stonebridge", Address: "Stonebridge HOA", Location: &model.GeoPoint{Lat: 35.3105, Lng: -80.7420}, Homes: 220},
			{ID: "cust_harborview", Address: "Harborview Condos", Location: &model.GeoPoint{Lat: 35.1940, Lng: -80.9210}, Homes: 320},
		},
	}
}

func (m *Memory) LoadHistoricalProfiles(ctx context.Context) ([]model.CustomerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.CustomerProfile, len(m.profiles))
	copy(out, m.profiles)
	return out, nil
}

func (m *Memory) LoadActiveCustomers(ctx context.Context) ([]model.ActiveCustomer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.ActiveCustomer, len(m.active))
	copy(out, m.active)
	return out, nil
}

// SetActiveCustomers replaces the active list; test helper.
func (m *Memory) SetActiveCustomers(active []model.ActiveCustomer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = active
}

// SetProfiles replaces the reference profiles; test helper.
func (m *Memory) SetProfiles(profiles []model.CustomerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = profiles
}
