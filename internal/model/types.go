package model

// Core domain types for the capacity and pricing decision engine.
// All units are explicit: cubic yards, tons, miles, minutes, USD.

type StreamType string

const (
	StreamTrash     StreamType = "trash"
	StreamRecycling StreamType = "recycling"
	StreamYardWaste StreamType = "yard_waste"
)

func (s StreamType) Valid() bool {
	switch s {
	case StreamTrash, StreamRecycling, StreamYardWaste:
		return true
	}
	return false
}

type UnitType string

const (
	UnitSingleFamily     UnitType = "single_family"
	UnitTownhome         UnitType = "townhome"
	UnitCondo            UnitType = "condo"
	UnitMixedResidential UnitType = "mixed_residential"
	UnitUnknown          UnitType = "unknown"
)

func (u UnitType) Valid() bool {
	switch u {
	case UnitSingleFamily, UnitTownhome, UnitCondo, UnitMixedResidential, UnitUnknown:
		return true
	}
	return false
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ServiceStream is one collected waste stream of a prospect, built from
// the fixed generation-rate table for its type. Volume is loose cubic
// yards per unit per week, weight is pounds per unit per week.
type ServiceStream struct {
	Type                 StreamType `json:"type"`
	VolumePerUnitPerWeek float64    `json:"volumePerUnitPerWeek"`
	WeightPerUnitPerWeek float64    `json:"weightPerUnitPerWeek"`
	FrequencyPerWeek     int        `json:"frequencyPerWeek"`
}

// ServiceRequest is a fully-typed prospective contract. Construct via
// ParseServiceRequest; the engine never accepts loosely-typed input.
type ServiceRequest struct {
	Homes                int              `json:"homes"`
	UnitType             UnitType         `json:"unitType"`
	UnitBreakdown        map[UnitType]int `json:"unitBreakdown,omitempty"`
	Streams              []ServiceStream  `json:"streams"`
	Address              string           `json:"address,omitempty"`
	Location             *GeoPoint        `json:"location,omitempty"`
	IsWalkout            bool             `json:"isWalkout,omitempty"`
	IsGated              bool             `json:"isGated,omitempty"`
	HasSpecialContainers bool             `json:"hasSpecialContainers,omitempty"`
	SpecialRequirements  []string         `json:"specialRequirements,omitempty"`
	CommunityType        string           `json:"communityType,omitempty"`
	AccessType           string           `json:"accessType,omitempty"`
}

// TripRequirement is the per-stream capacity requirement. TripsNeeded is
// the larger of the volume-bound and weight-bound trip counts.
type TripRequirement struct {
	StreamType     StreamType `json:"streamType"`
	WeeklyVolume   float64    `json:"weeklyVolume"` // cubic yards
	WeeklyWeight   float64    `json:"weeklyWeight"` // tons
	TripsNeeded    int        `json:"tripsNeeded"`
	TruckHours     float64    `json:"truckHours"`
	LimitingFactor string     `json:"limitingFactor"`
}

// FleetUtilization is the caller-supplied snapshot of already-committed
// load. The engine reads it and never writes it.
type FleetUtilization struct {
	CurrentTrucks       int     `json:"currentTrucks"`
	HoursPerTruckPerDay float64 `json:"hoursPerTruckPerDay"`
	StopsPerTruck       int     `json:"stopsPerTruck,omitempty"`
	UtilizationPercent  float64 `json:"utilizationPercent,omitempty"`
}

type FleetAnalysisResult struct {
	RequiredTrips              []TripRequirement `json:"requiredTrips"`
	TotalTripsNeeded           int               `json:"totalTripsNeeded"`
	TotalHoursNeeded           float64           `json:"totalHoursNeeded"`
	CommittedHours             float64           `json:"committedHours"`
	AvailableHoursPerWeek      float64           `json:"availableHoursPerWeek"`
	FleetLoadPercent           float64           `json:"fleetLoadPercent"`
	AdditionalTrucksNeeded     int               `json:"additionalTrucksNeeded"`
	CanServiceWithCurrentFleet bool              `json:"canServiceWithCurrentFleet"`
	Constraints                []string          `json:"constraints,omitempty"`
}

// CustomerProfile is a historical reference record used for
// similarity-based price anchoring. Read-only.
type CustomerProfile struct {
	ID                        string   `json:"id"`
	CommunityType             string   `json:"communityType"`
	Homes                     int      `json:"homes"`
	BinType                   string   `json:"binType,omitempty"`
	AccessType                string   `json:"accessType,omitempty"`
	SpecialInstructions       []string `json:"specialInstructions,omitempty"`
	MonthlyCostPerUnit        float64  `json:"monthlyCostPerUnit"`
	LaborHoursPerHundredHomes float64  `json:"laborHoursPerHundredHomes"`
	AvgDisposalWeightTons     float64  `json:"avgDisposalWeightTons"`
}

// ActiveCustomer is the minimal view of a customer already on a route,
// used only for nearby-route detection and distance anchoring.
type ActiveCustomer struct {
	ID       string    `json:"id"`
	Address  string    `json:"address,omitempty"`
	Location *GeoPoint `json:"location,omitempty"`
	Homes    int       `json:"homes"`
}

type SimilarityScore struct {
	CustomerID   string          `json:"customerId"`
	Score        float64         `json:"score"` // 0..100
	MatchFactors []string        `json:"matchFactors"`
	Profile      CustomerProfile `json:"profile"`
}

// PricingInsight is the score-weighted summary over the qualifying
// historical matches, or the documented fallback when none qualify.
type PricingInsight struct {
	SuggestedPricePerHome     float64           `json:"suggestedPricePerHome"`
	LaborHoursPerHundredHomes float64           `json:"laborHoursPerHundredHomes"`
	AvgDisposalWeightTons     float64           `json:"avgDisposalWeightTons"`
	Confidence                Confidence        `json:"confidence"`
	Reasoning                 []string          `json:"reasoning"`
	Matches                   []SimilarityScore `json:"matches,omitempty"`
}

// RouteEstimate is the collaborator's answer, or the deterministic
// fallback when the collaborator is unavailable.
type RouteEstimate struct {
	DistanceMiles   float64 `json:"distanceMiles"`
	DurationMinutes float64 `json:"durationMinutes"`
	Fallback        bool    `json:"fallback,omitempty"`
}

// RouteCost itemizes weekly operating cost for serving the prospect.
// DisposalRevenue is the recycling offset, kept separate from cost so the
// sign convention is explicit at the boundary.
type RouteCost struct {
	FuelCost        float64 `json:"fuelCost"`
	LaborCost       float64 `json:"laborCost"`
	DisposalCost    float64 `json:"disposalCost"`
	DisposalRevenue float64 `json:"disposalRevenue"`
	TotalRouteCost  float64 `json:"totalRouteCost"`
}

type UnitTypePricing struct {
	UnitType                UnitType   `json:"unitType"`
	UnitCount               int        `json:"unitCount"`
	ContainersNeeded        int        `json:"containersNeeded,omitempty"`
	BasePrice               float64    `json:"basePrice"`
	WalkoutPremium          float64    `json:"walkoutPremium"`
	GatedPremium            float64    `json:"gatedPremium"`
	SpecialContainerPremium float64    `json:"specialContainerPremium"`
	FinalPricePerUnit       float64    `json:"finalPricePerUnit"`
	MonthlyRevenue          float64    `json:"monthlyRevenue"`
	RiskFlags               []RiskFlag `json:"riskFlags,omitempty"`
}

type BenchmarkValidation struct {
	IsWithinBenchmark bool    `json:"isWithinBenchmark"`
	BenchmarkPrice    float64 `json:"benchmarkPrice"`
	VariancePercent   float64 `json:"variancePercent"`
	Message           string  `json:"message"`
}

type AddOnsApplied struct {
	Walkout           bool `json:"walkout"`
	Gated             bool `json:"gated"`
	SpecialContainers bool `json:"specialContainers"`
}

type PricingBreakdown struct {
	UnitTypePricing     []UnitTypePricing   `json:"unitTypePricing"`
	TotalMonthlyRevenue float64             `json:"totalMonthlyRevenue"`
	AveragePricePerUnit float64             `json:"averagePricePerUnit"`
	AddOnsApplied       AddOnsApplied       `json:"addOnsApplied"`
	MarginPercent       float64             `json:"marginPercent"`
	Benchmark           BenchmarkValidation `json:"benchmarkValidation"`
	Confidence          Confidence          `json:"confidence"`
	RiskFlags           []RiskFlag          `json:"riskFlags,omitempty"`
	Warnings            []string            `json:"warnings,omitempty"`
}

// PriceModifier records one multiplicative adjustment of the tiered
// price, in the order it was applied.
type PriceModifier struct {
	Name    string  `json:"name"`
	Factor  float64 `json:"factor"`
	Applied bool    `json:"applied"`
}

type TieredPrice struct {
	BasePrice         float64         `json:"basePrice"`
	Modifiers         []PriceModifier `json:"modifiers"`
	FinalPricePerUnit float64         `json:"finalPricePerUnit"`
	Breakdown         []string        `json:"breakdown"`
	MonthlyRevenue    float64         `json:"monthlyRevenue"`
}

type RecommendationResult struct {
	QuoteID             string     `json:"quoteId"`
	ShouldBid           bool       `json:"shouldBid"`
	Confidence          Confidence `json:"confidence"`
	ServiceabilityScore int        `json:"serviceabilityScore"` // 0..100
	Reasoning           []string   `json:"reasoning"`
	Conditions          []string   `json:"conditions,omitempty"`
	RiskFlags           []RiskFlag `json:"riskFlags,omitempty"`
	ProfitMarginPercent float64    `json:"profitMarginPercent"`
	MonthlyProfit       float64    `json:"monthlyProfit"`
}

// Evaluation bundles the recommendation with every intermediate result
// so callers can display and audit the decision.
type Evaluation struct {
	Recommendation RecommendationResult `json:"recommendation"`
	Fleet          FleetAnalysisResult  `json:"fleetAnalysis"`
	Pricing        PricingBreakdown     `json:"pricing"`
	Tiered         TieredPrice          `json:"tieredPrice"`
	Route          RouteEstimate        `json:"route"`
	RouteCost      RouteCost            `json:"routeCost"`
	Insight        PricingInsight       `json:"historicalInsight"`
	HasNearbyRoute bool                 `json:"hasNearbyRoute"`
}
