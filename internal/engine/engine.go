package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wasteops/internal/cache"
	"wasteops/internal/fleet"
	"wasteops/internal/metrics"
	"wasteops/internal/model"
	"wasteops/internal/pricing"
	"wasteops/internal/routing"
	"wasteops/internal/similarity"
	"wasteops/internal/store"
)

// weeksPerMonth converts weekly operating cost into monthly figures.
const weeksPerMonth = 4.33

// Options configures an Engine. Zero values take documented defaults.
type Options struct {
	TruckSpec fleet.TruckSpec
	FleetCfg  fleet.Config
	Pricing   pricing.Config
	CostRates routing.CostRates

	// Depot anchors route estimates when no active customer is nearby.
	Depot model.GeoPoint
	// NearbyRouteRadiusMiles bounds the route-pairing discount.
	NearbyRouteRadiusMiles float64
	// DefaultRoute is used when the prospect carries no coordinates.
	DefaultRoute model.RouteEstimate

	CacheTTL time.Duration
}

// Engine is the recommendation synthesizer. It is safe for concurrent
// use: every evaluation builds its own derived state.
type Engine struct {
	opts   Options
	routes routing.Estimator
	store  store.Store
	memo   cache.Cache
	log    *zap.Logger
}

// New wires the engine. routes and st may be nil; the engine then runs
// entirely on fallbacks. The pricing config is validated here, before
// any request is processed.
func New(opts Options, routes routing.Estimator, st store.Store, memo cache.Cache, log *zap.Logger) (*Engine, error) {
	if opts.NearbyRouteRadiusMiles <= 0 {
		opts.NearbyRouteRadiusMiles = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.DefaultRoute.DistanceMiles == 0 && opts.DefaultRoute.DurationMinutes == 0 {
		opts.DefaultRoute = model.RouteEstimate{DistanceMiles: 10, DurationMinutes: 20, Fallback: true}
	}
	if opts.TruckSpec == (fleet.TruckSpec{}) {
		opts.TruckSpec = fleet.DefaultTruckSpec()
	}
	if opts.FleetCfg == (fleet.Config{}) {
		opts.FleetCfg = fleet.DefaultConfig()
	}
	if opts.CostRates.LaborPerHour == 0 {
		opts.CostRates = routing.DefaultCostRates()
	}
	if len(opts.Pricing.Tiers) == 0 {
		opts.Pricing = pricing.DefaultConfig()
	}
	if err := opts.Pricing.Validate(); err != nil {
		return nil, err
	}
	if memo == nil {
		memo = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{opts: opts, routes: routes, store: st, memo: memo, log: log}, nil
}

// Evaluate runs the full capacity, cost, and pricing analysis and emits
// a bid recommendation. It always returns a well-formed Evaluation; the
// only errors are a cancelled context or a nil request precondition.
func (e *Engine) Evaluate(ctx context.Context, req model.ServiceRequest, util *model.FleetUtilization) (*model.Evaluation, error) {
	if req.Homes <= 0 || len(req.Streams) == 0 {
		return nil, &model.ValidationError{Field: "request", Reason: "must come through ParseServiceRequest"}
	}
	start := time.Now()

	ev := &model.Evaluation{}

	// Capacity arithmetic is pure and fast; run it inline.
	analyzer := fleet.NewAnalyzer(e.opts.TruckSpec, e.opts.FleetCfg)
	ev.Fleet = analyzer.Analyze(req, util)

	// Fan out the two independent collaborator reads and join.
	var (
		wg       sync.WaitGroup
		profiles []model.CustomerProfile
		active   []model.ActiveCustomer
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		profiles = e.loadProfiles(ctx)
	}()
	go func() {
		defer wg.Done()
		active = e.loadActive(ctx)
	}()
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ev.Route, ev.HasNearbyRoute = e.routeMetrics(ctx, req, active)
	ev.RouteCost = routing.EstimateCost(ev.Fleet.RequiredTrips, ev.Route, e.opts.CostRates)
	ev.Insight = similarity.Insight(req, profiles)
	ev.Pricing = e.memoizedUnitPricing(ctx, req)

	var insight *model.PricingInsight
	if ev.Insight.Confidence == model.ConfidenceHigh {
		insight = &ev.Insight
	}
	ev.Tiered = pricing.TieredPrice(e.opts.Pricing, pricing.TieredInput{
		Homes:          req.Homes,
		StreamCount:    len(req.Streams),
		Fleet:          ev.Fleet,
		HasNearbyRoute: ev.HasNearbyRoute,
		Insight:        insight,
	})

	// Final quote: tiered per-unit price plus the additive service
	// premiums from the unit breakdown.
	premiumRevenue := 0.0
	for _, up := range ev.Pricing.UnitTypePricing {
		premiumRevenue += (up.WalkoutPremium + up.GatedPremium + up.SpecialContainerPremium) * float64(up.UnitCount)
	}
	monthlyRevenue := ev.Tiered.MonthlyRevenue + premiumRevenue
	monthlyCost := ev.RouteCost.TotalRouteCost * weeksPerMonth

	ev.Recommendation = e.synthesize(req, ev, monthlyRevenue, monthlyCost)
	// Content-derived ID keeps identical requests byte-identical.
	ev.Recommendation.QuoteID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("quote|"+unitPricingKey(req)+fmt.Sprintf("|%d", len(req.Streams)))).String()

	rec := "no_bid"
	if ev.Recommendation.ShouldBid {
		rec = "bid"
	} else if len(ev.Recommendation.Conditions) > 0 {
		rec = "bid_with_conditions"
	}
	metrics.Evaluations.WithLabelValues(rec, string(ev.Recommendation.Confidence)).Inc()
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	e.log.Info("evaluated service request",
		zap.Int("homes", req.Homes),
		zap.String("unitType", string(req.UnitType)),
		zap.Bool("shouldBid", ev.Recommendation.ShouldBid),
		zap.Int("score", ev.Recommendation.ServiceabilityScore),
		zap.Float64("marginPercent", ev.Recommendation.ProfitMarginPercent),
	)
	return ev, nil
}

func (e *Engine) loadProfiles(ctx context.Context) []model.CustomerProfile {
	if e.store == nil {
		return nil
	}
	profiles, err := e.store.LoadHistoricalProfiles(ctx)
	if err != nil {
		metrics.CollaboratorFallbacks.WithLabelValues("historical_profiles").Inc()
		e.log.Warn("historical profile load failed; similarity falls back to defaults", zap.Error(err))
		return nil
	}
	return profiles
}

func (e *Engine) loadActive(ctx context.Context) []model.ActiveCustomer {
	if e.store == nil {
		return nil
	}
	active, err := e.store.LoadActiveCustomers(ctx)
	if err != nil {
		metrics.CollaboratorFallbacks.WithLabelValues("active_customers").Inc()
		e.log.Warn("active customer load failed; treating as no nearby route", zap.Error(err))
		return nil
	}
	return active
}

// routeMetrics estimates the drive from the nearest anchored point (an
// active customer within reach, else the depot) to the prospect, and
// whether an existing route passes close enough for pairing.
func (e *Engine) routeMetrics(ctx context.Context, req model.ServiceRequest, active []model.ActiveCustomer) (model.RouteEstimate, bool) {
	if req.Location == nil {
		return e.opts.DefaultRoute, false
	}
	dest := *req.Location

	origin := e.opts.Depot
	bestMiles := -1.0
	for _, ac := range active {
		if ac.Location == nil {
			continue
		}
		miles := routing.HaversineMeters(*ac.Location, dest) / 1609.344
		if bestMiles < 0 || miles < bestMiles {
			bestMiles = miles
			origin = *ac.Location
		}
	}
	hasNearby := bestMiles >= 0 && bestMiles <= e.opts.NearbyRouteRadiusMiles

	key := cache.Key("route", fmt.Sprintf("%.5f,%.5f", origin.Lat, origin.Lng), fmt.Sprintf("%.5f,%.5f", dest.Lat, dest.Lng))
	if data, ok := e.memo.Get(ctx, key); ok {
		metrics.CacheHits.WithLabelValues("hit").Inc()
		var est model.RouteEstimate
		if err := json.Unmarshal(data, &est); err == nil {
			return est, hasNearby
		}
	}
	metrics.CacheHits.WithLabelValues("miss").Inc()

	est := routing.EstimateWithFallback(ctx, e.routes, origin, dest, e.log)
	if est.Fallback {
		metrics.CollaboratorFallbacks.WithLabelValues("route_estimate").Inc()
	}
	if data, err := json.Marshal(est); err == nil {
		e.memo.Set(ctx, key, data, e.opts.CacheTTL)
	}
	return est, hasNearby
}

// memoizedUnitPricing wraps the pure unit pricing computation with the
// TTL cache. Values are pure functions of the key, so a stale read is
// merely a recomputation saved.
func (e *Engine) memoizedUnitPricing(ctx context.Context, req model.ServiceRequest) model.PricingBreakdown {
	key := cache.Key("unitpricing", unitPricingKey(req))
	if data, ok := e.memo.Get(ctx, key); ok {
		metrics.CacheHits.WithLabelValues("hit").Inc()
		var bd model.PricingBreakdown
		if err := json.Unmarshal(data, &bd); err == nil {
			return bd
		}
	}
	metrics.CacheHits.WithLabelValues("miss").Inc()

	bd := pricing.NewUnitEngine(e.opts.Pricing).Price(req)
	if data, err := json.Marshal(bd); err == nil {
		e.memo.Set(ctx, key, data, e.opts.CacheTTL)
	}
	return bd
}

func unitPricingKey(req model.ServiceRequest) string {
	parts := []string{
		string(req.UnitType),
		fmt.Sprintf("homes=%d", req.Homes),
		fmt.Sprintf("flags=%t,%t,%t", req.IsWalkout, req.IsGated, req.HasSpecialContainers),
	}
	bdKeys := make([]string, 0, len(req.UnitBreakdown))
	for ut, n := range req.UnitBreakdown {
		bdKeys = append(bdKeys, fmt.Sprintf("%s=%d", ut, n))
	}
	sort.Strings(bdKeys)
	parts = append(parts, strings.Join(bdKeys, ","))
	reqs := append([]string(nil), req.SpecialRequirements...)
	sort.Strings(reqs)
	parts = append(parts, strings.Join(reqs, "\x1f"))
	return strings.Join(parts, "|")
}
