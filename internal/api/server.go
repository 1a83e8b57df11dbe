package api

import (
	"strings"

	"go.uber.org/zap"

	"wasteops/internal/cache"
	"wasteops/internal/config"
	"wasteops/internal/engine"
	"wasteops/internal/metrics"
	"wasteops/internal/model"
	"wasteops/internal/routing"
	"wasteops/internal/store"
)

// Server wires the decision engine to its collaborators for the HTTP
// surface. If DATABASE_URL is unset, customer data comes from the
// seeded in-memory store; if REDIS_URL is unset, memoization is local.
type Server struct {
	Engine *engine.Engine
	Store  store.Store
	Log    *zap.Logger
}

func NewServer(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var st store.Store
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		st = store.NewMemory()
	} else {
		pg, err := store.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st = pg
	}

	var memo cache.Cache
	if cfg.RedisURL != "" {
		if rc, err := cache.NewRedis(cfg.RedisURL, "wasteops:quote:"); err == nil {
			memo = rc
		} else {
			log.Warn("redis cache unavailable, using in-process cache", zap.Error(err))
			memo = cache.NewMemory()
		}
	} else {
		memo = cache.NewMemory()
	}

	var est routing.Estimator
	if cfg.RoutingURL != "" {
		est = routing.NewHTTPEstimator(cfg.RoutingURL, routing.WithTimeout(cfg.RouteCallTimeout))
	}

	spec, fleetCfg, priceCfg, costRates, err := config.LoadRates(cfg.RatesFile)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(engine.Options{
		TruckSpec: spec,
		FleetCfg:  fleetCfg,
		Pricing:   priceCfg,
		CostRates: costRates,
		Depot:     model.GeoPoint{Lat: cfg.DepotLat, Lng: cfg.DepotLng},
		CacheTTL:  cfg.CacheTTL,
	}, est, st, memo, log)
	if err != nil {
		return nil, err
	}

	metrics.RegisterDefault()
	return &Server{Engine: eng, Store: st, Log: log}, nil
}
