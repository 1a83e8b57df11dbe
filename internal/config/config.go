package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"wasteops/internal/fleet"
	"wasteops/internal/model"
	"wasteops/internal/pricing"
	"wasteops/internal/routing"
)

// Config is the process environment configuration.
type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	RedisURL         string        `env:"REDIS_URL"`
	RoutingURL       string        `env:"ROUTING_URL"`
	RatesFile        string        `env:"RATES_FILE"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	RouteCallTimeout time.Duration `env:"ROUTE_CALL_TIMEOUT" envDefault:"8s"`
	DepotLat         float64       `env:"DEPOT_LAT" envDefault:"35.2271"`
	DepotLng         float64       `env:"DEPOT_LNG" envDefault:"-80.8431"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// Rates is the operator-tunable rate sheet, loaded from YAML. Every
// section is optional; omitted sections keep the built-in defaults.
type Rates struct {
	TruckSpec *fleet.TruckSpec   `yaml:"truckSpec"`
	Fleet     *fleet.Config      `yaml:"fleet"`
	Pricing   *pricing.Config    `yaml:"pricing"`
	CostRates *routing.CostRates `yaml:"costRates"`
}

// LoadRates reads the rate sheet and validates the pricing section.
// Invalid configuration is rejected here, before any request is served.
func LoadRates(path string) (fleet.TruckSpec, fleet.Config, pricing.Config, routing.CostRates, error) {
	spec := fleet.DefaultTruckSpec()
	fleetCfg := fleet.DefaultConfig()
	priceCfg := pricing.DefaultConfig()
	costRates := routing.DefaultCostRates()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return spec, fleetCfg, priceCfg, costRates, fmt.Errorf("read rates file: %w", err)
		}
		var r Rates
		if err := yaml.Unmarshal(data, &r); err != nil {
			return spec, fleetCfg, priceCfg, costRates, fmt.Errorf("parse rates file: %w", err)
		}
		if r.TruckSpec != nil {
			spec = *r.TruckSpec
		}
		if r.Fleet != nil {
			fleetCfg = *r.Fleet
		}
		if r.Pricing != nil {
			priceCfg = *r.Pricing
		}
		if r.CostRates != nil {
			costRates = *r.CostRates
		}
	}

	if err := priceCfg.Validate(); err != nil {
		return spec, fleetCfg, priceCfg, costRates, err
	}
	if err := validateFleet(spec, fleetCfg); err != nil {
		return spec, fleetCfg, priceCfg, costRates, err
	}
	if err := validateCostRates(costRates); err != nil {
		return spec, fleetCfg, priceCfg, costRates, err
	}
	return spec, fleetCfg, priceCfg, costRates, nil
}

func validateFleet(spec fleet.TruckSpec, cfg fleet.Config) error {
	if spec.CapacityCubicYards <= 0 || spec.CompactionRatio <= 0 {
		return fmt.Errorf("fleet config: truck capacity and compaction ratio must be > 0")
	}
	if spec.MaxPayloadTons <= 0 || spec.MaxRouteHoursPerDay <= 0 {
		return fmt.Errorf("fleet config: payload and route hours must be > 0")
	}
	if cfg.Trucks <= 0 {
		return fmt.Errorf("fleet config: trucks must be > 0")
	}
	if cfg.WorkingDaysPerWeek < 1 || cfg.WorkingDaysPerWeek > 7 {
		return fmt.Errorf("fleet config: workingDaysPerWeek must be within [1,7]")
	}
	if cfg.UtilizationBuffer <= 0 || cfg.UtilizationBuffer > 1 {
		return fmt.Errorf("fleet config: utilizationBuffer must be within (0,1]")
	}
	if cfg.DefaultCommittedFraction < 0 || cfg.DefaultCommittedFraction > 1 {
		return fmt.Errorf("fleet config: defaultCommittedFraction must be within [0,1]")
	}
	return nil
}

func validateCostRates(r routing.CostRates) error {
	if r.FuelPerMile <= 0 || r.LaborPerHour <= 0 {
		return fmt.Errorf("cost rates: fuelPerMile and laborPerHour must be > 0")
	}
	for _, st := range []model.StreamType{model.StreamTrash, model.StreamRecycling, model.StreamYardWaste} {
		if _, ok := r.DisposalPerTon[st]; !ok {
			return fmt.Errorf("cost rates: missing disposal rate for stream %q", st)
		}
	}
	return nil
}
