package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"wasteops/internal/model"
)

// Postgres reads customer data from the operations database.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error { return p.db.Close() }

// Bootstrap creates the read tables if they do not exist (dev helper).
func (p *Postgres) Bootstrap(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customer_profiles (
			id TEXT PRIMARY KEY,
			community_type TEXT NOT NULL DEFAULT '',
			homes INT NOT NULL,
			bin_type TEXT NOT NULL DEFAULT '',
			access_type TEXT NOT NULL DEFAULT '',
			special_instructions TEXT[] NOT NULL DEFAULT '{}',
			monthly_cost_per_unit DOUBLE PRECISION NOT NULL,
			labor_hours_per_hundred_homes DOUBLE PRECISION NOT NULL,
			avg_disposal_weight_tons DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS active_customers (
			id TEXT PRIMARY KEY,
			address TEXT NOT NULL DEFAULT '',
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			homes INT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := p.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}
	return nil
}

func (p *Postgres) LoadHistoricalProfiles(ctx context.Context) ([]model.CustomerProfile, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, community_type, homes, bin_type, access_type,
		       array_to_string(special_instructions, '|'),
		       monthly_cost_per_unit, labor_hours_per_hundred_homes, avg_disposal_weight_tons
		FROM customer_profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load historical profiles: %w", err)
	}
	defer rows.Close()

	var out []model.CustomerProfile
	for rows.Next() {
		var cp model.CustomerProfile
		var instr string
		if err := rows.Scan(&cp.ID, &cp.CommunityType, &cp.Homes, &cp.BinType, &cp.AccessType,
			&instr, &cp.MonthlyCostPerUnit, &cp.LaborHoursPerHundredHomes, &cp.AvgDisposalWeightTons); err != nil {
			return nil, fmt.Errorf("scan historical profile: %w", err)
		}
		cp.SpecialInstructions = splitNonEmpty(instr, "|")
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (p *Postgres) LoadActiveCustomers(ctx context.Context) ([]model.ActiveCustomer, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, address, lat, lng, homes FROM active_customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load active customers: %w", err)
	}
	defer rows.Close()

	var out []model.ActiveCustomer
	for rows.Next() {
		var ac model.ActiveCustomer
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&ac.ID, &ac.Address, &lat, &lng, &ac.Homes); err != nil {
			return nil, fmt.Errorf("scan active customer: %w", err)
		}
		if lat.Valid && lng.Valid {
			ac.Location = &model.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
		}
		out = append(out, ac)
	}
	return out, rows.Err()
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
