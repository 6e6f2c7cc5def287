package main

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/JaimeStill/ems-backend/internal/auth"
	"github.com/JaimeStill/ems-backend/internal/data"
	"github.com/JaimeStill/ems-backend/internal/energy"
	"github.com/google/uuid"
)

func init() {
	registerSeeder(&userSeeder{})
	registerSeeder(&siteSeeder{now: time.Now})
	registerSeeder(&telemetrySeeder{now: time.Now})
}

type userSeeder struct{}

func (s *userSeeder) Name() string        { return "users" }
func (s *userSeeder) Description() string { return "Seeds operator accounts" }

func (s *userSeeder) Seed(ctx context.Context, tx *sql.Tx, d *SeedData) error {
	const query = `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			password_hash = EXCLUDED.password_hash,
			updated_at = NOW()`

	for _, u := range d.Users {
		email, err := auth.NormalizeEmail(u.Email)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Email, err)
		}
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("user %s: %w", email, err)
		}
		if _, err := tx.ExecContext(ctx, query, email, u.FullName, hash); err != nil {
			return fmt.Errorf("save user %s: %w", email, err)
		}
	}
	return nil
}

type siteSeeder struct {
	now func() time.Time
}

func (s *siteSeeder) Name() string        { return "sites" }
func (s *siteSeeder) Description() string { return "Seeds sites and their installed assets" }

func (s *siteSeeder) Seed(ctx context.Context, tx *sql.Tx, d *SeedData) error {
	const siteQuery = `
		INSERT INTO sites (name, location, capacity_kw, battery_capacity_kwh)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			location = EXCLUDED.location,
			capacity_kw = EXCLUDED.capacity_kw,
			battery_capacity_kwh = EXCLUDED.battery_capacity_kwh,
			updated_at = NOW()
		RETURNING id`

	const assetQuery = `
		INSERT INTO assets (site_id, name, type, model, install_date, failure_probability)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (site_id, name) DO UPDATE SET
			type = EXCLUDED.type,
			model = EXCLUDED.model,
			install_date = EXCLUDED.install_date,
			failure_probability = EXCLUDED.failure_probability,
			updated_at = NOW()`

	now := s.now()

	for _, site := range d.Sites {
		cmd := site.CreateCommand
		if err := cmd.Validate(); err != nil {
			return fmt.Errorf("site %q: %w", cmd.Name, err)
		}

		var id uuid.UUID
		err := tx.QueryRowContext(ctx, siteQuery, cmd.Name, cmd.Location, cmd.CapacityKw, cmd.BatteryCapacityKwh).Scan(&id)
		if err != nil {
			return fmt.Errorf("save site %s: %w", cmd.Name, err)
		}

		for _, a := range site.Assets {
			a.SiteID = id
			if err := a.Validate(now); err != nil {
				return fmt.Errorf("asset %q at %s: %w", a.Name, cmd.Name, err)
			}

			var installed any
			if a.InstallDate != nil {
				installed = *a.InstallDate
			}

			_, err := tx.ExecContext(ctx, assetQuery, id, a.Name, string(a.Type), a.Model, installed, *a.FailureProbability)
			if err != nil {
				return fmt.Errorf("save asset %s at %s: %w", a.Name, cmd.Name, err)
			}
		}
	}
	return nil
}

// SeedWindow is how much synthetic telemetry history is generated per site.
const SeedWindow = 24 * time.Hour

type telemetrySeeder struct {
	now func() time.Time
}

func (s *telemetrySeeder) Name() string { return "telemetry" }
func (s *telemetrySeeder) Description() string {
	return "Seeds a day of hourly synthetic telemetry for each seeded site"
}

// Seed skips sites that already have readings inside the window.
func (s *telemetrySeeder) Seed(ctx context.Context, tx *sql.Tx, d *SeedData) error {
	const lookup = `
		SELECT id, capacity_kw, battery_capacity_kwh,
			EXISTS (SELECT 1 FROM telemetry t WHERE t.site_id = s.id AND t.recorded_at >= $2)
		FROM sites s WHERE name = $1`

	const insert = `
		INSERT INTO telemetry (site_id, recorded_at, pv_generation, net_load, battery_discharge, battery_soc, grid_draw)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	end := s.now().UTC().Truncate(time.Hour)
	start := end.Add(-SeedWindow)

	for _, site := range d.Sites {
		var (
			id       uuid.UUID
			capacity float64
			battery  float64
			seeded   bool
		)
		err := tx.QueryRowContext(ctx, lookup, site.Name, start).Scan(&id, &capacity, &battery, &seeded)
		if err == sql.ErrNoRows {
			return fmt.Errorf("site %s has not been seeded", site.Name)
		}
		if err != nil {
			return fmt.Errorf("look up site %s: %w", site.Name, err)
		}
		if seeded {
			continue
		}

		for _, r := range synthesize(capacity, battery, start, end) {
			m := r.Metrics
			_, err := tx.ExecContext(ctx, insert, id, r.RecordedAt, m.PVGeneration, m.NetLoad, m.BatteryDischarge, m.BatterySoC, m.GridDraw)
			if err != nil {
				return fmt.Errorf("save telemetry for %s: %w", site.Name, err)
			}
		}
	}
	return nil
}

// synthesize produces hourly readings in (start, end] for a site with the given
// PV and battery capacity. The battery discharges into any deficit and absorbs
// any surplus, limited to a quarter of PV capacity per hour.
func synthesize(capacityKw, batteryKwh float64, start, end time.Time) []data.Reading {
	readings := make([]data.Reading, 0, int(end.Sub(start)/time.Hour))
	soc := 60.0
	rate := capacityKw / 4

	for at := start.Add(time.Hour); !at.After(end); at = at.Add(time.Hour) {
		pv := capacityKw * 0.8 * energy.ClearSkyAt(at)

		load := capacityKw * 0.35
		if h := at.Hour(); h >= 17 && h < 21 {
			load = capacityKw * 0.6
		}

		net := load - pv
		discharge := energy.Clamp(net, -rate, rate)
		if batteryKwh > 0 {
			next := energy.Clamp(soc-discharge/batteryKwh*100, 5, 100)
			discharge = (soc - next) * batteryKwh / 100
			soc = next
		} else {
			discharge = 0
		}

		readings = append(readings, data.Reading{
			RecordedAt: at,
			Metrics: data.Metrics{
				PVGeneration:     energy.Round(pv, 2),
				NetLoad:          energy.Round(net, 2),
				BatteryDischarge: energy.Round(discharge, 2),
				BatterySoC:       energy.Round(soc, 2),
				GridDraw:         energy.Round(math.Max(net-discharge, 0), 2),
			},
		})
	}
	return readings
}
