package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/JaimeStill/ems-backend/internal/assets"
	"github.com/JaimeStill/ems-backend/internal/auth"
	"github.com/JaimeStill/ems-backend/internal/sites"
)

//go:embed seeds/*.json
var seedFiles embed.FS

// SeedData is the JSON structure of a seed file.
type SeedData struct {
	Users []auth.RegisterCommand `json:"users"`
	Sites []SiteSeed             `json:"sites"`
}

// SiteSeed is a site together with the assets installed at it.
type SiteSeed struct {
	sites.CreateCommand
	Assets []assets.CreateCommand `json:"assets"`
}

// Seeder populates one domain's data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed executes the seeding logic within the provided transaction.
	// Seeders use upsert semantics so repeated runs are safe.
	Seed(ctx context.Context, tx *sql.Tx, data *SeedData) error
}

// registration order is run order: later seeders may depend on earlier ones
var seeders []Seeder

func registerSeeder(s Seeder) {
	seeders = append(seeders, s)
}

func getSeeder(name string) (Seeder, bool) {
	for _, s := range seeders {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// loadSeedData reads file, or the embedded demo data when file is empty.
func loadSeedData(file string) (*SeedData, error) {
	var (
		content []byte
		err     error
	)

	if file != "" {
		content, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/demo.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data SeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

// runSeeders executes the named seeders, in registration order, within a single
// transaction. If any seeder fails the entire transaction is rolled back.
func runSeeders(ctx context.Context, db *sql.DB, data *SeedData, names []string) error {
	selected := make([]Seeder, 0, len(seeders))
	if len(names) == 0 {
		selected = append(selected, seeders...)
	} else {
		want := make(map[string]bool, len(names))
		for _, n := range names {
			if _, ok := getSeeder(n); !ok {
				return fmt.Errorf("seeder not found: %s", n)
			}
			want[n] = true
		}
		for _, s := range seeders {
			if want[s.Name()] {
				selected = append(selected, s)
			}
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, s := range selected {
		if err := s.Seed(ctx, tx, data); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
