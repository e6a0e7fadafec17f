// Package main provides the seed command for populating the database with
// initial or test data. Seeders run individually or together within a single
// transaction, in registration order.
package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seeds/*.yaml
var seedFiles embed.FS

// Seeder defines the interface for database seeders.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// SetFile replaces the embedded seed data with an external YAML file.
	SetFile(path string)

	// Seed executes the seeding logic within the provided transaction.
	Seed(ctx context.Context, tx *sql.Tx) error
}

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

func listSeeders() []Seeder {
	return seeders
}

// runSeeders executes the named seeders within one transaction. An empty
// names list runs every seeder. If any seeder fails the transaction is
// rolled back.
func runSeeders(ctx context.Context, db *sql.DB, names ...string) error {
	selected := seeders
	if len(names) > 0 {
		selected = make([]Seeder, 0, len(names))
		for _, name := range names {
			s, ok := getSeeder(name)
			if !ok {
				return fmt.Errorf("seeder not found: %s", name)
			}
			selected = append(selected, s)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, s := range selected {
		if err := s.Seed(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// loadSeedData decodes file, or the embedded seeds/<embedded> when file is empty.
func loadSeedData(file, embedded string, out any) error {
	var content []byte
	var err error

	if file != "" {
		content, err = os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/" + embedded)
		if err != nil {
			return fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	if err := yaml.Unmarshal(content, out); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}
	return nil
}
