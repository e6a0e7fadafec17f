package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/pflag"

	"github.com/JaimeStill/agent-meet/internal/config"
	"github.com/JaimeStill/agent-meet/internal/migrations"
	"github.com/JaimeStill/agent-meet/pkg/logging"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	var (
		dsn     = flags.String("dsn", "", "database connection string (default: config.toml database)")
		only    = flags.StringSlice("only", nil, "run only the named seeders, in order")
		file    = flags.StringToString("file", nil, "external seed file per seeder, e.g. agents=./agents.yaml")
		list    = flags.BoolP("list", "l", false, "list available seeders")
		migrate = flags.Bool("migrate", true, "apply schema migrations before seeding")
	)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	for name, path := range *file {
		s, ok := getSeeder(name)
		if !ok {
			log.Fatalf("seeder not found: %s", name)
		}
		s.SetFile(path)
	}

	db, err := open(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if *migrate {
		if err := migrations.Up(db, logging.Discard()); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if err := runSeeders(context.Background(), db, *only...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("seeding completed successfully")
}

func open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = os.Getenv(EnvDatabaseDSN)
	}
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("database connection string required: use --dsn, %s or config.toml: %w", EnvDatabaseDSN, err)
		}
		dsn = cfg.Database.Dsn()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
