// Command migrate runs schema operations for the API database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"postboard/internal/bootstrap"
	"postboard/internal/config"
	"postboard/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|down [steps]|version|auto>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "up":
		if err := requirePostgres(cfg); err != nil {
			return err
		}
		if err := database.RunMigrations(cfg.PostgresURL()); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Println("sql migrations applied")
	case "down":
		if err := requirePostgres(cfg); err != nil {
			return err
		}
		steps := 1
		if flag.NArg() > 1 {
			steps, err = strconv.Atoi(flag.Arg(1))
			if err != nil || steps <= 0 {
				return fmt.Errorf("invalid step count %q", flag.Arg(1))
			}
		}
		if err := database.RollbackMigrations(cfg.PostgresURL(), steps); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Printf("rolled back %d migration(s)", steps)
	case "version":
		status, err := database.GetSchemaStatus(cfg)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		log.Printf("mode=%s env=%s run_sql=%t run_auto=%t version=%d dirty=%t",
			status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate, status.Version, status.Dirty)
	case "auto":
		db, _, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{SkipSchema: true})
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto schema apply failed: %w", err)
		}
		log.Println("automigrations applied")
	default:
		return usage()
	}

	return nil
}

func requirePostgres(cfg *config.Config) error {
	if cfg.DBDriver != config.DriverPostgres {
		return fmt.Errorf("sql migrations require DB_DRIVER=%s, got %q", config.DriverPostgres, cfg.DBDriver)
	}
	return nil
}
