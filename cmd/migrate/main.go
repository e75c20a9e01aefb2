package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/pkg/database"
	"github.com/JaimeStill/tenderboard/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	var (
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	m, err := database.NewMigrator(&cfg.Database, migrations, "migrations", logger.New(&cfg.Log, nil))
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("%v", err)
		}
	case *up:
		if err := m.Up(); errors.Is(err, database.ErrDirtySchema) {
			log.Fatalf("%v: inspect the failed migration, then run -force <version>", err)
		} else if err != nil {
			log.Fatalf("%v", err)
		}
	case *down:
		if err := m.Down(); err != nil {
			log.Fatalf("%v", err)
		}
	case *steps != 0:
		if err := m.Steps(*steps); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		fmt.Println("usage: migrate [-up|-down|-steps N|-version|-force N]")
		fmt.Println("connection settings come from config.toml and TENDERBOARD_DB_* variables")
		flag.PrintDefaults()
	}
}
