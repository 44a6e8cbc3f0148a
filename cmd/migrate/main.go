package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/webmart/storefront/internal/infrastructure/config"
	"github.com/webmart/storefront/internal/infrastructure/logger"
	"github.com/webmart/storefront/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logLevel, "console", "stdout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema migrated", zap.String("path", cfg.Database.Path))

	case "seed":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		repo := persistence.NewGormProductRepository(db.DB)
		if err := persistence.SeedCatalog(ctx, repo); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		count, err := repo.Count(ctx)
		if err != nil {
			log.Fatal("Failed to count products", zap.Error(err))
		}
		log.Info("Catalog seeded", zap.Int64("products", count))

	case "status":
		if err := db.Ping(); err != nil {
			log.Fatal("Database unreachable", zap.Error(err))
		}
		repo := persistence.NewGormProductRepository(db.DB)
		count, err := repo.Count(ctx)
		if err != nil {
			log.Fatal("Failed to count products", zap.Error(err))
		}
		log.Info("Database reachable",
			zap.String("path", cfg.Database.Path),
			zap.Int64("products", count))

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command>

Commands:
  up      Create or update the database schema
  seed    Migrate and load the sample catalog
  status  Check database connectivity and seeded product count

Flags:
  -log-level string   Log level: debug, info, warn, error (default "info")`)
}
