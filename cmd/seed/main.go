// cmd/seed/main.go
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"github.com/your-org/vinyl-store/internal/infrastructure/database/postgres"
	"github.com/your-org/vinyl-store/internal/pkg/logger"
)

func main() {
	file := flag.String("file", "vinyls.json", "path to the catalog export file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read export file %s: %v", *file, err)
	}

	var records []catalog.RawVinyl
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse export file %s: %v", *file, err)
	}

	seeder := catalog.NewSeeder(db.GetDB(), cfg, appLogger)
	summary := seeder.Run(records)

	if err := seeder.Verify(); err != nil {
		log.Fatalf("Verification failed: %v", err)
	}

	if summary.Failed > 0 {
		appLogger.Warnf("Seeding finished with %d failed records out of %d", summary.Failed, summary.Total)
		os.Exit(1)
	}

	appLogger.Infof("Seeded %d records", summary.Inserted)
}
