package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/analytics"
	"github.com/consensuslabs/reelstream/backend/internal/config"
	"github.com/consensuslabs/reelstream/backend/internal/database"
	"github.com/consensuslabs/reelstream/backend/internal/logger"
)

func main() {
	status := flag.Bool("status", false, "List applied and pending migrations without running them")
	flag.Parse()

	loggerInstance, err := logger.NewLogrusLogger(&logger.Config{
		Level:  "info",
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := run(loggerInstance, *status); err != nil {
		loggerInstance.LogError(err, "Migration failed")
		os.Exit(1)
	}
}

func run(appLogger logger.Logger, statusOnly bool) error {
	cfg, err := config.NewConfigService(appLogger).Load(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Migrations are applied explicitly below
	cfg.Database.AutoMigrate = false
	dbService := database.NewDatabaseService(&cfg.Database, cfg.Environment, appLogger)
	db, err := dbService.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbService.Close()

	migrations := database.NewMigrationConfig(db, cfg.Environment, true)
	pending, err := reportStatus(appLogger, migrations, database.Migrations())
	if err != nil {
		return err
	}
	if statusOnly {
		return nil
	}

	for _, m := range pending {
		if err := migrations.ValidateMigration(m.Name); err != nil {
			return err
		}
	}

	appLogger.LogInfo("Running database migrations", map[string]interface{}{"pending": len(pending)})
	applied, err := migrations.Run(database.Migrations())
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	appLogger.LogInfo("Database migrations completed", map[string]interface{}{
		"applied": applied,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout+30*time.Second)
	defer cancel()

	mongoService := database.NewMongoService(&cfg.Mongo, appLogger)
	mongoDB, err := mongoService.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to document store: %w", err)
	}
	defer mongoService.Close(ctx)

	if err := analytics.NewMongoRepository(mongoDB).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create analytics indexes: %w", err)
	}
	appLogger.LogInfo("Analytics indexes ensured", nil)
	return nil
}

// reportStatus logs every recorded migration, warns when a recorded checksum no
// longer matches its definition, and returns the migrations not applied yet
func reportStatus(appLogger logger.Logger, migrations *database.MigrationConfig, all []database.Migration) ([]database.Migration, error) {
	if err := migrations.InitializeMigrationTable(); err != nil {
		return nil, err
	}
	records, err := migrations.GetAppliedMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}

	recorded := make(map[string]database.MigrationRecord, len(records))
	for _, r := range records {
		recorded[r.Name] = r
		appLogger.LogInfo("Applied migration", map[string]interface{}{
			"name":       r.Name,
			"batch":      r.BatchNo,
			"applied_at": r.AppliedAt.Format(time.RFC3339),
		})
	}

	var pending []database.Migration
	for _, m := range all {
		r, ok := recorded[m.Name]
		if !ok {
			pending = append(pending, m)
			appLogger.LogInfo("Pending migration", map[string]interface{}{"name": m.Name})
			continue
		}
		if r.Hash != database.Checksum(m.Content) {
			appLogger.LogWarn("Migration changed after it was applied", map[string]interface{}{"name": m.Name})
		}
	}
	return pending, nil
}
