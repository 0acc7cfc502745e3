// Package dbtest connects repository tests to a real Postgres.
//
// Tests are skipped in -short mode and when the database configured in
// config_test.yaml cannot be reached. Each caller gets its own schema so
// packages tested in parallel do not see each other's rows.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/config"
	"github.com/consensuslabs/reelstream/backend/internal/database"
	"github.com/consensuslabs/reelstream/backend/testhelper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// projectRoot walks up from the working directory to the directory holding go.mod
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above working directory")
		}
		dir = parent
	}
}

// LoadTestConfig loads config_test.yaml from the project root
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root, err := projectRoot()
	if err != nil {
		t.Fatalf("failed to locate project root: %v", err)
	}
	t.Setenv("ENV", "test")
	cfg, err := config.NewConfigService(testhelper.NewTestLogger(false)).Load(root)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	if name := os.Getenv("TEST_DB"); name != "" {
		cfg.Database.Dbname = name
	}
	return cfg
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SetupTestDB connects to the test database inside a fresh schema named after
// the caller and applies every migration
func SetupTestDB(t *testing.T, schema string) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	cfg := LoadTestConfig(t)
	dsn := database.DSN(&cfg.Database)
	schema = "test_" + strings.ToLower(schema)

	admin, err := open(dsn)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %q CASCADE", schema)).Error; err != nil {
		t.Fatalf("failed to drop schema %s: %v", schema, err)
	}
	if err := admin.Exec(fmt.Sprintf("CREATE SCHEMA %q", schema)).Error; err != nil {
		t.Fatalf("failed to create schema %s: %v", schema, err)
	}
	if sqlDB, err := admin.DB(); err == nil {
		sqlDB.Close()
	}

	db, err := open(dsn + " search_path=" + schema)
	if err != nil {
		t.Fatalf("failed to connect to schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	migrations := database.NewMigrationConfig(db, "test", true)
	if err := migrations.InitializeMigrationTable(); err != nil {
		t.Fatalf("failed to initialize migration table: %v", err)
	}
	if _, err := migrations.Run(database.Migrations()); err != nil {
		t.Fatalf("failed to run test migrations: %v", err)
	}
	return db
}
