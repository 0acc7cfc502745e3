package database

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"
)

// MigrationConfig holds configuration for database migrations
type MigrationConfig struct {
	Environment string
	AutoMigrate bool
	ForceRun    bool
	db          *gorm.DB
}

// NewMigrationConfig creates a new migration configuration.
// AUTO_MIGRATE and FORCE_MIGRATION in the environment override the configured values.
func NewMigrationConfig(db *gorm.DB, environment string, autoMigrate bool) *MigrationConfig {
	if environment == "" {
		environment = "development"
	}
	if autoMigrateEnv := os.Getenv("AUTO_MIGRATE"); autoMigrateEnv != "" {
		autoMigrate = autoMigrateEnv == "true"
	}

	return &MigrationConfig{
		Environment: environment,
		AutoMigrate: autoMigrate,
		ForceRun:    os.Getenv("FORCE_MIGRATION") == "true",
		db:          db,
	}
}

// InitializeMigrationTable creates the migrations tracking table
func (c *MigrationConfig) InitializeMigrationTable() error {
	if c.db.Migrator().HasTable(&MigrationRecord{}) {
		return nil
	}
	if err := c.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %v", err)
	}
	return nil
}

// HasMigrationBeenApplied checks if a specific migration has already been run
func (c *MigrationConfig) HasMigrationBeenApplied(name string) (bool, error) {
	var count int64
	err := c.db.Model(&MigrationRecord{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// RecordMigration records a successful migration in the given batch
func (c *MigrationConfig) RecordMigration(tx *gorm.DB, name, content string, batchNo int) error {
	return tx.Create(&MigrationRecord{
		Name:      name,
		Hash:      Checksum(content),
		AppliedAt: time.Now(),
		BatchNo:   batchNo,
	}).Error
}

// GetAppliedMigrations returns a list of all applied migrations
func (c *MigrationConfig) GetAppliedMigrations() ([]MigrationRecord, error) {
	var migrations []MigrationRecord
	err := c.db.Order("applied_at").Find(&migrations).Error
	return migrations, err
}

// ShouldRunMigration determines if migrations should be executed
func (c *MigrationConfig) ShouldRunMigration() bool {
	if c.ForceRun {
		return true
	}
	if c.Environment == "development" || c.Environment == "test" {
		return c.AutoMigrate
	}
	return false
}

// ShouldAutoMigrate determines if auto-migration should run on startup
func (c *MigrationConfig) ShouldAutoMigrate() bool {
	return c.ShouldRunMigration()
}

// ValidateMigration checks that a migration is allowed to run and has not run yet
func (c *MigrationConfig) ValidateMigration(migrationName string) error {
	if !c.ShouldRunMigration() {
		return fmt.Errorf("migrations are disabled in %s environment. Use FORCE_MIGRATION=true to override", c.Environment)
	}

	applied, err := c.HasMigrationBeenApplied(migrationName)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %v", err)
	}
	if applied {
		return fmt.Errorf("migration %s has already been applied", migrationName)
	}
	return nil
}

// Run applies every migration that has not been recorded yet, each in its own
// transaction, and returns the names it applied. All of them share one batch number.
func (c *MigrationConfig) Run(migrations []Migration) ([]string, error) {
	var batchNo int
	if err := c.db.Model(&MigrationRecord{}).Select("COALESCE(MAX(batch_no), 0) + 1").Row().Scan(&batchNo); err != nil {
		return nil, fmt.Errorf("failed to determine batch number: %v", err)
	}

	var applied []string
	for _, m := range migrations {
		done, err := c.HasMigrationBeenApplied(m.Name)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration %s: %v", m.Name, err)
		}
		if done {
			continue
		}

		err = c.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Apply(tx); err != nil {
				return err
			}
			return c.RecordMigration(tx, m.Name, m.Content, batchNo)
		})
		if err != nil {
			return applied, fmt.Errorf("migration %s failed: %v", m.Name, err)
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}

// Checksum returns the sha256 of a migration's content
func Checksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
