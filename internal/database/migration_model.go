package database

import (
	"time"

	"gorm.io/gorm"
)

// MigrationRecord tracks which migrations have been executed
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex:idx_schema_migrations_name"` // Migration name
	Hash      string    `gorm:"not null"`                                        // Hash of migration content for integrity
	AppliedAt time.Time `gorm:"not null"`
	BatchNo   int       `gorm:"not null"` // Batch number for grouping migrations
}

// TableName specifies the table name for migration records
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// Migration is a named, idempotent schema step
type Migration struct {
	Name    string
	Content string
	Apply   func(tx *gorm.DB) error
}
