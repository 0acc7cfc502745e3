package database

import (
	"context"
	"fmt"

	"github.com/consensuslabs/reelstream/backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DatabaseService implements the Service interface
type DatabaseService struct {
	config          *config.DatabaseConfig
	environment     string
	logger          Logger
	db              *gorm.DB
	migrationConfig *MigrationConfig
}

// NewDatabaseService creates a new database service instance
func NewDatabaseService(config *config.DatabaseConfig, environment string, logger Logger) *DatabaseService {
	return &DatabaseService{
		config:      config,
		environment: environment,
		logger:      logger,
	}
}

// DSN builds the postgres connection string
func DSN(c *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host,
		c.User,
		c.Password,
		c.Dbname,
		c.Port,
		c.Sslmode,
		c.Timezone,
	)
}

// Connect establishes a connection to the database and applies pending migrations when allowed
func (s *DatabaseService) Connect() (*gorm.DB, error) {
	s.logger.LogInfo("Connecting to database", map[string]interface{}{
		"host":   s.config.Host,
		"port":   s.config.Port,
		"dbname": s.config.Dbname,
	})

	gormConfig := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         NewGormLogger(s.logger, s.config.SlowQuery),
	}

	db, err := gorm.Open(postgres.Open(DSN(s.config)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(s.config.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(s.config.Pool.MaxIdle)

	s.migrationConfig = NewMigrationConfig(db, s.environment, s.config.AutoMigrate)
	if err := s.migrationConfig.InitializeMigrationTable(); err != nil {
		return nil, fmt.Errorf("failed to initialize migration tracking: %v", err)
	}

	if s.migrationConfig.ShouldAutoMigrate() {
		applied, err := s.migrationConfig.Run(Migrations())
		if err != nil {
			return nil, fmt.Errorf("auto migration failed: %v", err)
		}
		s.logger.LogInfo("Auto-migration completed", map[string]interface{}{
			"applied": applied,
		})
	} else {
		s.logger.LogInfo("Skipping auto-migration based on environment configuration", map[string]interface{}{
			"environment": s.environment,
		})
	}

	s.db = db
	return db, nil
}

// Ping checks that the database is reachable
func (s *DatabaseService) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *DatabaseService) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %v", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %v", err)
		}
	}
	return nil
}
