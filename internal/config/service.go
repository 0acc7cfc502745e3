package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensuslabs/reelstream/backend/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigService implements the Service interface
type ConfigService struct {
	logger Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(logger Logger) *ConfigService {
	return &ConfigService{
		logger: logger,
	}
}

// Load loads the configuration from the specified path.
// Values from .env are exported first so that environment overrides such as
// DATABASE_PASSWORD or AUTH_JWT_SECRET take precedence over the yaml file.
func (s *ConfigService) Load(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err == nil {
		s.logger.LogInfo("Loaded environment file", map[string]interface{}{"path": filepath.Join(path, ".env")})
	}

	v := viper.New()
	v.AddConfigPath(path)
	if os.Getenv("ENV") == "test" {
		v.SetConfigName("config_test")
	} else {
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	s.setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := s.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	if err := s.resolveStoragePaths(&config, path); err != nil {
		return nil, fmt.Errorf("failed to resolve storage paths: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", map[string]interface{}{
		"environment": config.Environment,
		"file":        v.ConfigFileUsed(),
	})
	return &config, nil
}

// setDefaults sets default values for configuration
func (s *ConfigService) setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.pool.maxOpen", 100)
	v.SetDefault("database.pool.maxIdle", 10)
	v.SetDefault("database.autoMigrate", true)
	v.SetDefault("database.slowQuery", "200ms")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "reelstream")
	v.SetDefault("mongo.timeout", "10s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.mediaRoot", "media")
	v.SetDefault("storage.mediaURL", "/media")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("ffmpeg.timeout", "30s")
	v.SetDefault("video.maxSizeMB", 100)
	v.SetDefault("video.maxImageSizeMB", 5)
	v.SetDefault("video.maxTitleLength", 255)
	v.SetDefault("video.maxDescLength", 5000)
	v.SetDefault("auth.jwt.accessTokenTTL", "30m")
	v.SetDefault("auth.codeTTL", "5m")
	v.SetDefault("snowflake.node", 1)
}

// validate performs validation on the configuration
func (s *ConfigService) validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if config.Database.Dbname == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Database.Port <= 0 {
		return fmt.Errorf("invalid database port")
	}

	if config.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is required")
	}

	switch config.Storage.Driver {
	case storage.DriverLocal:
	case storage.DriverS3:
		if config.Storage.S3.Endpoint == "" || config.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.endpoint and storage.s3.bucket are required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Snowflake.Node < 0 || config.Snowflake.Node > 1023 {
		return fmt.Errorf("snowflake.node must be between 0 and 1023")
	}

	return nil
}

// resolveStoragePaths converts a relative media root to an absolute path
func (s *ConfigService) resolveStoragePaths(config *Config, basePath string) error {
	mediaRoot := config.Storage.MediaRoot
	if !filepath.IsAbs(mediaRoot) {
		absPath, err := filepath.Abs(filepath.Join(basePath, mediaRoot))
		if err != nil {
			return fmt.Errorf("failed to resolve media root path: %v", err)
		}
		config.Storage.MediaRoot = absPath
	}

	return nil
}
