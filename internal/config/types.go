package config

import (
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/consensuslabs/reelstream/backend/internal/storage"
)

// Config represents the application configuration
type Config struct {
	Environment string          `mapstructure:"environment" yaml:"environment"`
	Server      ServerConfig    `mapstructure:"server" yaml:"server"`
	Database    DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Mongo       MongoConfig     `mapstructure:"mongo" yaml:"mongo"`
	Redis       RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Storage     storage.Config  `mapstructure:"storage" yaml:"storage"`
	Logging     logger.Config   `mapstructure:"logging" yaml:"logging"`
	Ffmpeg      FfmpegConfig    `mapstructure:"ffmpeg" yaml:"ffmpeg"`
	Video       VideoConfig     `mapstructure:"video" yaml:"video"`
	Auth        AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Snowflake   SnowflakeConfig `mapstructure:"snowflake" yaml:"snowflake"`
}

// AuthConfig represents authentication configuration settings
type AuthConfig struct {
	JWT struct {
		Secret         string        `mapstructure:"secret"`
		AccessTokenTTL time.Duration `mapstructure:"accessTokenTTL"`
	} `mapstructure:"jwt"`
	CodeTTL time.Duration `mapstructure:"codeTTL"`
}

// ServerConfig represents server configuration settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig represents database configuration settings
type DatabaseConfig struct {
	Host        string        `mapstructure:"host"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	Dbname      string        `mapstructure:"dbname"`
	Port        int           `mapstructure:"port"`
	Sslmode     string        `mapstructure:"sslmode"`
	Timezone    string        `mapstructure:"timezone"`
	AutoMigrate bool          `mapstructure:"autoMigrate"`
	SlowQuery   time.Duration `mapstructure:"slowQuery"`
	Pool        struct {
		MaxOpen int `mapstructure:"maxOpen"`
		MaxIdle int `mapstructure:"maxIdle"`
	} `mapstructure:"pool"`
}

// MongoConfig represents document store settings
type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RedisConfig represents Redis configuration settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FfmpegConfig represents media probing settings
type FfmpegConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// VideoConfig represents upload limits
type VideoConfig struct {
	MaxSizeMB      int64 `mapstructure:"maxSizeMB"`
	MaxImageSizeMB int64 `mapstructure:"maxImageSizeMB"`
	MaxTitleLength int   `mapstructure:"maxTitleLength"`
	MaxDescLength  int   `mapstructure:"maxDescLength"`
}

// SnowflakeConfig identifies this node for handle generation
type SnowflakeConfig struct {
	Node int64 `mapstructure:"node"`
}
