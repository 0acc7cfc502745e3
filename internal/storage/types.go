package storage

// Storage drivers
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config represents media storage settings
type Config struct {
	Driver    string   `mapstructure:"driver"`
	MediaRoot string   `mapstructure:"mediaRoot"`
	MediaURL  string   `mapstructure:"mediaURL"`
	S3        S3Config `mapstructure:"s3"`
}

// S3Config represents S3 compatible object storage settings
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	UseSSL          bool   `mapstructure:"useSSL"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	PublicURL       string `mapstructure:"publicURL"`
}
