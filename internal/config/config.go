package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Mode selects runtime behavior: development uses the fixed OTP code and a
// logging OTP sender, production hides error detail from responses.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Config represents the application configuration. It is built once at
// startup from the -env file and environment variables and passed into every
// component constructor; nothing reads process-wide state after Load returns.
type Config struct {
	Mode    Mode
	Server  ServerConfig
	Mongo   MongoConfig
	Storage StorageConfig
	Notify  NotifyConfig
	Upload  UploadConfig
	OTP     OTPConfig
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MongoConfig represents database configuration
type MongoConfig struct {
	URI      string
	Database string
}

// StorageConfig represents object storage (S3) configuration
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	PublicBaseURL   string
	AccessKeyID     string
	SecretAccessKey string
}

// NotifyConfig represents OTP delivery configuration
type NotifyConfig struct {
	EmailFrom  string
	SMSEnabled bool
}

// UploadConfig represents file intake configuration
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// OTPConfig represents OTP issuance configuration
type OTPConfig struct {
	TTL     time.Duration
	DevCode string
}

// Load reads the env file at envPath, applies environment variable
// overrides, and returns the resolved configuration.
func Load(envPath string, mode string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envPath, err)
		}
	}

	m := Mode(mode)
	switch m {
	case ModeDevelopment, ModeProduction:
	case "":
		m = ModeDevelopment
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	config := &Config{
		Mode: m,
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "partner-portal",
		},
		Storage: StorageConfig{
			Bucket: "partner-portal-documents",
			Region: "me-central-1",
		},
		Upload: UploadConfig{
			Dir:      "/tmp/partner-portal/uploads",
			MaxBytes: 1_000_000,
		},
		OTP: OTPConfig{
			TTL:     5 * time.Minute,
			DevCode: "123456",
		},
	}

	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		config.Mongo.URI = uri
	}
	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		config.Mongo.Database = name
	}
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		config.Storage.Bucket = bucket
	}
	if region := os.Getenv("STORAGE_REGION"); region != "" {
		config.Storage.Region = region
	}
	if endpoint := os.Getenv("STORAGE_ENDPOINT"); endpoint != "" {
		config.Storage.Endpoint = endpoint
	}
	if base := os.Getenv("STORAGE_PUBLIC_BASE_URL"); base != "" {
		config.Storage.PublicBaseURL = base
	}
	if key := os.Getenv("STORAGE_ACCESS_KEY_ID"); key != "" {
		config.Storage.AccessKeyID = key
	}
	if secret := os.Getenv("STORAGE_SECRET_ACCESS_KEY"); secret != "" {
		config.Storage.SecretAccessKey = secret
	}
	if from := os.Getenv("NOTIFY_EMAIL_FROM"); from != "" {
		config.Notify.EmailFrom = from
	}
	if sms := os.Getenv("NOTIFY_SMS_ENABLED"); sms != "" {
		if v, err := strconv.ParseBool(sms); err == nil {
			config.Notify.SMSEnabled = v
		}
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		config.Upload.Dir = dir
	}
	if ttl := os.Getenv("OTP_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			config.OTP.TTL = d
		}
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}
