package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether a database host is configured. Without one the
// draft history is kept in process memory.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an object store endpoint is configured. Without one
// rendered PDFs are kept in process memory.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// DraftConfig holds settings for draft generation and delivery.
type DraftConfig struct {
	MaxPages         int
	PresignExpirySec int
}

// PresignExpiry is the lifetime of presigned download links.
func (c DraftConfig) PresignExpiry() time.Duration {
	return time.Duration(c.PresignExpirySec) * time.Second
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string
	Port          string
	LogLevel      string
	TZOffsetHours int
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Draft         DraftConfig
}

// Location is the fixed zone used for log timestamps.
func (c *AppConfig) Location() *time.Location {
	return time.FixedZone("UTC"+strconv.Itoa(c.TZOffsetHours), c.TZOffsetHours*60*60)
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:       getEnv("APP_HOST", "localhost:8080"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		TZOffsetHours: getEnvInt("APP_TZ_OFFSET_HOURS", 7),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "drafts"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Draft: DraftConfig{
			MaxPages:         getEnvInt("DRAFT_MAX_PAGES", 50),
			PresignExpirySec: getEnvInt("DRAFT_PRESIGN_EXPIRY_SEC", 900),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
