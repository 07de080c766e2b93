package config

import (
	"os"
	"strconv"
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

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RenderConfig points at the PDF rendering service.
type RenderConfig struct {
	BaseURL    string
	TimeoutSec int
}

// DirectoryConfig points at the patient/staff directory service.
type DirectoryConfig struct {
	BaseURL    string
	TimeoutSec int
}

// AIConfig points at the optional template enhancement service. When
// Enabled is false (or no base URL is set) the passthrough enhancer is used.
type AIConfig struct {
	Enabled    bool
	BaseURL    string
	TimeoutSec int
}

// AuthConfig holds the bearer token verification settings.
type AuthConfig struct {
	JWTSecret string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Render    RenderConfig
	Directory DirectoryConfig
	AI        AIConfig
	Auth      AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
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
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Render: RenderConfig{
			BaseURL:    getEnv("RENDER_SERVICE_URL", ""),
			TimeoutSec: getEnvInt("RENDER_TIMEOUT_SEC", 30),
		},
		Directory: DirectoryConfig{
			BaseURL:    getEnv("DIRECTORY_SERVICE_URL", ""),
			TimeoutSec: getEnvInt("DIRECTORY_TIMEOUT_SEC", 10),
		},
		AI: AIConfig{
			Enabled:    getEnvBool("AI_ENHANCEMENT_ENABLED", false),
			BaseURL:    getEnv("AI_SERVICE_URL", ""),
			TimeoutSec: getEnvInt("AI_TIMEOUT_SEC", 30),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
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
