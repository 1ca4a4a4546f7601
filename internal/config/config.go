package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Port     string
	LogLevel string

	// MongoDB configuration
	MongoURI      string
	MongoDatabase string
	UseMemoryDB   bool

	JWTSecret string

	// Outbound email for password reset links
	SMTPHost    string
	SMTPPort    int
	EmailUser   string
	EmailPass   string
	FrontendURL string

	// Rate limiting (disabled when RedisAddr is empty)
	RedisAddr          string
	RedisPassword      string
	RateLimitPerMinute int

	// MinIO collection exports (disabled when MinioEndpoint is empty)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	CORSOrigins string
}

// MailEnabled reports whether SMTP credentials are configured.
func (c *Config) MailEnabled() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{
		Port:          getEnv("PORT", "5000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "booknook"),
		UseMemoryDB:   os.Getenv("USE_MEMORY_DB") == "true",
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPass:     os.Getenv("EMAIL_PASS"),
		FrontendURL:   strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MinioEndpoint: strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
		MinioBucket:   getEnv("MINIO_BUCKET", "book-exports"),
		MinioUseSSL:   os.Getenv("MINIO_USE_SSL") == "true",
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
	}

	// Token signing secret (required)
	config.JWTSecret = os.Getenv("JWT_SECRET")
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	port, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	config.SMTPPort = port

	limit, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 20)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", limit)
	}
	config.RateLimitPerMinute = limit

	if config.MinioEndpoint != "" {
		config.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
		config.MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
