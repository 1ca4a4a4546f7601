package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_PASS", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "booknook", cfg.MongoDatabase)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.False(t, cfg.MailEnabled())
	assert.Empty(t, cfg.MinioAccessKey)
}

func TestLoadFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadFromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("EMAIL_USER", "books@example.com")
	t.Setenv("EMAIL_PASS", "app-password")
	t.Setenv("FRONTEND_URL", "https://booknook.example.com/")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "")
	t.Setenv("USE_MEMORY_DB", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.MailEnabled())
	assert.True(t, cfg.UseMemoryDB)
	assert.Equal(t, "https://booknook.example.com", cfg.FrontendURL)
	assert.Equal(t, "minioadmin", cfg.MinioAccessKey)
}

func TestLoadFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SMTP_PORT", "abc")

	_, err := LoadFromEnv()
	assert.ErrorContains(t, err, "SMTP_PORT")

	t.Setenv("SMTP_PORT", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	_, err = LoadFromEnv()
	assert.ErrorContains(t, err, "RATE_LIMIT_PER_MINUTE")
}
