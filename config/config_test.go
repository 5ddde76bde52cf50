package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "crm_db", cfg.Database.Name)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, "PREFERRED", cfg.Database.SSLMode)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_SSL_MODE", "REQUIRED")
	t.Setenv("JWT_EXPIRATION", "3600")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "REQUIRED", cfg.Database.SSLMode)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"},
		cfg.CORS.AllowedOrigins)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_BAD_INT", "forty-two")
	t.Setenv("SOME_DURATION", "90s")

	assert.Equal(t, 42, getEnvAsInt("SOME_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("SOME_BAD_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("SOME_MISSING_INT", 7))
	assert.Equal(t, 90*time.Second, getEnvAsDuration("SOME_DURATION", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_MISSING_DURATION", time.Minute))
}
