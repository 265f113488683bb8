package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "ClinicPOS", cfg.JWT.Issuer)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.True(t, cfg.Broker.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("CACHE_TYPE", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Error(t, cfg.Validate(), "missing JWT secret should fail validation")

	cfg.JWT.Secret = "test-secret"
	assert.NoError(t, cfg.Validate())

	cfg.Cache.Type = "memcached"
	assert.Error(t, cfg.Validate())
}
