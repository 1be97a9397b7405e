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

	assert.Equal(t, ":9091", cfg.ListenAddr)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 10, cfg.DBMaxIdleConns)
	assert.Equal(t, 10*time.Second, cfg.DBMaxIdleTime)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_QUERY_TIMEOUT", "5s")
	t.Setenv("JWT_SECRET", "sooper-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 50, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "sooper-secret", cfg.JWTSecret)
}
