package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/citas?sslmode=disable")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, int32(30), cfg.DBMaxConns)
	assert.Equal(t, int32(5), cfg.DBMinConns)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "Consultorio Médico", cfg.ProveedorNombre)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.ListadoCompleto)
	assert.False(t, cfg.SMTPConfigurado())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrDatabaseURLRequerida)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/citas")
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SMTP_USER", "citas@example.com")
	t.Setenv("SMTP_PASSWORD", "app-password")
	t.Setenv("CITAS_LISTADO_COMPLETO", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("DB_MAX_CONNS", "10")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.SMTPConfigurado())
	assert.Equal(t, "citas@example.com", cfg.SMTPFrom, "SMTP_FROM falls back to SMTP_USER")
	assert.True(t, cfg.ListadoCompleto)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{ZonaHoraria: "Nowhere/Invalid"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.ZonaHoraria = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}
