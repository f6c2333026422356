package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REFRESH_INTERVAL", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval)
	assert.True(t, cfg.Engine.Snap.GridEnabled)
	assert.Equal(t, 10.0, cfg.Engine.Snap.GridUnit)
	assert.Equal(t, []float64{10, 20, 30, 40}, cfg.Engine.Snap.Spacings)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("READ_TIMEOUT", "not-a-number")
	t.Setenv("REFRESH_INTERVAL", "250ms")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()
	assert.Equal(t, "4100", cfg.Port)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "floorplan.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "8080"
log_level = "debug"

[engine]
collision_tolerance = 3.5

[engine.snap]
grid_enabled = false
grid_unit = 5.0
guide_tolerance = 1.5
magnet_threshold = 12.0
spacings = [8.0, 16.0]
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3.5, cfg.Engine.CollisionTolerance)
	assert.False(t, cfg.Engine.Snap.GridEnabled)
	assert.Equal(t, 5.0, cfg.Engine.Snap.GridUnit)
	assert.Equal(t, []float64{8, 16}, cfg.Engine.Snap.Spacings)
	assert.Equal(t, "migrations/001_init_floorplan.sql", cfg.MigrationsPath)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://a.local,http://b.local")

	cfg := Load()
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins)
}

func TestRefreshIntervalMustBePositive(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "0s")
	assert.Equal(t, 5*time.Second, Load().RefreshInterval)

	t.Setenv("REFRESH_INTERVAL", "-3s")
	assert.Equal(t, 5*time.Second, Load().RefreshInterval)

	t.Setenv("REFRESH_INTERVAL", "")
	path := filepath.Join(t.TempDir(), "floorplan.toml")
	require.NoError(t, os.WriteFile(path, []byte(`refresh_interval = "0s"`+"\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh_interval")
}
