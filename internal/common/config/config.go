package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port            string        `toml:"port"`
	Environment     string        `toml:"env"`
	ReadTimeout     int           `toml:"read_timeout"`
	WriteTimeout    int           `toml:"write_timeout"`
	DBPath          string        `toml:"db_path"`
	MigrationsPath  string        `toml:"migrations_path"`
	RedisAddr       string        `toml:"redis_addr"`
	RedisChannel    string        `toml:"redis_channel"`
	RefreshInterval time.Duration `toml:"refresh_interval"`
	LogLevel        string        `toml:"log_level"`
	CORSOrigins     []string      `toml:"cors_origins"`
	Engine          Engine        `toml:"engine"`
}

// Engine holds the layout tunables. The thresholds are empirical.
type Engine struct {
	Snap               Snap    `toml:"snap"`
	CollisionTolerance float64 `toml:"collision_tolerance"` // pixels per side
}

type Snap struct {
	GridEnabled     bool      `toml:"grid_enabled"`
	GridUnit        float64   `toml:"grid_unit"`        // percent of canvas
	GuideTolerance  float64   `toml:"guide_tolerance"`  // percent points
	MagnetThreshold float64   `toml:"magnet_threshold"` // pixels
	Spacings        []float64 `toml:"spacings"`         // pixels, tried in order
}

func Default() *Config {
	return &Config{
		Port:            "3000",
		Environment:     "development",
		ReadTimeout:     10,
		WriteTimeout:    10,
		DBPath:          "data/db/floorplan.db",
		MigrationsPath:  "migrations/001_init_floorplan.sql",
		RedisChannel:    "floorplan:positions",
		RefreshInterval: 5 * time.Second,
		LogLevel:        "info",
		Engine: Engine{
			Snap: Snap{
				GridEnabled:     true,
				GridUnit:        10,
				GuideTolerance:  2,
				MagnetThreshold: 15,
				Spacings:        []float64{10, 20, 30, 40},
			},
		},
	}
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a TOML file over the defaults, then applies env overrides.
// An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	if c.Engine.CollisionTolerance < 0 {
		return fmt.Errorf("collision_tolerance must not be negative, got %g", c.Engine.CollisionTolerance)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENV", c.Environment)
	c.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.WriteTimeout)
	c.DBPath = getEnv("FLOOR_DB_PATH", c.DBPath)
	c.MigrationsPath = getEnv("MIGRATIONS_PATH", c.MigrationsPath)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisChannel = getEnv("REDIS_CHANNEL", c.RedisChannel)
	c.RefreshInterval = getEnvAsDuration("REFRESH_INTERVAL", c.RefreshInterval)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = strings.Split(origins, ",")
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}
