// Package config resolves server settings from defaults, an optional TOML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Nasaee/taskboard/internal/env"
)

const (
	DefaultConfigFile  = "taskboard.toml"
	DefaultAddr        = ":8000"
	DefaultFrontendURL = "http://localhost:3000"
	DefaultDataDir     = "data"
	DefaultRedisAddr   = "localhost:6379"

	// DefaultShutdownTimeout is in seconds.
	DefaultShutdownTimeout = 10
)

// Store drivers.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var drivers = []string{DriverFile, DriverMemory, DriverRedis, DriverPostgres, DriverSQLite}

type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Timestamps bool   `toml:"timestamps"`
}

type StoreConfig struct {
	Driver      string `toml:"driver"`
	DataDir     string `toml:"data_dir"`
	PostgresDSN string `toml:"postgres_dsn"`
	RedisAddr   string `toml:"redis_addr"`
	RedisKey    string `toml:"redis_key"`
	SQLitePath  string `toml:"sqlite_path"`
}

type Config struct {
	Addr        string      `toml:"addr"`
	AppEnv      string      `toml:"app_env"`
	// ShutdownTimeout is how many seconds in-flight requests get on shutdown.
	ShutdownTimeout int `toml:"shutdown_timeout"`
	FrontendURL string      `toml:"frontend_url"`
	Log         LogConfig   `toml:"log"`
	Store       StoreConfig `toml:"store"`
}

func (c *Config) IsProd() bool {
	return c.AppEnv == string(env.EnvProduction)
}

func setDefaults(cfg *Config) {
	cfg.Addr = DefaultAddr
	cfg.AppEnv = string(env.EnvDevelopment)
	cfg.FrontendURL = DefaultFrontendURL
	cfg.ShutdownTimeout = DefaultShutdownTimeout
	cfg.Log = LogConfig{Level: "info", Format: "text", Timestamps: true}
	cfg.Store = StoreConfig{
		Driver:    DriverFile,
		DataDir:   DefaultDataDir,
		RedisAddr: DefaultRedisAddr,
	}
}

// Load builds the config. path may be empty, in which case TASKBOARD_CONFIG
// or DefaultConfigFile is used; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path == "" {
		path = env.GetString("TASKBOARD_CONFIG", DefaultConfigFile)
	}
	if err := loadConfigFile(cfg, path); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Addr = env.GetString("API_PORT", cfg.Addr)
	cfg.AppEnv = env.GetString("APP_ENV", cfg.AppEnv)
	cfg.FrontendURL = env.GetString("FRONTEND_URL", cfg.FrontendURL)
	cfg.Log.Level = env.GetString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = env.GetString("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Timestamps = env.GetBool("LOG_TIMESTAMPS", cfg.Log.Timestamps)
	cfg.ShutdownTimeout = env.GetInt("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.Store.Driver = env.GetString("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.DataDir = env.GetString("DATA_DIR", cfg.Store.DataDir)
	cfg.Store.PostgresDSN = env.GetString("DATABASE_URL", cfg.Store.PostgresDSN)
	cfg.Store.RedisAddr = env.GetString("REDIS_ADDR", cfg.Store.RedisAddr)
	cfg.Store.RedisKey = env.GetString("REDIS_KEY", cfg.Store.RedisKey)
	cfg.Store.SQLitePath = env.GetString("SQLITE_PATH", cfg.Store.SQLitePath)
}

// Validate normalizes the driver name and checks driver-specific settings.
// Production refuses the volatile memory driver.
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))

	known := false
	for _, d := range drivers {
		if c.Store.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown store driver %q (want one of %s)", c.Store.Driver, strings.Join(drivers, ", "))
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %d", c.ShutdownTimeout)
	}

	switch c.Store.Driver {
	case DriverMemory:
		// production ต้องเก็บข้อมูลถาวร
		if c.IsProd() {
			return errors.New("the memory driver loses every task on restart and is not allowed when APP_ENV=production")
		}
	case DriverFile:
		if c.Store.DataDir == "" {
			return errors.New("store.data_dir is required for the file driver")
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("DATABASE_URL (store.postgres_dsn) is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			c.Store.SQLitePath = filepath.Join(c.Store.DataDir, "tasks.db")
		}
	}
	return nil
}
