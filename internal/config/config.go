// Package config loads application configuration.
//
// Values come from an optional YAML file (path in NEWSDESK_CONFIG) and are then
// overridden by environment variables. Required values are checked by Validate
// so that the process fails fast at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	envcfg "newsdesk/pkg/config"
)

// ConfigFileEnv names the environment variable holding the YAML config path.
const ConfigFileEnv = "NEWSDESK_CONFIG"

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// DatabaseConfig holds connection parameters and pool settings.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	MaxOpenConns     int           `yaml:"max_open_conns"`
	MaxIdleConns     int           `yaml:"max_idle_conns"`
	ConnMaxLifetime  time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime  time.Duration `yaml:"conn_max_idle_time"`
	StatementTimeout time.Duration `yaml:"statement_timeout"`
}

// LogConfig controls the slog handler and the optional rotating file sink.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// MetricsConfig controls the Prometheus export. Textfile, when set, is rewritten
// with the process metrics after every command.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the YAML file named by NEWSDESK_CONFIG (if any), applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	// #nosec G304 -- path is provided by the operator through NEWSDESK_CONFIG
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	db := &cfg.Database
	db.DSN = envcfg.GetEnvString("DB_DSN", db.DSN)
	db.User = envcfg.GetEnvString("DB_USER", db.User)
	db.Password = envcfg.GetEnvString("DB_PASSWORD", db.Password)
	db.MaxOpenConns = envcfg.GetEnvInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = envcfg.GetEnvInt("DB_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.ConnMaxLifetime = envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", db.ConnMaxLifetime)
	db.ConnMaxIdleTime = envcfg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", db.ConnMaxIdleTime)
	db.StatementTimeout = envcfg.GetEnvDuration("DB_STATEMENT_TIMEOUT", db.StatementTimeout)

	lg := &cfg.Log
	lg.Level = envcfg.GetEnvString("LOG_LEVEL", lg.Level)
	lg.Format = envcfg.GetEnvString("LOG_FORMAT", lg.Format)
	lg.File = envcfg.GetEnvString("LOG_FILE", lg.File)

	cfg.Metrics.Textfile = envcfg.GetEnvString("METRICS_TEXTFILE", cfg.Metrics.Textfile)
}

// Validate checks required values and ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DB_DSN must be set"))
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, fmt.Errorf("max_open_conns must be positive, got %d", c.Database.MaxOpenConns))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, fmt.Errorf("max_idle_conns must be non-negative, got %d", c.Database.MaxIdleConns))
	}
	if err := envcfg.ValidatePositiveDuration(c.Database.ConnMaxLifetime); err != nil {
		errs = append(errs, fmt.Errorf("conn_max_lifetime: %w", err))
	}
	if err := envcfg.ValidatePositiveDuration(c.Database.ConnMaxIdleTime); err != nil {
		errs = append(errs, fmt.Errorf("conn_max_idle_time: %w", err))
	}
	if err := envcfg.ValidateNonNegativeDuration(c.Database.StatementTimeout); err != nil {
		errs = append(errs, fmt.Errorf("statement_timeout: %w", err))
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
