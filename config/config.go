// Package config loads the database and logging settings of relm tools from
// a YAML file, an optional .env file and RELM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/syssam/relm/dialect"
	"github.com/syssam/relm/dialect/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Environment variables overriding the file settings.
const (
	EnvDriver   = "RELM_DRIVER"
	EnvDSN      = "RELM_DSN"
	EnvLogLevel = "RELM_LOG_LEVEL"
)

// DefaultSlowThreshold is used when the configuration does not set one.
const DefaultSlowThreshold = 100 * time.Millisecond

// Config is the root of the configuration file.
//
//	database:
//	  driver: pgx
//	  dsn: postgres://localhost:5432/app
//	  max_open_conns: 10
//	  conn_max_lifetime: 5m
//	log:
//	  level: debug
type Config struct {
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
}

// Database holds the connection settings.
type Database struct {
	// Driver is one of postgres, pgx, mysql or sqlite.
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns,omitempty"`
	MaxIdleConns    int           `yaml:"max_idle_conns,omitempty"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime,omitempty"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time,omitempty"`
	// SlowThreshold is the duration above which statements are logged as slow.
	SlowThreshold time.Duration `yaml:"slow_threshold,omitempty"`
}

// Log holds the logging settings.
type Log struct {
	// Level is one of debug, info, warn or error. Default is info.
	Level string `yaml:"level"`
}

// Load reads the configuration file at path, then applies the environment.
// An empty path skips the file. The env files are loaded into the process
// environment first without overriding variables already set; with none
// given, a .env file in the working directory is loaded if present.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadEnv(envFiles); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnv(files []string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDriver); ok {
		c.Database.Driver = v
	}
	if v, ok := os.LookupEnv(EnvDSN); ok {
		c.Database.DSN = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = v
	}
}

// Validate checks the configuration for missing or unknown values.
func (c *Config) Validate() error {
	if _, _, err := c.Database.driver(); err != nil {
		return err
	}
	if c.Database.DSN == "" {
		return errors.New("config: database dsn is required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("config: connection pool sizes cannot be negative")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// driver returns the database/sql driver name and the dialect of the
// configured driver.
func (d Database) driver() (name, dialectName string, err error) {
	switch strings.ToLower(d.Driver) {
	case "postgres", "postgresql":
		return "postgres", dialect.Postgres, nil
	case "pgx":
		return "pgx", dialect.Postgres, nil
	case "mysql":
		return "mysql", dialect.MySQL, nil
	case "sqlite", "sqlite3":
		return "sqlite", dialect.SQLite, nil
	case "":
		return "", "", errors.New("config: database driver is required")
	}
	return "", "", fmt.Errorf("config: unsupported database driver %q", d.Driver)
}

// Dialect returns the SQL dialect of the configured driver.
func (d Database) Dialect() (string, error) {
	_, name, err := d.driver()
	return name, err
}

// Open opens a driver for the database and applies the pool settings.
// The connection is not verified; ping the returned driver's DB for that.
func (d Database) Open() (*sql.Driver, error) {
	name, dialectName, err := d.driver()
	if err != nil {
		return nil, err
	}
	drv, err := sql.Open(dialectName, name, d.DSN)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", d.Driver, err)
	}
	db := drv.DB()
	if d.MaxOpenConns > 0 {
		db.SetMaxOpenConns(d.MaxOpenConns)
	}
	if d.MaxIdleConns > 0 {
		db.SetMaxIdleConns(d.MaxIdleConns)
	}
	if d.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(d.ConnMaxLifetime)
	}
	if d.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(d.ConnMaxIdleTime)
	}
	return drv, nil
}

// OpenLogged opens the database like Open and wraps the driver with
// statement logging on logger.
func (d Database) OpenLogged(logger *slog.Logger) (*sql.LogDriver, error) {
	drv, err := d.Open()
	if err != nil {
		return nil, err
	}
	threshold := d.SlowThreshold
	if threshold <= 0 {
		threshold = DefaultSlowThreshold
	}
	return sql.NewLogDriver(drv, sql.WithLogger(logger), sql.WithSlowThreshold(threshold)), nil
}

// SlogLevel parses the configured level.
func (l Log) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}

// Logger returns a text logger writing to w at the configured level.
func (l Log) Logger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
