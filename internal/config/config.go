package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// DefaultSQLitePath is the database file used when no DATABASE_URL is set.
const DefaultSQLitePath = "izposoja.sqlite3"

// Config holds the server settings read from the environment.
type Config struct {
	Host         string
	Port         string
	Store        string
	DatabaseURL  string
	Seed         bool
	CORSOrigins  []string
	RateLimit    float64
	RateBurst    int
	LogFile      string
	LogLevel     slog.Level
	OTLPEndpoint string
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	return LoadFile(".env", os.Getenv)
}

// LoadFile loads the dotenv file at path into the process environment and
// builds a Config with getenv. A missing file is not an error.
func LoadFile(path string, getenv func(string) string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return FromEnv(getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Host:         get("HOST", ""),
		Port:         get("PORT", "5000"),
		Store:        get("STORE", StoreMemory),
		DatabaseURL:  get("DATABASE_URL", ""),
		LogFile:      get("LOG_FILE", ""),
		OTLPEndpoint: get("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return nil, fmt.Errorf("config: PORT %q is not a valid port", cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed, err := strconv.ParseBool(get("SEED", "true"))
	if err != nil {
		return nil, fmt.Errorf("config: SEED: %w", err)
	}
	cfg.Seed = seed

	for _, o := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	cfg.RateLimit, err = strconv.ParseFloat(get("RATE_LIMIT", "5"), 64)
	if err != nil || cfg.RateLimit < 0 {
		return nil, fmt.Errorf("config: RATE_LIMIT must be a non-negative number")
	}
	cfg.RateBurst, err = strconv.Atoi(get("RATE_BURST", "10"))
	if err != nil || cfg.RateBurst < 1 {
		return nil, fmt.Errorf("config: RATE_BURST must be a positive integer")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Validate checks the store selection and fills in the default SQLite path.
// Call it again after overriding Store or DatabaseURL.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.DatabaseURL == "" {
			c.DatabaseURL = DefaultSQLitePath
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("config: STORE %q must be one of memory, sqlite, postgres", c.Store)
	}
	return nil
}
