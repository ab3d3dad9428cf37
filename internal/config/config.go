// Package config loads server settings from a TOML file.
// Command-line flags and SCREAMS_* environment variables are applied on top by cmd/server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Store backends
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// Config is the top-level server configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Store     StoreConfig     `toml:"store"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port        string   `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Backend       string `toml:"backend"`
	PostgresURL   string `toml:"postgres_url"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// AuthConfig holds the HS256 secret used to verify caller tokens
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// RateLimitConfig allows Requests per Window for each client IP
type RateLimitConfig struct {
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file or flag overrides a value
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Backend:       BackendMemory,
			MongoDatabase: "screams",
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path over the defaults
// An empty path returns the defaults unchanged
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	return cfg, nil
}

// Validate checks that the selected backend has what it needs
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Store.PostgresURL == "" {
			errs = append(errs, errors.New("store.postgres_url is required for the postgres backend"))
		}
	case BackendMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("store.mongo_uri is required for the mongo backend"))
		}
		if c.Store.MongoDatabase == "" {
			errs = append(errs, errors.New("store.mongo_database is required for the mongo backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("store.backend must be one of %s, %s, %s (got %q)",
			BackendPostgres, BackendMongo, BackendMemory, c.Store.Backend))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}

	if c.RateLimit.Requests <= 0 {
		errs = append(errs, errors.New("rate_limit.requests must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.window must be positive"))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format))
	}

	return errors.Join(errs...)
}
