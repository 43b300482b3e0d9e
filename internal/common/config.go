package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Tandem.
type Config struct {
	Environment string        `toml:"environment"`
	Owners      []string      `toml:"owners"` // the tracked co-investors, e.g. ["alex", "sam"]
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
	Auth        AuthConfig    `toml:"auth"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration.
type StorageConfig struct {
	Address   string `toml:"address"` // e.g. "ws://localhost:8000/rpc"
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
}

// ClientsConfig holds API client configurations.
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration for the advisory service.
type GeminiConfig struct {
	APIKey    string  `toml:"api_key"`
	Model     string  `toml:"model"`
	RateLimit float64 `toml:"rate_limit"` // requests per second
	Timeout   string  `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration.
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AuthConfig holds JWT session configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" (default) or "json"
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000/rpc",
			Username:  "root",
			Password:  "root",
			Namespace: "tandem",
			Database:  "tandem",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-2.5-flash",
				RateLimit: 0.5,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Auth: AuthConfig{
			TokenExpiry: "24h",
		},
	}
}

// LoadConfig loads configuration from a TOML file, applying defaults for
// missing values and environment variable overrides on top.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Missing file is fine; defaults plus env overrides apply.
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if len(config.Owners) == 0 {
		return nil, fmt.Errorf("config: at least one owner must be configured")
	}

	return config, nil
}

// applyEnvOverrides applies TANDEM_* environment variables over file values.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TANDEM_ENVIRONMENT"); env != "" {
		config.Environment = env
	}
	if host := os.Getenv("TANDEM_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("TANDEM_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("TANDEM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if addr := os.Getenv("TANDEM_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if user := os.Getenv("TANDEM_STORAGE_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("TANDEM_STORAGE_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}
	if ns := os.Getenv("TANDEM_STORAGE_NAMESPACE"); ns != "" {
		config.Storage.Namespace = ns
	}
	if db := os.Getenv("TANDEM_STORAGE_DATABASE"); db != "" {
		config.Storage.Database = db
	}
	if owners := os.Getenv("TANDEM_OWNERS"); owners != "" {
		var parsed []string
		for _, o := range strings.Split(owners, ",") {
			if o = strings.TrimSpace(o); o != "" {
				parsed = append(parsed, o)
			}
		}
		if len(parsed) > 0 {
			config.Owners = parsed
		}
	}
	if v := os.Getenv("TANDEM_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("TANDEM_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
	for _, name := range []string{"GEMINI_API_KEY", "TANDEM_GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.Gemini.APIKey = v
			break
		}
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// HasOwner reports whether name is one of the configured owners.
func (c *Config) HasOwner(name string) bool {
	for _, o := range c.Owners {
		if o == name {
			return true
		}
	}
	return false
}
