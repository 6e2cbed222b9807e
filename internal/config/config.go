// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthModeToken  = "token"
	AuthModeAPIKey = "apikey"
)

type Config struct {
	Auth struct {
		Mode   string `json:"mode"`
		APIKey string `json:"api_key"`
	} `json:"auth"`
	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Admin struct {
		Username     string `json:"username"`
		Password     string `json:"password"`
		PasswordHash string `json:"password_hash"`
		Disabled     bool   `json:"disabled"`
	} `json:"admin"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	} `json:"server"`
	CORS struct {
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"cors"`
	Sendgrid struct {
		APIKey   string `json:"api_key"`
		From     string `json:"from"`
		FromName string `json:"from_name"`
	} `json:"sendgrid"`
	Log struct {
		Level slog.Level `json:"level"`
	} `json:"log"`
}

// Load reads configuration from the environment. Values in a local .env file
// are applied first without overriding variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// Auth configuration
	cfg.Auth.Mode = strings.ToLower(getEnv("AUTH_MODE", AuthModeToken))
	cfg.Auth.APIKey = getEnv("API_KEY", "")

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	cfg.JWT.ExpiryPeriod = getDuration("JWT_EXPIRY", 60*time.Minute)

	// Token principal
	cfg.Admin.Username = getEnv("ADMIN_USERNAME", "admin")
	cfg.Admin.Password = getEnv("ADMIN_PASSWORD", "admin123")
	cfg.Admin.PasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")
	cfg.Admin.Disabled = getEnv("ADMIN_DISABLED", "false") == "true"

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8000")
	cfg.Server.ReadTimeout = getDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	cfg.Server.WriteTimeout = getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)

	cfg.CORS.AllowedOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	// Sendgrid configuration
	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", "")
	cfg.Sendgrid.FromName = getEnv("SENDGRID_FROM_NAME", "Branch Directory")

	if err := cfg.Log.Level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		cfg.Log.Level = slog.LevelInfo
	}

	return cfg
}

// Validate checks that the selected auth mode has what it needs.
func (c *Config) Validate() error {
	var errs []error

	switch c.Auth.Mode {
	case AuthModeToken:
		if c.JWT.Secret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required in token mode"))
		}
		if c.JWT.ExpiryPeriod <= 0 {
			errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
		}
		if c.Admin.Username == "" {
			errs = append(errs, errors.New("ADMIN_USERNAME is required in token mode"))
		}
		if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
			errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required in token mode"))
		}
	case AuthModeAPIKey:
		if c.Auth.APIKey == "" {
			errs = append(errs, errors.New("API_KEY is required in apikey mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode))
	}

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("ignoring invalid duration", "key", key, "value", value, "error", err)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
