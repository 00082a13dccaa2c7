package infra

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Target backend
	BaseURL        string        `env:"SMOKE_BASE_URL" envDefault:"http://localhost:8080"`
	APIPrefix      string        `env:"SMOKE_API_PREFIX" envDefault:"/api"`
	RequestTimeout time.Duration `env:"SMOKE_REQUEST_TIMEOUT" envDefault:"30s"`

	// Credentials
	AdminEmail    string `env:"SMOKE_ADMIN_EMAIL" envDefault:"admin@shiiirubet.com"`
	AdminPassword string `env:"SMOKE_ADMIN_PASSWORD" envDefault:"ShiiiruAdmin2025"`
	UserPassword  string `env:"SMOKE_USER_PASSWORD" envDefault:"TestPassword123"`

	// Expectations
	StartingBalance float64 `env:"SMOKE_STARTING_BALANCE" envDefault:"150"`
	FixturesFile    string  `env:"SMOKE_FIXTURES_FILE"`
	ContractChecks  bool    `env:"SMOKE_CONTRACT_CHECKS" envDefault:"false"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Report sinks
	ReportDatabaseURL string `env:"REPORT_DATABASE_URL"`
	KafkaBrokers      string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled      bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaTopic        string `env:"KAFKA_TOPIC" envDefault:"betsmoke.runs"`
	PushgatewayURL    string `env:"PUSHGATEWAY_URL"`
	PushgatewayJob    string `env:"PUSHGATEWAY_JOB" envDefault:"betsmoke"`

	// Reference backend
	StubPort       int           `env:"STUB_PORT" envDefault:"8080"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTUserExpiry  time.Duration `env:"JWT_USER_EXPIRY" envDefault:"24h"`
	JWTAdminExpiry time.Duration `env:"JWT_ADMIN_EXPIRY" envDefault:"8h"`
	AuthRateLimit  int           `env:"STUB_AUTH_RATE_LIMIT" envDefault:"120"` // per client IP per minute, 0 disables
	StubMetrics    bool          `env:"STUB_METRICS" envDefault:"true"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not serve real traffic.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	return nil
}

// APIURL returns the base URL joined with the API prefix, without a trailing slash.
func (c *Config) APIURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.Trim(c.APIPrefix, "/")
}

// SlogLevel maps LOG_LEVEL to a slog.Level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
