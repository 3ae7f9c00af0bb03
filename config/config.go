package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"tavrika-widget/internal/hours"
	"tavrika-widget/internal/layout"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Hours      HoursConfig      `yaml:"hours"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Host       HostConfig       `yaml:"host"`
	Session    SessionConfig    `yaml:"session"`
	Layout     LayoutConfig     `yaml:"layout"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowOrigins    []string `yaml:"allow_origins"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// HoursConfig holds the business hours policy.
type HoursConfig struct {
	Preset           string         `yaml:"preset"`
	Weekday          *hours.Window  `yaml:"weekday"`
	Weekend          *hours.Window  `yaml:"weekend"`
	Timezone         string         `yaml:"timezone"`
	Location         *time.Location `yaml:"-"`
	EnforceHours     *bool          `yaml:"enforce_hours"`
	EnforceFirstSlot bool           `yaml:"enforce_first_slot"`
}

// GatewayConfig describes the occupied-table endpoint of the reservation backend.
type GatewayConfig struct {
	Endpoint       string            `yaml:"endpoint"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"`
	HTTPProxy      string            `yaml:"http_proxy"`
	Headers        map[string]string `yaml:"headers"`
}

// Host bridge kinds.
const (
	HostNone    = "none"
	HostWebhook = "webhook"
	HostNATS    = "nats"
)

// HostConfig selects how finished reservations reach the host platform.
type HostConfig struct {
	Kind             string            `yaml:"kind"`
	URL              string            `yaml:"url"`
	Subject          string            `yaml:"subject"`
	Headers          map[string]string `yaml:"headers"`
	TimeoutSeconds   int               `yaml:"timeout_seconds"`
	Timeout          time.Duration     `yaml:"-"`
	CloseDelayMillis int               `yaml:"close_delay_ms"`
	CloseDelay       time.Duration     `yaml:"-"`
}

// SessionConfig holds the lifetime of idle booking sessions.
type SessionConfig struct {
	TTLMinutes int           `yaml:"ttl_minutes"`
	TTL        time.Duration `yaml:"-"`
}

// LayoutConfig holds floor plan rendering overrides.
type LayoutConfig struct {
	Corrections layout.Corrections `yaml:"corrections"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "postgres" or "sqlite"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// PushConfig holds the VAPID keys for staff web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// Enabled reports whether both VAPID keys are present.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, for
// standalone runs and tests.
func Default() *Config {
	var cfg Config
	if err := cfg.applyDefaults(); err != nil {
		panic(err)
	}
	return &cfg
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	if len(cfg.Server.AllowOrigins) == 0 {
		cfg.Server.AllowOrigins = []string{"*"}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if err := cfg.Hours.resolve(); err != nil {
		return err
	}

	if cfg.Gateway.Endpoint == "" {
		cfg.Gateway.Endpoint = "http://localhost:8103/api/reservations/table"
	}
	if cfg.Gateway.TimeoutSeconds <= 0 {
		cfg.Gateway.TimeoutSeconds = 10
	}
	cfg.Gateway.Timeout = time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second

	switch cfg.Host.Kind {
	case "":
		cfg.Host.Kind = HostNone
	case HostNone:
	case HostWebhook:
		if cfg.Host.URL == "" {
			return fmt.Errorf("host.url is required for the %s bridge", HostWebhook)
		}
	case HostNATS:
		if cfg.Host.URL == "" {
			cfg.Host.URL = "nats://localhost:4222"
		}
		if cfg.Host.Subject == "" {
			cfg.Host.Subject = "reservations.create"
		}
	default:
		return fmt.Errorf("unknown host.kind %q", cfg.Host.Kind)
	}
	if cfg.Host.TimeoutSeconds <= 0 {
		cfg.Host.TimeoutSeconds = 10
	}
	cfg.Host.Timeout = time.Duration(cfg.Host.TimeoutSeconds) * time.Second
	if cfg.Host.CloseDelayMillis <= 0 {
		cfg.Host.CloseDelayMillis = 2500
	}
	cfg.Host.CloseDelay = time.Duration(cfg.Host.CloseDelayMillis) * time.Millisecond

	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 30
	}
	cfg.Session.TTL = time.Duration(cfg.Session.TTLMinutes) * time.Minute

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "file:widget.db?cache=shared"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}
	return nil
}

func (h *HoursConfig) resolve() error {
	weekday, weekend, err := hours.Preset(h.Preset)
	if err != nil {
		return err
	}
	if h.Preset == "" {
		h.Preset = hours.PresetSplit
	}
	if h.Weekday == nil {
		h.Weekday = &weekday
	}
	if h.Weekend == nil {
		h.Weekend = &weekend
	}
	if err := h.Weekday.Validate(); err != nil {
		return fmt.Errorf("hours.weekday: %w", err)
	}
	if err := h.Weekend.Validate(); err != nil {
		return fmt.Errorf("hours.weekend: %w", err)
	}

	if h.Timezone == "" {
		h.Location = time.Local
	} else {
		loc, err := time.LoadLocation(h.Timezone)
		if err != nil {
			return fmt.Errorf("failed to load timezone %q: %w", h.Timezone, err)
		}
		h.Location = loc
	}

	if h.EnforceHours == nil {
		enforce := true
		h.EnforceHours = &enforce
	}
	return nil
}

// Policy builds the business hours policy described by the config.
func (h HoursConfig) Policy(clock hours.Clock) *hours.Policy {
	return &hours.Policy{
		Weekday:          *h.Weekday,
		Weekend:          *h.Weekend,
		Location:         h.Location,
		Clock:            clock,
		EnforceHours:     *h.EnforceHours,
		EnforceFirstSlot: h.EnforceFirstSlot,
	}
}
