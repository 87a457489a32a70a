package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
}

// ServerConfig holds the HTTP server related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// UpstreamConfig describes the property-management API the reports are built from.
type UpstreamConfig struct {
	BaseURL        string            `yaml:"base_url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"` // Ignored by YAML parser
	FetchWorkers   int               `yaml:"fetch_workers"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig sizes the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// ScheduleConfig drives the periodic pending-dues check.
type ScheduleConfig struct {
	Enabled  bool     `yaml:"enabled"`
	CronExpr string   `yaml:"cron_expr"`
	OwnerIDs []string `yaml:"owner_ids"`
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

	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 15
	}
	cfg.Upstream.Timeout = time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second

	// One worker preserves the strictly sequential per-floor fetch the upstream
	// backend was sized for; operators raise it explicitly.
	if cfg.Upstream.FetchWorkers <= 0 {
		cfg.Upstream.FetchWorkers = 1
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

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}

	if cfg.Schedule.CronExpr == "" {
		cfg.Schedule.CronExpr = "0 8 * * *"
	}

	return &cfg, nil
}
