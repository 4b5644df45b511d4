package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Environment overrides applied after the file is read.
const (
	EnvAdminIPWhitelist  = "ADMIN_IP_WHITELIST"
	EnvAgencyEmployeeFEP = "AGENCY_EMPLOYEE_FEP"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Access     AccessConfig     `yaml:"access"`
	Agency     AgencyConfig     `yaml:"agency"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size      int `yaml:"size"`
	QueueSize int `yaml:"queue_size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// Enabled reports whether both VAPID keys are set.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port               int     `yaml:"port"`
	RateLimitPerSec    float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds    int     `yaml:"cache_ttl_seconds"`
	ShutdownTimeoutSec int     `yaml:"shutdown_timeout_seconds"`
}

// CacheTTL is how long public listing responses are cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLSeconds) * time.Second
}

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSec) * time.Second
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// AccessConfig restricts the admin area to known client addresses.
type AccessConfig struct {
	AdminIPWhitelist []string `yaml:"admin_ip_whitelist"`
	AdminPathPrefix  string   `yaml:"admin_path_prefix"`
}

// AgencyConfig holds settings for agency accounts. EmployeeFEP is the
// domain of synthetic employee addresses that are never shown.
type AgencyConfig struct {
	EmployeeFEP string `yaml:"employee_fep"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when a key is absent.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			RateLimitPerSec:    10,
			RateLimitBurst:     5,
			CacheTTLSeconds:    300,
			ShutdownTimeoutSec: 5,
		},
		Database: DatabaseConfig{
			Driver:                 DriverPostgres,
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
			LogLevel:               "warn",
		},
		Access: AccessConfig{
			AdminIPWhitelist: []string{"127.0.0.1"},
			AdminPathPrefix:  "/admin",
		},
		Agency:     AgencyConfig{EmployeeFEP: "example.com"},
		Push:       PushConfig{TTL: 3600},
		WorkerPool: WorkerPoolConfig{Size: 1, QueueSize: 64},
		Logging:    LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads the configuration from the given path, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAdminIPWhitelist); ok {
		c.Access.AdminIPWhitelist = SplitList(v)
	}
	if v, ok := lookup(EnvAgencyEmployeeFEP); ok && strings.TrimSpace(v) != "" {
		c.Agency.EmployeeFEP = strings.TrimSpace(v)
	}
}

func (c *Config) normalize() {
	d := Default()
	if c.Server.Port <= 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.RateLimitPerSec <= 0 {
		c.Server.RateLimitPerSec = d.Server.RateLimitPerSec
	}
	if c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = d.Server.RateLimitBurst
	}
	if c.Server.CacheTTLSeconds <= 0 {
		c.Server.CacheTTLSeconds = d.Server.CacheTTLSeconds
	}
	if c.Server.ShutdownTimeoutSec <= 0 {
		c.Server.ShutdownTimeoutSec = d.Server.ShutdownTimeoutSec
	}
	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}
	if c.Access.AdminPathPrefix == "" {
		c.Access.AdminPathPrefix = d.Access.AdminPathPrefix
	}
	c.Access.AdminIPWhitelist = SplitList(strings.Join(c.Access.AdminIPWhitelist, ","))
	if c.Push.TTL <= 0 {
		c.Push.TTL = d.Push.TTL
	}
	if c.WorkerPool.Size <= 0 {
		c.WorkerPool.Size = d.WorkerPool.Size
	}
	if c.WorkerPool.QueueSize <= 0 {
		c.WorkerPool.QueueSize = d.WorkerPool.QueueSize
	}
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return errors.Newf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if !strings.HasPrefix(c.Access.AdminPathPrefix, "/") {
		return errors.Newf("access.admin_path_prefix must start with '/', got %q", c.Access.AdminPathPrefix)
	}
	if c.Agency.EmployeeFEP == "" || strings.Contains(c.Agency.EmployeeFEP, "@") {
		return errors.Newf("agency.employee_fep must be a bare domain, got %q", c.Agency.EmployeeFEP)
	}
	return nil
}

// SplitList splits a comma separated list, trimming whitespace and dropping
// empty entries.
func SplitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
