// Package config provides dynamic configuration management for Maderas.
// It uses Viper to load settings from files, environment variables, and CLI flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Gateway step names accepted in contact_gateways.
const (
	GatewayDelay    = "delay"
	GatewayDatabase = "database"
	GatewayWebhook  = "webhook"
	GatewayNotify   = "notify"
)

// Config holds all runtime configuration for Maderas.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	ServerPort int    `mapstructure:"server_port"`
	DBPath     string `mapstructure:"db_path"`
	DBDriver   string `mapstructure:"db_driver"` // "sqlite" or "mysql"
	DBDSN      string `mapstructure:"db_dsn"`    // used when db_driver = mysql

	// ── Security ──────────────────────────────────────────────────────────────
	// JWTSecret: HS256 signing key for admin API tokens.
	JWTSecret string `mapstructure:"jwt_secret"`
	// AdminUser / AdminPass: single back-office account for /api/login.
	// AdminPass may be plain text or a bcrypt hash ("$2a$..."); plain text is
	// hashed once at startup.
	AdminUser string `mapstructure:"admin_user"`
	AdminPass string `mapstructure:"admin_pass"`
	// SessionSecret signs the visitor cookie.
	SessionSecret     string `mapstructure:"session_secret"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes"`
	SecureCookies     bool   `mapstructure:"secure_cookies"`
	// MaxVisitors caps pages kept in memory; 0 disables the cap.
	MaxVisitors       int    `mapstructure:"max_visitors"`

	// ── Contact form ─────────────────────────────────────────────────────────
	// ContactGateways is the ordered list of submission steps.
	ContactGateways         []string `mapstructure:"contact_gateways"`
	ContactSubmitDelayMS    int      `mapstructure:"contact_submit_delay_ms"`
	ContactSuccessDisplayMS int      `mapstructure:"contact_success_display_ms"`

	WebhookURL            string   `mapstructure:"webhook_url"`
	WebhookToken          string   `mapstructure:"webhook_token"`
	WebhookTimeoutSeconds int      `mapstructure:"webhook_timeout_seconds"`
	NotifyURLs            []string `mapstructure:"notify_urls"`

	// ── Logging ──────────────────────────────────────────────────────────────
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // text | json
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SubmitDelay is the latency of the delay gateway step.
func (c *Config) SubmitDelay() time.Duration {
	return time.Duration(c.ContactSubmitDelayMS) * time.Millisecond
}

// SuccessDisplay is how long the success banner stays up.
func (c *Config) SuccessDisplay() time.Duration {
	return time.Duration(c.ContactSuccessDisplayMS) * time.Millisecond
}

// SessionTTL is how long an idle visitor keeps their page state.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// WebhookTimeout bounds a single webhook POST.
func (c *Config) WebhookTimeout() time.Duration {
	return time.Duration(c.WebhookTimeoutSeconds) * time.Second
}

// Load reads config from file (./config.yaml or ~/.maderas/config.yaml)
// and falls back to smart defaults. Environment variables with prefix MADERAS_
// override file values.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// --- Config file ---
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.maderas")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile reads a specific YAML file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8080)
	v.SetDefault("db_path", "maderas.db")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "")

	// Security defaults: MUST be overridden in production via config.yaml or env vars.
	v.SetDefault("jwt_secret", "Md9$kR2!pQ7#vW4^tL8&zX1*bN6")
	v.SetDefault("admin_user", "admin")
	v.SetDefault("admin_pass", "admin")
	v.SetDefault("session_secret", "maderas-session-secret-change-me")
	v.SetDefault("session_ttl_minutes", 30)
	v.SetDefault("secure_cookies", false)
	v.SetDefault("max_visitors", 10000)

	v.SetDefault("contact_gateways", []string{GatewayDelay, GatewayDatabase})
	v.SetDefault("contact_submit_delay_ms", 2000)
	v.SetDefault("contact_success_display_ms", 3000)

	v.SetDefault("webhook_url", "")
	v.SetDefault("webhook_token", "")
	v.SetDefault("webhook_timeout_seconds", 10)
	v.SetDefault("notify_urls", []string{})

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

func decode(v *viper.Viper) (*Config, error) {
	// --- Environment Variables ---
	v.SetEnvPrefix("MADERAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server_port %d out of range", c.ServerPort)
	}
	if c.MaxVisitors < 0 {
		return fmt.Errorf("max_visitors must not be negative")
	}
	if c.ContactSubmitDelayMS < 0 || c.ContactSuccessDisplayMS < 0 {
		return fmt.Errorf("contact delays must not be negative")
	}
	for _, name := range c.ContactGateways {
		switch name {
		case GatewayDelay, GatewayDatabase, GatewayNotify:
		case GatewayWebhook:
			if c.WebhookURL == "" {
				return fmt.Errorf("contact gateway %q needs webhook_url", name)
			}
		default:
			return fmt.Errorf("unknown contact gateway %q", name)
		}
	}
	return nil
}
