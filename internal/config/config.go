// Package config provides configuration structures and loading logic for alertdash.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure for the dashboard.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Redash RedashConfig `mapstructure:"redash"`
	Links  LinksConfig  `mapstructure:"links"`
}

// AppConfig defines application-level settings such as host and port.
type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// RedashConfig defines where the pre-computed alert query results are fetched from.
type RedashConfig struct {
	URL       string `mapstructure:"url"`
	Timeout   string `mapstructure:"timeout"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"-"`
}

// LinksConfig holds the base URLs of the external tools alerts link out to.
type LinksConfig struct {
	BugTracker    string `mapstructure:"bug_tracker"`
	ProbeExplorer string `mapstructure:"probe_explorer"`
	Revision      string `mapstructure:"revision"`
}

// GetTimeoutDuration parses the configured string timeout into a time.Duration.
func (c *RedashConfig) GetTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// Addr returns the listen address of the HTTP server
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel maps the configured log level onto a slog level.
func (c *AppConfig) SlogLevel() slog.Level {
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

// Default returns the configuration used when no file or environment overrides are present.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			LogLevel: "info",
		},
		Redash: RedashConfig{
			URL:       "https://sql.telemetry.mozilla.org/api/queries/108351/results.json",
			Timeout:   "30s",
			APIKeyEnv: "ALERTDASH_REDASH_API_KEY",
		},
		Links: LinksConfig{
			BugTracker:    "https://bugzilla.mozilla.org/show_bug.cgi",
			ProbeExplorer: "https://glam.telemetry.mozilla.org/fog/probe",
			Revision:      "https://treeherder.mozilla.org/jobs?repo=mozilla-central",
		},
	}
}

// Load loads configuration from config.yaml or environment variables.
// An empty path searches the default locations.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/alertdash")
	}

	// Allow environment variables to override config
	v.SetEnvPrefix("alertdash")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	def := Default()
	v.SetDefault("app.host", def.App.Host)
	v.SetDefault("app.port", def.App.Port)
	v.SetDefault("app.log_level", def.App.LogLevel)
	v.SetDefault("redash.url", def.Redash.URL)
	v.SetDefault("redash.timeout", def.Redash.Timeout)
	v.SetDefault("redash.api_key_env", def.Redash.APIKeyEnv)
	v.SetDefault("links.bug_tracker", def.Links.BugTracker)
	v.SetDefault("links.probe_explorer", def.Links.ProbeExplorer)
	v.SetDefault("links.revision", def.Links.Revision)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Redash.APIKeyEnv != "" {
		cfg.Redash.APIKey = os.Getenv(cfg.Redash.APIKeyEnv)
	}

	if cfg.Redash.URL == "" {
		return nil, fmt.Errorf("redash.url must be set")
	}

	return &cfg, nil
}
