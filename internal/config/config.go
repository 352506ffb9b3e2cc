package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	ServerURL      string `yaml:"server_url"`
	RequestTimeout string `yaml:"request_timeout"`
	TimelineDays   int    `yaml:"timeline_days,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}

// Timeout returns the per-request HTTP timeout, defaulting to 30s.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// TimelineWindow returns the analytics timeline window in days,
// clamped to the 1..365 range the service accepts.
func (c *Config) TimelineWindow() int {
	switch {
	case c.TimelineDays <= 0:
		return 30
	case c.TimelineDays > 365:
		return 365
	default:
		return c.TimelineDays
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdeck", "config.yaml")
}

func SessionPath() string {
	return filepath.Join(xdg.StateHome, "newsdeck", "session.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "newsdeck", "newsdeck.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			defaults, derr := loadDefaults()
			if derr != nil {
				return nil, derr
			}
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return applyEnv(defaults), nil
			}
			return applyEnv(defaults), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv lets NEWSDECK_SERVER override the configured server address.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("NEWSDECK_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	return cfg
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server_url scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}
