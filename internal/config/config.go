package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	envPrefix   = "NAVTREE_"
	defaultPath = "navtree.yml"
)

type Config struct {
	Port string `yaml:"port" koanf:"port"`

	// Auth; empty disables it.
	APIKey string `yaml:"api_key" koanf:"api_key"`

	// Annotation cache
	CacheSize   int           `yaml:"cache_size" koanf:"cache_size"`
	StatsWindow time.Duration `yaml:"stats_window" koanf:"stats_window"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes" koanf:"max_upload_bytes"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext" koanf:"pdf_fallback_pdftotext"`

	// Site builds
	BuildWorkers int `yaml:"build_workers" koanf:"build_workers"`

	LogLevel string `yaml:"log_level" koanf:"log_level"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Port:                 "8090",
		CacheSize:            256,
		StatsWindow:          time.Hour,
		MaxUploadBytes:       10485760, // 10MB
		PDFFallbackPdftotext: true,
		BuildWorkers:         4,
		LogLevel:             "info",
	}
}

// Path returns the config file named by NAVTREE_CONFIG, or navtree.yml.
func Path() string {
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p
	}
	return defaultPath
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NAVTREE_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// NAVTREE_CACHE_SIZE -> cache_size, etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.BuildWorkers < 1 {
		return fmt.Errorf("build_workers must be at least 1")
	}
	if c.StatsWindow < 0 {
		return fmt.Errorf("stats_window must be non-negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return lvl, nil
}
