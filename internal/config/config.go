// Package config loads viewer settings from defaults, an optional YAML file,
// the environment (including a .env file) and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is looked up in the working directory when no path is given.
	DefaultConfigFile = "holocron.yaml"
	// DefaultLogFile receives logs while the TUI owns the terminal.
	DefaultLogFile = "holocron.log"
)

// Environment variables that override file values
const (
	EnvBaseURL    = "HOLOCRON_BASE_URL"
	EnvLogFile    = "HOLOCRON_LOG_FILE"
	EnvLogLevel   = "HOLOCRON_LOG_LEVEL"
	EnvTimeout    = "HOLOCRON_TIMEOUT"
	EnvEnrichJobs = "HOLOCRON_ENRICH_CONCURRENCY"
	EnvExportDir  = "HOLOCRON_EXPORT_DIR"
)

// Config holds the viewer settings
type Config struct {
	BaseURL           string        `yaml:"base_url,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	EnrichConcurrency int           `yaml:"enrich_concurrency,omitempty"`
	LogFile           string        `yaml:"log_file,omitempty"`
	LogLevel          string        `yaml:"log_level,omitempty"`
	StartPage         int           `yaml:"start_page,omitempty"`
	ExportDir         string        `yaml:"export_dir,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		BaseURL:           "https://swapi.dev/api",
		Timeout:           30 * time.Second,
		EnrichConcurrency: 4,
		LogFile:           DefaultLogFile,
		LogLevel:          "info",
		StartPage:         1,
		ExportDir:         ".",
	}
}

// Load builds a Config from defaults, the YAML file at path and the environment.
// A missing file is not an error when path is the default file name or empty.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != "" && path != DefaultConfigFile
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		c.ExportDir = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvEnrichJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvEnrichJobs, err)
		}
		c.EnrichConcurrency = n
	}
	return nil
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("enrich_concurrency must be >= 1 (got %d)", c.EnrichConcurrency)
	}
	if c.StartPage < 1 {
		return fmt.Errorf("start_page must be >= 1 (got %d)", c.StartPage)
	}
	if info, err := os.Stat(c.ExportDir); err != nil || !info.IsDir() {
		return fmt.Errorf("export_dir %q is not a directory", c.ExportDir)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
