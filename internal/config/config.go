package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the desktop client.
type Config struct {
	Service ServiceConfig `yaml:"service" toml:"service"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Window  WindowConfig  `yaml:"window" toml:"window"`

	// MonitorInterval is how often runtime and request stats are logged; 0 disables it.
	MonitorInterval time.Duration `yaml:"monitor_interval" toml:"monitor_interval"`
}

// ServiceConfig locates the external image service.
type ServiceConfig struct {
	BaseURL      string        `yaml:"base_url" toml:"base_url"`
	CompressPath string        `yaml:"compress_path" toml:"compress_path"`
	FilterPath   string        `yaml:"filter_path" toml:"filter_path"`
	Timeout      time.Duration `yaml:"timeout" toml:"timeout"`

	// StartHint is shown when the service cannot be reached.
	StartHint string `yaml:"start_hint" toml:"start_hint"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	JSON  bool   `yaml:"json" toml:"json"`
}

type WindowConfig struct {
	Width  float32 `yaml:"width" toml:"width"`
	Height float32 `yaml:"height" toml:"height"`
}

const (
	DefaultBaseURL   = "http://127.0.0.1:5000"
	DefaultStartHint = "Image service unreachable. Start it with: python app.py"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:      DefaultBaseURL,
			CompressPath: "/compress",
			FilterPath:   "/filter",
			Timeout:      60 * time.Second,
			StartHint:    DefaultStartHint,
		},
		Log: LogConfig{
			Level: "info",
		},
		Window: WindowConfig{
			Width:  1100,
			Height: 720,
		},
		MonitorInterval: 30 * time.Second,
	}
}

// Options controls where Load looks.
type Options struct {
	// Path to a .yaml, .yml or .toml file. Empty means try the default names.
	Path string

	// DotEnv loads a .env file from the working directory before reading
	// environment variables.
	DotEnv bool
}

var defaultFiles = []string{"imagelab.yaml", "imagelab.yml", "imagelab.toml"}

// Load builds the configuration: defaults, then file, then environment.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		for _, candidate := range defaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if opts.DotEnv {
		// A missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("IMAGELAB_SERVICE_URL"); v != "" {
		cfg.Service.BaseURL = v
	}
	if v := os.Getenv("IMAGELAB_START_HINT"); v != "" {
		cfg.Service.StartHint = v
	}
	if v := os.Getenv("IMAGELAB_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid IMAGELAB_TIMEOUT: %w", err)
		}
		cfg.Service.Timeout = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("IMAGELAB_JSON_LOGS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid IMAGELAB_JSON_LOGS: %w", err)
		}
		cfg.Log.JSON = b
	}
	return nil
}

// Validate checks the settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid service base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service base_url must be http or https, got %q", c.Service.BaseURL)
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service timeout must not be negative")
	}
	if !strings.HasPrefix(c.Service.CompressPath, "/") || !strings.HasPrefix(c.Service.FilterPath, "/") {
		return fmt.Errorf("service paths must start with /")
	}
	return nil
}

// String returns a one-line summary for logs.
func (c *Config) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("BaseURL: %s", c.Service.BaseURL))
	parts = append(parts, fmt.Sprintf("Timeout: %s", c.Service.Timeout))
	parts = append(parts, fmt.Sprintf("LogLevel: %s", c.Log.Level))
	return strings.Join(parts, ", ")
}
