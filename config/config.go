// Package config loads runtime settings for the acadjobs terminal client.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML file
// (with ${VAR} expansion), then ACADJOBS_* environment variables. A .env file
// in the working directory is loaded into the environment first if present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL      = "http://localhost:8001"
	DefaultPageSize    = 10
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogLevel    = "info"
)

type Config struct {
	API struct {
		BaseURL  string        `yaml:"base_url"`
		PageSize int           `yaml:"page_size"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	var cfg Config
	cfg.API.BaseURL = DefaultAPIURL
	cfg.API.PageSize = DefaultPageSize
	cfg.API.Timeout = DefaultHTTPTimeout
	cfg.Log.Level = DefaultLogLevel
	cfg.Log.File = filepath.Join(os.TempDir(), "acadjobs.log")
	return cfg
}

// Load builds the configuration. path may be empty; when it is, ACADJOBS_CONFIG
// is consulted. A missing .env file is not an error; a missing explicit config
// file is.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("ACADJOBS_CONFIG"))
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the merged configuration and fills zero values with defaults.
func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url %q: missing host", c.API.BaseURL)
	}

	if c.API.PageSize <= 0 {
		c.API.PageSize = DefaultPageSize
	}
	if c.API.PageSize > 100 {
		return fmt.Errorf("api.page_size must be at most 100, got %d", c.API.PageSize)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = DefaultLogLevel
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	content := expandEnvVars(string(b))
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ACADJOBS_API_URL")); v != "" {
		cfg.API.BaseURL = v
	}
	cfg.API.PageSize = EnvInt("ACADJOBS_PAGE_SIZE", cfg.API.PageSize)
	cfg.API.Timeout = EnvDuration("ACADJOBS_HTTP_TIMEOUT", cfg.API.Timeout)
	if v := strings.TrimSpace(os.Getenv("ACADJOBS_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("ACADJOBS_LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
}

var envVarRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value. Unset variables
// are left as written.
func expandEnvVars(content string) string {
	return envVarRe.ReplaceAllStringFunc(content, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}
