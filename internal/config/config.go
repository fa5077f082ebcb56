// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jonathan/github-resume/internal/cache"
	"github.com/jonathan/github-resume/internal/rendering"
)

// Environment variables read by FromEnv.
const (
	EnvCacheDSN    = "RESUME_CACHE_DSN"
	EnvGithubToken = "GITHUB_TOKEN"
	EnvChromePath  = "CHROME_PATH"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Sharing
	ShareOrigin string `json:"share_origin,omitempty"` // Origin of the hosted builder that opens links

	// Cache
	CacheBackend string `json:"cache_backend,omitempty"` // memory, sqlite, valkey or postgres
	CacheDSN     string `json:"cache_dsn,omitempty"`     // File path or connection URL

	// GitHub
	GithubToken  string `json:"github_token,omitempty"`   // Optional token for higher rate limits
	GithubAPIURL string `json:"github_api_url,omitempty"` // Overrides https://api.github.com

	// Output
	ChromePath string `json:"chrome_path,omitempty"` // Chrome binary used for PDF export
	Template   string `json:"template,omitempty"`    // Path to a custom HTML template
	Theme      string `json:"theme,omitempty"`       // light or dark

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config holding the values set in the environment.
func FromEnv() Config {
	return Config{
		CacheDSN:    os.Getenv(EnvCacheDSN),
		GithubToken: os.Getenv(EnvGithubToken),
		ChromePath:  os.Getenv(EnvChromePath),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ShareOrigin != "" {
		u, err := url.Parse(c.ShareOrigin)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config error: 'share_origin' must be an http(s) URL: %s", c.ShareOrigin)
		}
		if u.RawQuery != "" {
			return fmt.Errorf("config error: 'share_origin' must not carry a query")
		}
	}

	switch c.CacheBackend {
	case "", cache.BackendMemory, cache.BackendSQLite:
	case cache.BackendValkey, cache.BackendPostgres:
		if c.CacheDSN == "" {
			return fmt.Errorf("config error: 'cache_dsn' is required for the %s backend", c.CacheBackend)
		}
	default:
		return fmt.Errorf("config error: unknown 'cache_backend': %s", c.CacheBackend)
	}

	switch c.Theme {
	case "", rendering.ThemeLight, rendering.ThemeDark:
	default:
		return fmt.Errorf("config error: unknown 'theme': %s", c.Theme)
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ShareOrigin == "" {
		result.ShareOrigin = defaults.ShareOrigin
	}
	if result.CacheBackend == "" {
		result.CacheBackend = defaults.CacheBackend
	}
	if result.CacheDSN == "" {
		result.CacheDSN = defaults.CacheDSN
	}
	if result.GithubToken == "" {
		result.GithubToken = defaults.GithubToken
	}
	if result.GithubAPIURL == "" {
		result.GithubAPIURL = defaults.GithubAPIURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Theme == "" {
		result.Theme = defaults.Theme
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
