// internal/config/config.go
//
// This package handles configuration and the .storefront directory structure.
// Every user running the storefront client gets a .storefront/ folder created
// in their home directory (or another base directory in tests).

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// StorefrontDir is the name of the directory we create for each user
	StorefrontDir = ".storefront"

	defaultBaseURL = "http://localhost:8000"
)

const defaultAppConfigYAML = `# storefront client configuration
version: 1

api:
  # Base URL of the storefront backend. The client appends /api/... paths.
  base_url: http://localhost:8000

  # HTTP timeout in seconds for catalog, order and auth requests.
  # 0 leaves the transport default in place (no client-imposed deadline).
  http_timeout: 0
`

// APIConfig captures how the client reaches the storefront backend.
type APIConfig struct {
	BaseURL     string `yaml:"base_url"`
	HTTPTimeout int    `yaml:"http_timeout"`
}

// AppConfig models .storefront/config.yaml.
type AppConfig struct {
	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
}

// Config holds the runtime configuration for the storefront client.
type Config struct {
	// BaseDir is the directory that contains the .storefront folder,
	// normally the user's home directory.
	BaseDir string

	// AppDir is BaseDir/.storefront
	AppDir string

	App AppConfig
}

// InitAppDir creates the .storefront directory structure under baseDir.
// This is called before the TUI starts up.
//
// Structure created:
// .storefront/
// ├── logs/   <- Diagnostic trace of network calls and failures
// └── state/  <- Persisted bearer token
func InitAppDir(baseDir string) error {
	appDir := filepath.Join(baseDir, StorefrontDir)

	dirs := []string{
		filepath.Join(appDir, "logs"),
		filepath.Join(appDir, "state"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return ensureAppConfig(filepath.Join(appDir, "config.yaml"))
}

// New creates a Config populated from baseDir/.storefront/config.yaml,
// falling back to defaults when the file is absent.
func New(baseDir string) (*Config, error) {
	cfg := &Config{
		BaseDir: baseDir,
		AppDir:  filepath.Join(baseDir, StorefrontDir),
		App:     defaultAppConfig(),
	}
	if err := cfg.loadAppConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.AppDir, "logs")
}

// StateDir returns the path to the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.AppDir, "state")
}

// TokenPath returns the file that persists the bearer token between runs.
func (c *Config) TokenPath() string {
	return filepath.Join(c.StateDir(), "token")
}

// AppConfigPath returns the on-disk location for the config file.
func (c *Config) AppConfigPath() string {
	return filepath.Join(c.AppDir, "config.yaml")
}

// BaseURL returns the backend base URL.
func (c *Config) BaseURL() string {
	return c.App.API.BaseURL
}

// HTTPTimeoutSeconds returns the configured request timeout; zero means the
// transport default applies.
func (c *Config) HTTPTimeoutSeconds() int {
	return c.App.API.HTTPTimeout
}

func (c *Config) loadAppConfig() error {
	path := c.AppConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed AppConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.App = parsed
	return nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Version: 1,
		API: APIConfig{
			BaseURL: defaultBaseURL,
		},
	}
}

func (ac *AppConfig) applyDefaults() {
	if ac.Version == 0 {
		ac.Version = 1
	}
	if strings.TrimSpace(ac.API.BaseURL) == "" {
		ac.API.BaseURL = defaultBaseURL
	}
}

func (ac *AppConfig) normalize() {
	ac.API.BaseURL = strings.TrimRight(strings.TrimSpace(ac.API.BaseURL), "/")
}

func (ac *AppConfig) validate() error {
	if ac.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	u, err := url.Parse(ac.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", ac.API.BaseURL)
	}
	if ac.API.HTTPTimeout < 0 {
		return fmt.Errorf("api.http_timeout must be >= 0")
	}
	return nil
}

func ensureAppConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultAppConfigYAML), 0o644)
}
