// Package config loads and persists jobfeed configuration.
//
// Values come from built-in defaults, then ~/.jobfeed/config.yaml (or
// $JOBFEED_HOME/config.yaml), then JOBFEED_* environment variables. CLI flags
// are applied last by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/jobfeed/internal/jobs"
	"github.com/rshade/jobfeed/internal/tui"
)

// SchemaVersion is written to new config files.
const SchemaVersion = "1.0.0"

// supportedSchemas is the range of config schema versions this build reads.
const supportedSchemas = ">= 1.0.0, < 2.0.0"

// Defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	configFileName   = "config.yaml"
)

// ErrUnsupportedSchema is returned when a config file was written by an
// incompatible version of jobfeed.
var ErrUnsupportedSchema = errors.New("unsupported config schema version")

// Config is the full jobfeed configuration.
type Config struct {
	Version string        `yaml:"version"`
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
	loadErr    error
}

// APIConfig describes the jobs API endpoint.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

// UIConfig tunes the interactive screen.
type UIConfig struct {
	Greeting string `yaml:"greeting"`
	// EndThreshold is how many cards from the end the selection must be
	// before the next page is requested.
	EndThreshold int `yaml:"end_threshold"`
	// ClearErrorOnSuccess hides a previous fetch error once a fetch succeeds.
	ClearErrorOnSuccess bool `yaml:"clear_error_on_success"`
}

// LoggingConfig configures the log sink.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns the defaults merged with the config file and environment.
// A missing file leaves the defaults in place. A file that cannot be loaded
// is not applied at all; the failure is kept in LoadError and reported by
// Validate.
func New() *Config {
	cfg := Default()
	if path := cfg.ConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			cfg.loadErr = cfg.Load(path)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// LoadError returns the error New met while loading the config file.
func (c *Config) LoadError() error {
	return c.loadErr
}

// LoadFile returns the defaults merged with the config file, ignoring the
// environment. Commands that write the file back start from this so that
// environment overrides are never persisted.
func LoadFile() (*Config, error) {
	cfg := Default()
	path := cfg.ConfigPath()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	if err := cfg.Load(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading the file system
// beyond resolving the config directory.
func Default() *Config {
	cfg := &Config{
		Version: SchemaVersion,
		API: APIConfig{
			BaseURL: jobs.DefaultBaseURL,
			Timeout: jobs.DefaultTimeout,
		},
		UI: UIConfig{
			Greeting:     tui.DefaultGreeting,
			EndThreshold: tui.DefaultEndThreshold,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		cfg.Logging.File = filepath.Join(dir, "logs", "jobfeed.log")
	}
	return cfg
}

// ConfigPath returns the file this config is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath overrides the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load merges the YAML file at path onto c. On error c is left unchanged.
func (c *Config) Load(path string) error {
	next := *c
	if err := MergeYAML(&next, path); err != nil {
		return err
	}
	if err := next.checkSchema(); err != nil {
		return err
	}
	next.configPath = path
	*c = next
	return nil
}

// Save writes c to its config path, creating parent directories.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks that the configuration can drive the application.
func (c *Config) Validate() error {
	var errs []error
	if c.loadErr != nil {
		errs = append(errs, c.loadErr)
	}
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url must not be empty"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.UI.EndThreshold < 0 {
		errs = append(errs, fmt.Errorf("ui.end_threshold must be >= 0, got %d", c.UI.EndThreshold))
	}
	if err := c.checkSchema(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) checkSchema() error {
	if c.Version == "" {
		return nil
	}
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, c.Version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchemas)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedSchema, v, supportedSchemas)
	}
	return nil
}
