package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")

// field binds a dotted key to accessors on Config.
type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

//nolint:gochecknoglobals // Static key table.
var fields = map[string]field{
	"api.base_url": {
		get: func(c *Config) string { return c.API.BaseURL },
		set: func(c *Config, v string) error { c.API.BaseURL = v; return nil },
	},
	"api.timeout": {
		get: func(c *Config) string { return c.API.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := parseTimeout(v)
			if err != nil {
				return fmt.Errorf("api.timeout: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("api.timeout must be positive, got %s", d)
			}
			c.API.Timeout = d
			return nil
		},
	},
	"api.user_agent": {
		get: func(c *Config) string { return c.API.UserAgent },
		set: func(c *Config, v string) error { c.API.UserAgent = v; return nil },
	},
	"ui.greeting": {
		get: func(c *Config) string { return c.UI.Greeting },
		set: func(c *Config, v string) error { c.UI.Greeting = v; return nil },
	},
	"ui.end_threshold": {
		get: func(c *Config) string { return strconv.Itoa(c.UI.EndThreshold) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("ui.end_threshold must be a non-negative integer, got %q", v)
			}
			c.UI.EndThreshold = n
			return nil
		},
	},
	"ui.clear_error_on_success": {
		get: func(c *Config) string { return strconv.FormatBool(c.UI.ClearErrorOnSuccess) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("ui.clear_error_on_success: %w", err)
			}
			c.UI.ClearErrorOnSuccess = b
			return nil
		},
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error {
			if v != "json" && v != "console" {
				return fmt.Errorf("logging.format must be json or console, got %q", v)
			}
			c.Logging.Format = v
			return nil
		},
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value at a dotted key such as "api.timeout".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value and stores it at key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.set(c, value)
}
