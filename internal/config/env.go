package config

import (
	"strconv"
	"time"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome      = "JOBFEED_HOME"
	EnvAPIURL    = "JOBFEED_API_URL"
	EnvTimeout   = "JOBFEED_TIMEOUT"
	EnvLogLevel  = "JOBFEED_LOG_LEVEL"
	EnvLogFormat = "JOBFEED_LOG_FORMAT"
)

// ApplyEnv overrides fields from the environment. Unparseable values are
// ignored so a bad variable never prevents startup.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvTimeout); ok && v != "" {
		if d, err := parseTimeout(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// parseTimeout accepts a Go duration ("10s") or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
