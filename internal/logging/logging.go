// Package logging builds the zerolog loggers used across jobfeed.
//
// Loggers are configured from a Config (level, format, output) and carried
// through context.Context so commands, the feed controller and the API client
// share one sink and one trace ID per invocation.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output and format names accepted in Config.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config describes how a logger is built.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult reports which sink NewLoggerWithPath ended up using.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	mu   sync.Mutex
	file *os.File
}

// Close releases the log file handle, if one was opened.
func (r *LogPathResult) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger writing to w.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLoggerWithPath builds a logger for cfg. When a file output cannot be
// opened the logger falls back to stderr and the result says why.
func NewLoggerWithPath(cfg Config) *LogPathResult {
	result := &LogPathResult{}

	if cfg.Output != OutputFile || cfg.File == "" {
		result.Logger = NewLogger(cfg, os.Stderr)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		result.FallbackUsed = true
		result.FallbackReason = fmt.Sprintf("cannot create log directory: %v", err)
		result.Logger = NewLogger(cfg, os.Stderr)
		return result
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		result.FallbackUsed = true
		result.FallbackReason = fmt.Sprintf("cannot open log file: %v", err)
		result.Logger = NewLogger(cfg, os.Stderr)
		return result
	}

	// Files always get JSON lines regardless of the configured format.
	fileCfg := cfg
	fileCfg.Format = FormatJSON
	result.Logger = NewLogger(fileCfg, f)
	result.UsingFile = true
	result.FilePath = cfg.File
	result.file = f
	return result
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := zerolog.Nop()
		return &l
	}
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where logs are being written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user that file logging was not possible.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: %s; logging to stderr\n", reason)
}
