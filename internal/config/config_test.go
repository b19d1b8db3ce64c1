package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/jobfeed/internal/config"
	"github.com/rshade/jobfeed/internal/tui"
)

func TestDefault(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	cfg := config.Default()
	assert.Equal(t, config.SchemaVersion, cfg.Version)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, tui.DefaultEndThreshold, cfg.UI.EndThreshold)
	assert.False(t, cfg.UI.ClearErrorOnSuccess)
	assert.Equal(t, "config.yaml", filepath.Base(cfg.ConfigPath()))
	assert.Equal(t, "jobfeed.log", filepath.Base(cfg.Logging.File))
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndNew(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	cfg := config.Default()
	cfg.UI.Greeting = "Welcome back"
	cfg.API.Timeout = 4 * time.Second
	require.NoError(t, cfg.Save())

	loaded := config.New()
	assert.Equal(t, "Welcome back", loaded.UI.Greeting)
	assert.Equal(t, 4*time.Second, loaded.API.Timeout)
	assert.Equal(t, filepath.Join(home, "config.yaml"), loaded.ConfigPath())
}

func TestSave_NoPath(t *testing.T) {
	cfg := &config.Config{}
	assert.Error(t, cfg.Save())
}

func TestLoad_SchemaVersion(t *testing.T) {
	t.Run("compatible", func(t *testing.T) {
		cfg := newTarget()
		require.NoError(t, cfg.Load(writeConfig(t, "version: 1.4.2\n")))
	})

	t.Run("future major", func(t *testing.T) {
		cfg := newTarget()
		err := cfg.Load(writeConfig(t, "version: 2.0.0\n"))
		assert.ErrorIs(t, err, config.ErrUnsupportedSchema)
	})

	t.Run("garbage", func(t *testing.T) {
		cfg := newTarget()
		err := cfg.Load(writeConfig(t, "version: latest\n"))
		assert.ErrorIs(t, err, config.ErrUnsupportedSchema)
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvAPIURL:   "http://mirror.test",
		config.EnvTimeout:  "7",
		config.EnvLogLevel: "debug",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := newTarget()
	cfg.ApplyEnv(lookup)
	assert.Equal(t, "http://mirror.test", cfg.API.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)

	env[config.EnvTimeout] = "soon"
	cfg.ApplyEnv(lookup)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout, "bad value ignored")

	env[config.EnvTimeout] = "250ms"
	cfg.ApplyEnv(lookup)
	assert.Equal(t, 250*time.Millisecond, cfg.API.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := newTarget()
	cfg.API.BaseURL = ""
	cfg.API.Timeout = 0
	cfg.UI.EndThreshold = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
	assert.Contains(t, err.Error(), "api.timeout")
	assert.Contains(t, err.Error(), "ui.end_threshold")
}

func TestGetSet(t *testing.T) {
	cfg := newTarget()

	require.NoError(t, cfg.Set("api.timeout", "30s"))
	v, err := cfg.Get("api.timeout")
	require.NoError(t, err)
	assert.Equal(t, "30s", v)

	require.NoError(t, cfg.Set("ui.end_threshold", "0"))
	assert.Equal(t, 0, cfg.UI.EndThreshold)

	require.NoError(t, cfg.Set("ui.clear_error_on_success", "true"))
	assert.True(t, cfg.UI.ClearErrorOnSuccess)

	assert.Error(t, cfg.Set("ui.end_threshold", "-2"))
	assert.Error(t, cfg.Set("logging.format", "xml"))
	assert.Error(t, cfg.Set("api.timeout", "0"))

	_, err = cfg.Get("api.password")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
	assert.ErrorIs(t, cfg.Set("nope", "x"), config.ErrUnknownKey)

	assert.Contains(t, config.Keys(), "ui.greeting")
}

func TestGlobalConfig(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	a := config.GetGlobalConfig()
	b := config.GetGlobalConfig()
	assert.Same(t, a, b)

	require.NoError(t, config.EnsureLogDir())
	assert.DirExists(t, filepath.Dir(a.Logging.File))

	lc := config.GetLoggingConfig()
	assert.Equal(t, "file", lc.ToLoggingConfig().Output)
	lc.File = ""
	assert.Equal(t, "stderr", lc.ToLoggingConfig().Output)
}

func TestLoadFile_IgnoresEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvAPIURL, "http://from-env.invalid")

	cfg, err := config.LoadFile()
	require.NoError(t, err)
	assert.Equal(t, config.Default().API.BaseURL, cfg.API.BaseURL)

	cfg.UI.Greeting = "Namaste"
	require.NoError(t, cfg.Save())

	reloaded, err := config.LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "Namaste", reloaded.UI.Greeting)
	assert.NotEqual(t, "http://from-env.invalid", reloaded.API.BaseURL)

	assert.Equal(t, "http://from-env.invalid", config.New().API.BaseURL)
}

func TestLoadFile_RejectsUnsupportedSchema(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("version: 3.0.0\n"), 0o600))

	_, err := config.LoadFile()
	assert.ErrorIs(t, err, config.ErrUnsupportedSchema)
}

func TestNew_MalformedFileIsNotApplied(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	content := "ui:\n  greeting: Hi Asha\napi:\n  timeout: notaduration\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))

	cfg := config.New()
	require.Error(t, cfg.LoadError())
	assert.Equal(t, tui.DefaultGreeting, cfg.UI.Greeting)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, cfg.LoadError())
}

func TestLoad_FailureLeavesConfigUnchanged(t *testing.T) {
	cfg := newTarget()
	before := *cfg

	err := cfg.Load(writeConfig(t, "ui:\n  greeting: Hi\nversion: 9.0.0\n"))
	require.ErrorIs(t, err, config.ErrUnsupportedSchema)
	assert.Equal(t, before, *cfg)
}
