package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/edgeterm/pkg/canny"
)

// clearEnv blanks every variable LoadConfig reads for the duration of t.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvIgnoreFloor, EnvSmoothing, EnvWeakMode, EnvLogLevel, EnvPreviewBackend, EnvPreviewDebug} {
		t.Setenv(k, "")
	}
}

func TestConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, canny.DefaultOptions(), cfg.Canny)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvIgnoreFloor, "0.05")
	t.Setenv(EnvSmoothing, "kernel159")
	t.Setenv(EnvWeakMode, "midpoint")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvPreviewBackend, "Kitty")
	t.Setenv(EnvPreviewDebug, "1")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Canny.IgnoreFloor)
	assert.Equal(t, canny.SmoothKernel159, cfg.Canny.Smoothing)
	assert.Equal(t, canny.WeakMidpoint, cfg.Canny.WeakMode)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "kitty", cfg.PreviewBackend)
	assert.True(t, cfg.PreviewDebug)
}

func TestConfigRejectsBadValues(t *testing.T) {
	for k, v := range map[string]string{
		EnvIgnoreFloor: "-1",
		EnvSmoothing:   "box",
		EnvWeakMode:    "median",
		EnvLogLevel:    "loud",
	} {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := ConfigFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), k)
		})
	}
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvWeakMode)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("# edge settings\n"+EnvWeakMode+"=midpoint\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, canny.WeakMidpoint, cfg.Canny.WeakMode)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, false, "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	logger.WithField("k", "v").Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	logger, err = NewLogger(&buf, true, "error")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger, err = NewLogger(&buf, false, "warn")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	_, err = NewLogger(&buf, false, "chatty")
	assert.Error(t, err)
}
