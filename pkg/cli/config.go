package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/edgeterm/pkg/canny"
)

// Environment variables read by LoadConfig.
const (
	EnvIgnoreFloor    = "EDGETERM_IGNORE_FLOOR"
	EnvSmoothing      = "EDGETERM_SMOOTHING"
	EnvWeakMode       = "EDGETERM_WEAK_MODE"
	EnvLogLevel       = "EDGETERM_LOG"
	EnvPreviewBackend = "PREVIEW_BACKEND"
	EnvPreviewDebug   = "PREVIEW_DEBUG"
)

// Config is the runtime configuration assembled from .env files and the
// environment. Command-line flags are applied on top by the caller.
type Config struct {
	Canny          canny.Options
	LogLevel       string
	Debug          bool
	PreviewBackend string
	PreviewDebug   bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{Canny: canny.DefaultOptions(), LogLevel: "info"}
}

// LoadConfig loads the given .env files (".env" when none are named) into
// the process environment, without overriding variables that are already
// set, and then reads the configuration from the environment. Missing .env
// files are ignored.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}
	return ConfigFromEnv()
}

// ConfigFromEnv reads the configuration from environment variables only.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var err error
	if v := os.Getenv(EnvIgnoreFloor); v != "" {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil || f < 0 {
			return cfg, fmt.Errorf("%s: invalid value %q", EnvIgnoreFloor, v)
		}
		cfg.Canny.IgnoreFloor = f
	}
	if v := os.Getenv(EnvSmoothing); v != "" {
		if cfg.Canny.Smoothing, err = canny.ParseSmoothing(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSmoothing, err)
		}
	}
	if v := os.Getenv(EnvWeakMode); v != "" {
		if cfg.Canny.WeakMode, err = canny.ParseWeakMode(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvWeakMode, err)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		if strings.EqualFold(v, "debug") {
			cfg.Debug = true
		}
		if _, err := logrus.ParseLevel(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.PreviewBackend = strings.ToLower(os.Getenv(EnvPreviewBackend))
	switch strings.ToLower(os.Getenv(EnvPreviewDebug)) {
	case "1", "true":
		cfg.PreviewDebug = true
	}
	return cfg, nil
}
