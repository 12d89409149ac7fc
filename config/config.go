// Package config loads relay settings from the environment and builds the
// logger they describe.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// ErrInvalidLogFormat indicates an ORION_LOG_FORMAT other than text or json.
var ErrInvalidLogFormat = errors.New("invalid log format")

// Config holds the relay settings.
type Config struct {
	// Listen is the address clients connect to.
	Listen string `env:"ORION_LISTEN" envDefault:":7777"`
	// Upstream is the game server every session is relayed to.
	Upstream string `env:"ORION_UPSTREAM" envDefault:"127.0.0.1:7778"`
	// LogLevel is any level logrus.ParseLevel accepts.
	LogLevel string `env:"ORION_LOG_LEVEL" envDefault:"info"`
	// LogFormat is text or json.
	LogFormat string `env:"ORION_LOG_FORMAT" envDefault:"text"`
	// MetricsAddr serves /metrics and /healthz when set.
	MetricsAddr string `env:"ORION_METRICS_ADDR"`
	// WriteTimeout bounds one frame write to a peer. Zero disables it.
	WriteTimeout time.Duration `env:"ORION_WRITE_TIMEOUT" envDefault:"5s"`
	// Extensions lists the built-in extensions to load.
	Extensions []string `env:"ORION_EXTENSIONS" envSeparator:"," envDefault:"chatlog"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields env cannot check by type.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("ORION_LOG_LEVEL: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("ORION_LOG_FORMAT: %w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.Listen == "" {
		return errors.New("ORION_LISTEN: empty address")
	}
	if c.Upstream == "" {
		return errors.New("ORION_UPSTREAM: empty address")
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("ORION_WRITE_TIMEOUT: negative duration %s", c.WriteTimeout)
	}
	return nil
}

// NewLogger returns a logger writing to stderr with the configured level
// and format.
func NewLogger(c Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("ORION_LOG_LEVEL: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	switch c.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("ORION_LOG_FORMAT: %w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	return logger, nil
}
