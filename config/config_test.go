package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Listen)
	assert.Equal(t, "127.0.0.1:7778", cfg.Upstream)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	assert.Equal(t, []string{"chatlog"}, cfg.Extensions)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ORION_LISTEN", "0.0.0.0:9000")
	t.Setenv("ORION_UPSTREAM", "game.example:7777")
	t.Setenv("ORION_LOG_LEVEL", "debug")
	t.Setenv("ORION_LOG_FORMAT", "json")
	t.Setenv("ORION_METRICS_ADDR", "127.0.0.1:9100")
	t.Setenv("ORION_WRITE_TIMEOUT", "250ms")
	t.Setenv("ORION_EXTENSIONS", "chatlog,other")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Listen:       "0.0.0.0:9000",
		Upstream:     "game.example:7777",
		LogLevel:     "debug",
		LogFormat:    "json",
		MetricsAddr:  "127.0.0.1:9100",
		WriteTimeout: 250 * time.Millisecond,
		Extensions:   []string{"chatlog", "other"},
	}, cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"bad duration", "ORION_WRITE_TIMEOUT", "soon", "parse env:"},
		{"bad level", "ORION_LOG_LEVEL", "loud", "ORION_LOG_LEVEL"},
		{"bad format", "ORION_LOG_FORMAT", "xml", "invalid log format"},
		{"negative timeout", "ORION_WRITE_TIMEOUT", "-1s", "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Config{LogLevel: "warn", LogFormat: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger, err = NewLogger(Config{LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	_, err = NewLogger(Config{LogLevel: "info", LogFormat: "xml"})
	assert.ErrorIs(t, err, ErrInvalidLogFormat)

	_, err = NewLogger(Config{LogLevel: "nope", LogFormat: "text"})
	assert.Error(t, err)
}
