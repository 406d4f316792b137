package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"furk/config"
	"furk/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

// The logger package mutates zerolog's global state; each test snapshots and
// restores it so ordering does not matter.
func snapshotGlobals(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func configWithLevel(level string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.LogLevel = level

	return cfg
}

func TestInitLogger(t *testing.T) {
	snapshotGlobals(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	snapshotGlobals(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("booking payload decode failed"))

	assert.Contains(t, buf.String(), "booking payload decode failed")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{"trace level", "trace", zerolog.TraceLevel},
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"fatal level", "fatal", zerolog.FatalLevel},
		{"panic level", "panic", zerolog.PanicLevel},
		{"disabled level", "disabled", zerolog.Disabled},
		{"unknown level falls back to trace", "verbose", zerolog.TraceLevel},
		// zerolog parses "" as NoLevel without an error, so the fallback
		// never triggers for an unset value.
		{"empty level", "", zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshotGlobals(t)

			logger.SetLogLevel(configWithLevel(tt.logLevel))

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestLoggerIntegration(t *testing.T) {
	snapshotGlobals(t)

	logger.InitLogger()
	logger.SetLogLevel(configWithLevel("info"))

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("payment webhook rejected"))

	assert.Contains(t, buf.String(), "payment webhook rejected")
}
