package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codeflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                  ":8080",
		DBPath:                "test.db",
		LogLevel:              "INFO",
		HistoryWorkerCount:    1,
		HistoryQueueSize:      128,
		DigestIntervalMinutes: 60,
		DueLimit:              100,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = "  "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidWorkerCounts(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "zero workers", count: 0},
		{name: "negative workers", count: -2},
		{name: "too many workers", count: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.HistoryWorkerCount = tt.count

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "HISTORY_WORKER_COUNT")
		})
	}
}

func TestValidate_InvalidQueueSize(t *testing.T) {
	cfg := validConfig()
	cfg.HistoryQueueSize = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HISTORY_QUEUE_SIZE")
}

func TestValidate_DigestInterval(t *testing.T) {
	cfg := validConfig()
	cfg.DigestIntervalMinutes = 0
	assert.NoError(t, cfg.Validate(), "zero disables the digest")

	cfg.DigestIntervalMinutes = -5
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DIGEST_INTERVAL_MINUTES")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "TRACE"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "info", "Warn", "WARNING", "ERROR"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.DBPath = ""
	cfg.DueLimit = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
	assert.Contains(t, err.Error(), "DUE_LIMIT")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("HISTORY_WORKER_COUNT", "4")
	t.Setenv("DUE_LIMIT", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.HistoryWorkerCount)
	assert.Equal(t, 100, cfg.DueLimit, "invalid ints fall back to the default")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DIGEST_INTERVAL_MINUTES", "")

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 60, cfg.DigestIntervalMinutes)
	assert.NoError(t, cfg.Validate())
}
