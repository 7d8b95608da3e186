package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAPIBase(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want string
	}{
		{name: "production", mode: "production", want: ProductionAPIBase},
		{name: "production is case insensitive", mode: " Production ", want: ProductionAPIBase},
		{name: "development", mode: "development", want: DevelopmentAPIBase},
		{name: "unknown mode falls back to local", mode: "staging", want: DevelopmentAPIBase},
		{name: "empty mode", mode: "", want: DevelopmentAPIBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, APIBase(tt.mode))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, time.Hour, cfg.Session.Expiration)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, time.Duration(0), cfg.Analyzer.Timeout)
	assert.Equal(t, APIBase(BuildMode), cfg.Analyzer.BaseURL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("WORKER_CONCURRENCY", "5")
	t.Setenv("ANALYZER_TIMEOUT", "45s")
	t.Setenv("MAX_FILE_SIZE", "2048")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Worker.Concurrency)
	assert.Equal(t, 45*time.Second, cfg.Analyzer.Timeout)
	assert.Equal(t, int64(2048), cfg.Storage.MaxFileSize)
}

func TestLoadIgnoresNonPositiveWorkerSettings(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "0")
	t.Setenv("WORKER_QUEUE_SIZE", "-4")

	cfg := Load()

	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 100, cfg.Worker.QueueSize)
}
