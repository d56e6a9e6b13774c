package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsNegativeAlpha(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detector.Alpha = -0.1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
}

func TestValidate_RejectsNonPositiveMaxTextLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detector.MaxTextLength = 0
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose-ish"
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 70000
	require.Error(t, cfg.Validate())

	cfg.Server.Port = 0
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadBatchFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.Format = "xml"
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveBatchWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.Workers = 0
	require.Error(t, cfg.Validate())
}

func TestValidate_AcceptsEachBatchFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "csv"} {
		cfg := DefaultConfig()
		cfg.Batch.Format = format
		assert.NoError(t, cfg.Validate())
	}
}
