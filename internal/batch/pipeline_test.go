package batch

import (
	"testing"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPipeline_BasicConfig(t *testing.T) {
	config := &Config{
		Alpha:          0.5,
		MaxTextLength:  1000,
		Workers:        2,
		BatchSize:      4,
		MemoryLimitStr: "512MB",
		MaxGoroutines:  8,
	}

	pl, err := buildPipeline(separableFactory(t), config, nil)
	require.NoError(t, err)
	require.NotNil(t, pl)
	assert.Equal(t, 2, pl.Config().Parallel.MaxWorkers)
}

func TestBuildPipeline_WithSeed(t *testing.T) {
	config := &Config{MaxTextLength: 1000, Workers: 1, Seed: 7, SeedSet: true}

	pl, err := buildPipeline(separableFactory(t), config, nil)
	require.NoError(t, err)
	assert.True(t, pl.Config().Detector.SeedSet)
	assert.Equal(t, int64(7), pl.Config().Detector.Seed)
}

func TestBuildPipeline_NoFactoryLanguagesFails(t *testing.T) {
	config := &Config{Workers: 1, MaxTextLength: 1000}

	pl, err := buildPipeline(langdetect.NewFactory(), config, nil)
	assert.Error(t, err)
	assert.Nil(t, pl)
}

func TestParseMemoryLimitOrDefault_EmptyString(t *testing.T) {
	assert.Equal(t, uint64(0), parseMemoryLimitOrDefault(""))
}

func TestParseMemoryLimitOrDefault_ValidString(t *testing.T) {
	assert.Equal(t, uint64(256*1024*1024), parseMemoryLimitOrDefault("256MB"))
}

func TestParseMemoryLimitOrDefault_InvalidString(t *testing.T) {
	assert.Equal(t, uint64(0), parseMemoryLimitOrDefault("invalid"))
}

func TestParseMemoryLimit_Bytes(t *testing.T) {
	result, err := parseMemoryLimit("1024")
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), result)
}

func TestParseMemoryLimit_Kilobytes(t *testing.T) {
	result, err := parseMemoryLimit("512KB")
	require.NoError(t, err)
	assert.Equal(t, uint64(512*1024), result)
}

func TestParseMemoryLimit_Megabytes(t *testing.T) {
	result, err := parseMemoryLimit("256MB")
	require.NoError(t, err)
	assert.Equal(t, uint64(256*1024*1024), result)
}

func TestParseMemoryLimit_Gigabytes(t *testing.T) {
	result, err := parseMemoryLimit("2GB")
	require.NoError(t, err)
	assert.Equal(t, uint64(2*1024*1024*1024), result)
}

func TestParseMemoryLimit_CaseInsensitive(t *testing.T) {
	result, err := parseMemoryLimit("128mb")
	require.NoError(t, err)
	assert.Equal(t, uint64(128*1024*1024), result)
}

func TestParseMemoryLimit_InvalidFormat(t *testing.T) {
	testCases := []string{"invalid", "123XYZ", "MB", "GB", ""}
	for _, tc := range testCases {
		_, err := parseMemoryLimit(tc)
		assert.Error(t, err, "should fail for: %s", tc)
	}
}

func TestParseMemoryLimit_Whitespace(t *testing.T) {
	result, err := parseMemoryLimit("  128 MB  ")
	require.NoError(t, err)
	assert.Equal(t, uint64(128*1024*1024), result)
}
