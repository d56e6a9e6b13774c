package batch

import (
	"strconv"
	"strings"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/MeKo-Tech/langdetect/internal/pipeline"
)

// buildPipeline creates a detection pipeline from the batch configuration,
// sharing the given Factory's loaded profiles across all workers.
func buildPipeline(
	factory *langdetect.Factory,
	config *Config,
	progressCallback pipeline.ProgressCallback,
) (*pipeline.Pipeline, error) {
	b := pipeline.NewBuilder(factory).
		WithAlpha(config.Alpha).
		WithMaxTextLength(config.MaxTextLength).
		WithWorkers(config.Workers).
		WithBatchSize(config.BatchSize).
		WithMemoryLimit(parseMemoryLimitOrDefault(config.MemoryLimitStr)).
		WithMaxGoroutines(config.MaxGoroutines).
		WithResourceThreshold(config.MemoryThreshold).
		WithProgressCallback(progressCallback)

	if config.SeedSet {
		b = b.WithSeed(config.Seed)
	}

	return b.Build()
}

// parseMemoryLimitOrDefault parses memory limit or returns 0 if empty.
func parseMemoryLimitOrDefault(limitStr string) uint64 {
	if limitStr == "" {
		return 0
	}
	limit, err := parseMemoryLimit(limitStr)
	if err != nil {
		return 0
	}
	return limit
}

// parseMemoryLimit parses a memory limit string (e.g., "1GB", "512MB") into bytes.
func parseMemoryLimit(limit string) (uint64, error) {
	limit = strings.TrimSpace(strings.ToUpper(limit))

	// Longest suffixes first, so "KB" is not mistaken for a plain "B".
	multipliers := []struct {
		suffix     string
		multiplier uint64
	}{
		{"TB", 1024 * 1024 * 1024 * 1024},
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
		{"B", 1},
	}

	for _, m := range multipliers {
		if strings.HasSuffix(limit, m.suffix) {
			numStr := strings.TrimSpace(strings.TrimSuffix(limit, m.suffix))
			num, err := strconv.ParseFloat(numStr, 64)
			if err != nil {
				return 0, err
			}
			return uint64(num * float64(m.multiplier)), nil
		}
	}

	// Try parsing as plain number (bytes)
	num, err := strconv.ParseUint(limit, 10, 64)
	return num, err
}
