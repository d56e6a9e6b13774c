package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/pipeline"
)

// Config holds all configuration for batch file detection.
type Config struct {
	// Detector settings applied to every Detector the pipeline builds.
	Alpha         float64
	MaxTextLength int
	Seed          int64
	SeedSet       bool

	// Parallel processing settings
	Workers         int
	BatchSize       int
	MemoryLimitStr  string
	MaxGoroutines   int
	MemoryThreshold float64

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Output settings
	Format     string
	OutputFile string

	// Progress settings
	ShowProgress     bool
	Quiet            bool
	ShowStats        bool
	ProgressInterval time.Duration
}

// Result holds the outcome of a batch detection run.
type Result struct {
	Results     []pipeline.Result
	FilePaths   []string
	Duration    time.Duration
	WorkerCount int
}

// FormatResults formats the batch results in the given output format.
func (r *Result) FormatResults(format string) (string, error) {
	return Format(r.Results, format)
}

// SaveResults writes the formatted results to a file, or to stdout if
// outputFile is empty.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics to stdout.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}

	jobs := make([]pipeline.Job, len(r.FilePaths))
	for i, path := range r.FilePaths {
		jobs[i] = pipeline.Job{ID: path}
	}

	stats := pipeline.CalculateParallelStats(jobs, r.Results, r.Duration, r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total files: %d\n", len(r.FilePaths))
	_, _ = fmt.Fprintf(os.Stdout, "  Processed: %d\n", stats.ProcessedJobs)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", stats.FailedJobs)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", stats.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", stats.TotalDuration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per file: %v\n", stats.AveragePerJob.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Throughput: %.1f files/sec\n", stats.ThroughputPerSec)
}
