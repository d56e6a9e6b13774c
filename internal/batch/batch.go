package batch

// Package batch discovers text files under a set of paths and runs language
// detection across them concurrently, sharing one loaded profile set.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/MeKo-Tech/langdetect/internal/pipeline"
)

// Discover finds text files under the given paths, applying include/exclude
// glob patterns against each file's base name.
func Discover(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	return discoverTextFiles(paths, recursive, includePatterns, excludePatterns)
}

// Run discovers text files under paths, reads each one, and detects its
// language concurrently across the workers configured in config, sharing
// factory's loaded profiles across every worker's Detector.
func Run(ctx context.Context, factory *langdetect.Factory, paths []string, config *Config) (*Result, error) {
	files, err := discoverTextFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover text files: %w", err)
	}

	if len(files) == 0 {
		return nil, errors.New("no text files found")
	}

	var progressCallback pipeline.ProgressCallback
	if config.ShowProgress && !config.Quiet {
		progressCallback = pipeline.NewConsoleProgressCallback(
			os.Stdout,
			"Processing: ",
		).WithUpdateInterval(config.ProgressInterval)
	}

	pl, err := buildPipeline(factory, config, progressCallback)
	if err != nil {
		return nil, fmt.Errorf("failed to build detection pipeline: %w", err)
	}
	defer func() {
		if err := pl.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing pipeline: %v\n", err)
		}
	}()

	jobs, err := readJobs(files)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	results, err := pl.ProcessJobsParallelBatchedContext(ctx, jobs, pl.Config().Parallel)
	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("batch processing failed: %w", err)
	}

	return &Result{
		Results:     results,
		FilePaths:   files,
		Duration:    duration,
		WorkerCount: config.Workers,
	}, nil
}

// readJobs reads each file's contents into a pipeline.Job keyed by its path.
func readJobs(files []string) ([]pipeline.Job, error) {
	jobs := make([]pipeline.Job, len(files))
	for i, path := range files {
		data, err := os.ReadFile(path) //nolint:gosec // paths come from caller-supplied discovery roots
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		jobs[i] = pipeline.Job{ID: path, Text: string(data)}
	}
	return jobs, nil
}
