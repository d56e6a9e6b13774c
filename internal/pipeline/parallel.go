package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// ParallelConfig holds configuration for parallel processing.
type ParallelConfig struct {
	MaxWorkers       int                        // Number of parallel workers (0 = runtime.NumCPU())
	BatchSize        int                        // Jobs per batch for micro-batching (0 = no batching)
	MemoryLimitBytes uint64                     // Memory limit in bytes (0 = no limit)
	ProgressCallback ProgressCallback           // Optional progress reporting
	ErrorHandler     func(int, Job, error)      // Optional per-job error handler
}

// DefaultParallelConfig returns sensible defaults for parallel processing.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		MaxWorkers:       runtime.NumCPU(),
		BatchSize:        0, // No micro-batching by default
		MemoryLimitBytes: 0, // No memory limit by default
		ProgressCallback: nil,
		ErrorHandler:     nil,
	}
}

// detectionJob represents a single detection job queued to a worker.
type detectionJob struct {
	index int
	job   Job
}

// detectionResult represents the result of running a single detection job.
type detectionResult struct {
	index  int
	result Result
}

// ProcessJobsParallel processes multiple jobs in parallel using a worker
// pool. Returns results in the same order as input jobs.
func (p *Pipeline) ProcessJobsParallel(jobs []Job, config ParallelConfig) ([]Result, error) {
	return p.ProcessJobsParallelContext(context.Background(), jobs, config)
}

// ProcessJobsParallelContext processes jobs in parallel with context
// cancellation support.
func (p *Pipeline) ProcessJobsParallelContext(ctx context.Context, jobs []Job, config ParallelConfig) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, errors.New("no jobs provided")
	}
	if p == nil || p.factory == nil {
		return nil, errors.New("pipeline not initialized")
	}

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = runtime.NumCPU()
	}

	// For a single job or a single worker, sequential processing avoids
	// channel/goroutine overhead entirely.
	if len(jobs) == 1 || config.MaxWorkers == 1 {
		return p.ProcessTextsContext(ctx, jobs)
	}

	if config.ProgressCallback != nil {
		config.ProgressCallback.OnStart(len(jobs))
		defer config.ProgressCallback.OnComplete()
	}

	jobsCh := make(chan detectionJob, len(jobs))
	resultsCh := make(chan detectionResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < config.MaxWorkers; i++ {
		wg.Add(1)
		go p.worker(ctx, jobsCh, resultsCh, &wg)
	}

	go func() {
		defer close(jobsCh)
		for i, job := range jobs {
			select {
			case jobsCh <- detectionJob{index: i, job: job}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	resultMap := make(map[int]Result, len(jobs))
	processedCount := 0

	for dr := range resultsCh {
		resultMap[dr.index] = dr.result
		processedCount++
		if config.ProgressCallback != nil {
			config.ProgressCallback.OnProgress(processedCount, len(jobs))
		}
		if dr.result.Err != nil && config.ErrorHandler != nil {
			config.ErrorHandler(dr.index, jobs[dr.index], dr.result.Err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ordered := make([]Result, len(jobs))
	for i, job := range jobs {
		res, ok := resultMap[i]
		if !ok {
			res = Result{ID: job.ID, Err: fmt.Errorf("job %d: no result produced", i)}
		}
		ordered[i] = res
	}

	return ordered, nil
}

// worker drains jobsCh, running each job's detection and reporting its
// Result on resultsCh, until the channel closes or ctx is cancelled.
func (p *Pipeline) worker(
	ctx context.Context,
	jobsCh <-chan detectionJob,
	resultsCh chan<- detectionResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case dj, ok := <-jobsCh:
			if !ok {
				return
			}
			res := p.runJob(ctx, dj.job)
			select {
			case resultsCh <- detectionResult{index: dj.index, result: res}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// runJob acquires a ResourceManager goroutine slot, if one is configured,
// before running a single job's detection and releases it afterward. With
// no ResourceManager, concurrency is bounded only by config.MaxWorkers.
func (p *Pipeline) runJob(ctx context.Context, job Job) Result {
	if p.ResourceManager == nil {
		return p.ProcessTextContext(ctx, job.ID, job.Text)
	}

	if err := p.ResourceManager.AcquireGoroutine(ctx); err != nil {
		return Result{ID: job.ID, Err: fmt.Errorf("acquiring resource slot: %w", err)}
	}
	defer p.ResourceManager.ReleaseGoroutine()

	return p.ProcessTextContext(ctx, job.ID, job.Text)
}

// ProcessJobsParallelBatched processes jobs in parallel with micro-batching
// support, useful when job count is large relative to per-job cost.
func (p *Pipeline) ProcessJobsParallelBatched(jobs []Job, config ParallelConfig) ([]Result, error) {
	return p.ProcessJobsParallelBatchedContext(context.Background(), jobs, config)
}

// ProcessJobsParallelBatchedContext processes jobs in parallel batches with
// context cancellation support.
func (p *Pipeline) ProcessJobsParallelBatchedContext(ctx context.Context, jobs []Job, config ParallelConfig) ([]Result, error) {
	if config.BatchSize <= 1 {
		return p.ProcessJobsParallelContext(ctx, jobs, config)
	}
	if len(jobs) == 0 {
		return nil, errors.New("no jobs provided")
	}

	if config.ProgressCallback != nil {
		config.ProgressCallback.OnStart(len(jobs))
		defer config.ProgressCallback.OnComplete()
	}

	allResults := make([]Result, len(jobs))
	var resultMutex sync.Mutex
	var firstError error
	var errorMutex sync.Mutex

	var wg sync.WaitGroup
	processed := 0
	var progressMutex sync.Mutex

	for start := 0; start < len(jobs); start += config.BatchSize {
		end := start + config.BatchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		batch := jobs[start:end]
		offset := start

		wg.Add(1)
		go func(batch []Job, offset int) {
			defer wg.Done()

			batchResults, err := p.ProcessTextsContext(ctx, batch)

			resultMutex.Lock()
			for i, res := range batchResults {
				allResults[offset+i] = res
			}
			resultMutex.Unlock()

			if err != nil {
				errorMutex.Lock()
				if firstError == nil {
					firstError = fmt.Errorf("batch starting at index %d: %w", offset, err)
				}
				errorMutex.Unlock()
			}

			progressMutex.Lock()
			processed += len(batch)
			current := processed
			progressMutex.Unlock()

			if config.ProgressCallback != nil {
				config.ProgressCallback.OnProgress(current, len(jobs))
			}
		}(batch, offset)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return allResults, firstError
}

// ParallelStats holds statistics about parallel processing performance.
type ParallelStats struct {
	TotalJobs        int           `json:"total_jobs"`
	ProcessedJobs    int           `json:"processed_jobs"`
	FailedJobs       int           `json:"failed_jobs"`
	WorkerCount      int           `json:"worker_count"`
	TotalDuration    time.Duration `json:"total_duration_ns"`
	AveragePerJob    time.Duration `json:"average_per_job_ns"`
	ThroughputPerSec float64       `json:"throughput_per_sec"`
}

// CalculateParallelStats calculates performance statistics for parallel
// processing.
func CalculateParallelStats(jobs []Job, results []Result, duration time.Duration, workerCount int) ParallelStats {
	totalJobs := len(jobs)
	processed := 0
	failed := 0

	for _, r := range results {
		if r.Err == nil {
			processed++
		} else {
			failed++
		}
	}

	var avgPerJob time.Duration
	var throughput float64
	if processed > 0 {
		avgPerJob = duration / time.Duration(processed)
		throughput = float64(processed) / duration.Seconds()
	}

	return ParallelStats{
		TotalJobs:        totalJobs,
		ProcessedJobs:    processed,
		FailedJobs:       failed,
		WorkerCount:      workerCount,
		TotalDuration:    duration,
		AveragePerJob:    avgPerJob,
		ThroughputPerSec: throughput,
	}
}
