package pipeline

import (
	"errors"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
)

// DetectorConfig holds the per-job Detector parameters the pipeline applies
// to every Detector it builds.
type DetectorConfig struct {
	Alpha         float64
	MaxTextLength int
	Seed          int64
	SeedSet       bool
}

// Config holds configuration for the detection pipeline and its worker
// pool.
type Config struct {
	Detector DetectorConfig

	// Parallel processing configuration
	Parallel ParallelConfig
	Resource ResourceConfig
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Detector: DetectorConfig{Alpha: langdetect.AlphaDefault, MaxTextLength: langdetect.DefaultMaxTextLength},
		Parallel: DefaultParallelConfig(),
		Resource: DefaultResourceConfig(),
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg      Config
	factory  *langdetect.Factory
	profiler *Profiler
}

// NewBuilder creates a new pipeline builder with defaults, wired to the
// given Factory (the shared, read-only language profile index).
func NewBuilder(f *langdetect.Factory) *Builder {
	return &Builder{cfg: DefaultConfig(), factory: f}
}

// WithAlpha sets the smoothing parameter every Detector the pipeline
// builds is constructed with.
func (b *Builder) WithAlpha(alpha float64) *Builder {
	b.cfg.Detector.Alpha = alpha
	return b
}

// WithMaxTextLength caps the text length each Detector accumulates.
func (b *Builder) WithMaxTextLength(n int) *Builder {
	if n > 0 {
		b.cfg.Detector.MaxTextLength = n
	}
	return b
}

// WithSeed fixes the RNG seed every Detector the pipeline builds uses.
func (b *Builder) WithSeed(seed int64) *Builder {
	b.cfg.Detector.Seed = seed
	b.cfg.Detector.SeedSet = true
	return b
}

// WithWorkers sets the number of parallel workers for batch processing.
func (b *Builder) WithWorkers(workers int) *Builder {
	if workers > 0 {
		b.cfg.Parallel.MaxWorkers = workers
	}
	return b
}

// WithBatchSize sets the batch size for micro-batching in parallel processing.
func (b *Builder) WithBatchSize(size int) *Builder {
	if size >= 0 {
		b.cfg.Parallel.BatchSize = size
	}
	return b
}

// WithMemoryLimit sets the memory limit for resource management.
func (b *Builder) WithMemoryLimit(bytes uint64) *Builder {
	b.cfg.Resource.MaxMemoryBytes = bytes
	b.cfg.Parallel.MemoryLimitBytes = bytes
	return b
}

// WithMaxGoroutines sets the maximum number of concurrent goroutines.
func (b *Builder) WithMaxGoroutines(maxG int) *Builder {
	if maxG > 0 {
		b.cfg.Resource.MaxGoroutines = maxG
	}
	return b
}

// WithProgressCallback sets the progress callback for batch processing.
func (b *Builder) WithProgressCallback(callback ProgressCallback) *Builder {
	b.cfg.Parallel.ProgressCallback = callback
	return b
}

// WithResourceThreshold sets the memory pressure threshold (0.0-1.0).
func (b *Builder) WithResourceThreshold(threshold float64) *Builder {
	if threshold > 0 && threshold <= 1.0 {
		b.cfg.Resource.MemoryThreshold = threshold
	}
	return b
}

// WithProfiler attaches a Profiler that every detection the pipeline runs
// records timing and n-gram counts into.
func (b *Builder) WithProfiler(p *Profiler) *Builder {
	b.profiler = p
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks that the builder has a usable Factory and sane config.
func (b *Builder) Validate() error {
	if b.factory == nil {
		return errors.New("pipeline: no language profile factory configured")
	}
	if len(b.factory.LoadedLanguages()) == 0 {
		return errors.New("pipeline: factory has no language profiles loaded")
	}
	if b.cfg.Detector.MaxTextLength <= 0 {
		return errors.New("pipeline: detector max text length must be > 0")
	}
	return nil
}

// Pipeline orchestrates concurrent language detection over many jobs,
// sharing one read-only Factory across all workers.
type Pipeline struct {
	cfg             Config
	factory         *langdetect.Factory
	ResourceManager *ResourceManager
	Profiler        *Profiler
}

// Build initializes the detection pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: b.cfg, factory: b.factory, Profiler: b.profiler}

	if b.cfg.Resource.MaxMemoryBytes > 0 || b.cfg.Resource.MaxGoroutines > 0 {
		p.ResourceManager = NewResourceManager(b.cfg.Resource)
		p.ResourceManager.Start()
	}

	return p, nil
}

// Close stops and drops the pipeline's ResourceManager, if any. The
// shared Factory is owned by the caller and is not closed here.
func (p *Pipeline) Close() error {
	if p.ResourceManager != nil {
		p.ResourceManager.Stop()
		p.ResourceManager = nil
	}
	return nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Info returns a map with key pipeline properties, for diagnostics.
func (p *Pipeline) Info() map[string]interface{} {
	info := map[string]interface{}{
		"languages": p.factory.LoadedLanguages(),
		"detector": map[string]interface{}{
			"alpha":           p.cfg.Detector.Alpha,
			"max_text_length": p.cfg.Detector.MaxTextLength,
			"seed_set":        p.cfg.Detector.SeedSet,
		},
		"parallel": map[string]interface{}{
			"max_workers":           p.cfg.Parallel.MaxWorkers,
			"batch_size":            p.cfg.Parallel.BatchSize,
			"memory_limit_bytes":    p.cfg.Parallel.MemoryLimitBytes,
			"has_progress_callback": p.cfg.Parallel.ProgressCallback != nil,
		},
		"resource_management": map[string]interface{}{
			"max_memory_bytes": p.cfg.Resource.MaxMemoryBytes,
			"max_goroutines":   p.cfg.Resource.MaxGoroutines,
			"memory_threshold": p.cfg.Resource.MemoryThreshold,
			"active":           p.ResourceManager != nil,
		},
	}
	if p.ResourceManager != nil {
		info["resource_stats"] = p.ResourceManager.GetStats()
	} else {
		info["memory"] = GetMemStats()
	}
	return info
}
