package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
)

// ProcessText runs detection on a single text and returns a Result.
func (p *Pipeline) ProcessText(id, text string) Result {
	return p.ProcessTextContext(context.Background(), id, text)
}

// ProcessTextContext is like ProcessText but allows cancellation via ctx.
func (p *Pipeline) ProcessTextContext(ctx context.Context, id, text string) Result {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Result{ID: id, Err: err, Duration: time.Since(start)}
	}

	det, err := p.factory.NewDetectorWithAlpha(p.cfg.Detector.Alpha)
	if err != nil {
		return Result{ID: id, Err: fmt.Errorf("new detector: %w", err), Duration: time.Since(start)}
	}
	if p.cfg.Detector.MaxTextLength > 0 {
		det.SetMaxTextLength(p.cfg.Detector.MaxTextLength)
	}
	if p.cfg.Detector.SeedSet {
		det.SetSeed(p.cfg.Detector.Seed)
	}

	if err := det.Append(text); err != nil {
		return Result{ID: id, Err: fmt.Errorf("append: %w", err), Duration: time.Since(start)}
	}
	langs, err := det.Probabilities()
	dur := time.Since(start)
	if p.Profiler != nil {
		p.Profiler.Record(dur.Nanoseconds(), det.NGramCount())
	}
	if err != nil {
		return Result{ID: id, Err: err, Duration: dur}
	}
	return Result{ID: id, Languages: langs, Duration: dur}
}

// ProcessTexts processes multiple jobs sequentially and returns one Result
// per job, in order.
func (p *Pipeline) ProcessTexts(jobs []Job) ([]Result, error) {
	return p.ProcessTextsContext(context.Background(), jobs)
}

// ProcessTextsContext processes jobs sequentially with context cancellation
// support.
func (p *Pipeline) ProcessTextsContext(ctx context.Context, jobs []Job) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, errors.New("no jobs provided")
	}
	results := make([]Result, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = p.ProcessTextContext(ctx, job.ID, job.Text)
		slog.Debug("processed job", "id", job.ID, "top", results[i].Top(), "duration_ms", results[i].Duration.Milliseconds())
	}
	return results, nil
}

// Run fans jobs out across a bounded worker pool, each worker owning a
// single-goroutine Detector built from the Pipeline's shared, read-only
// Factory, and returns one Result per job, preserving input order.
func Run(ctx context.Context, f *langdetect.Factory, jobs []Job, opts ParallelConfig) []Result {
	p := &Pipeline{factory: f, cfg: Config{Detector: DetectorConfig{Alpha: langdetect.AlphaDefault}}}
	results, err := p.ProcessJobsParallelContext(ctx, jobs, opts)
	if err != nil {
		out := make([]Result, len(jobs))
		for i, job := range jobs {
			out[i] = Result{ID: job.ID, Err: err}
		}
		return out
	}
	return results
}
