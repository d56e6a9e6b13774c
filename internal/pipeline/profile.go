package pipeline

import (
	"sync/atomic"
)

// Profiler aggregates simple counters/timers across multiple detection runs.
type Profiler struct {
	DetectionTimeNs atomic.Int64
	TextsProcessed  atomic.Int64
	NGramsTotal     atomic.Int64
}

func (p *Profiler) Record(detNs int64, ngrams int) {
	p.DetectionTimeNs.Add(detNs)
	p.TextsProcessed.Add(1)
	p.NGramsTotal.Add(int64(ngrams))
}

// Snapshot returns cumulative metrics in milliseconds for readability.
func (p *Profiler) Snapshot() map[string]any {
	texts := p.TextsProcessed.Load()
	det := p.DetectionTimeNs.Load()
	ngrams := p.NGramsTotal.Load()
	out := map[string]any{
		"texts":        texts,
		"ngrams_total": ngrams,
		"det_ms_total": det / 1_000_000,
	}
	if texts > 0 {
		out["det_ms_per_text"] = float64(det) / 1_000_000.0 / float64(texts)
	}
	return out
}
