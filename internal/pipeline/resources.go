package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ResourceManager bounds how many detections run at once and watches the
// process's heap against a configured ceiling. A detection job is a few
// kilobytes of text, so unlike a pipeline built for multi-megapixel image
// buffers there is no rolling memory sampler or adaptive worker scaler
// here: the goroutine semaphore already supplies backpressure, and a
// point-in-time heap read is plenty to decide whether a large batch is
// pushing the process toward its configured limit.
type ResourceManager struct {
	maxMemoryBytes  uint64
	maxGoroutines   int
	memoryThreshold float64 // threshold for memory pressure (0.0-1.0)
	goroutineSem    chan struct{}

	statsMutex sync.Mutex
	stats      ResourceStats
}

// ResourceStats holds resource usage statistics.
type ResourceStats struct {
	ActiveGoroutines     int     `json:"active_goroutines"`
	PeakGoroutines       int     `json:"peak_goroutines"`
	GoroutineBlocks      int     `json:"goroutine_blocks"`
	CurrentMemoryBytes   uint64  `json:"current_memory_bytes"`
	MemoryPressureEvents int     `json:"memory_pressure_events"`
	MemoryUtilization    float64 `json:"memory_utilization"`    // 0.0-1.0
	GoroutineUtilization float64 `json:"goroutine_utilization"` // 0.0-1.0
}

// ResourceConfig holds configuration for resource management.
type ResourceConfig struct {
	MaxMemoryBytes  uint64  // maximum heap usage in bytes (0 = no limit)
	MaxGoroutines   int     // maximum concurrent detections (0 = no limit)
	MemoryThreshold float64 // memory pressure threshold 0.0-1.0 (default: 0.8)
}

// DefaultResourceConfig returns sensible defaults for resource management.
func DefaultResourceConfig() ResourceConfig {
	return ResourceConfig{
		MaxMemoryBytes:  0,   // no memory limit by default
		MaxGoroutines:   0,   // no goroutine limit by default
		MemoryThreshold: 0.8, // 80% heap usage triggers pressure
	}
}

// NewResourceManager creates a new resource manager with the given configuration.
func NewResourceManager(config ResourceConfig) *ResourceManager {
	rm := &ResourceManager{
		maxMemoryBytes:  config.MaxMemoryBytes,
		maxGoroutines:   config.MaxGoroutines,
		memoryThreshold: config.MemoryThreshold,
	}

	if config.MaxGoroutines > 0 {
		rm.goroutineSem = make(chan struct{}, config.MaxGoroutines)
	}

	if rm.memoryThreshold <= 0 || rm.memoryThreshold > 1.0 {
		rm.memoryThreshold = 0.8
	}

	return rm
}

// Start is a no-op kept for symmetry with Stop and the Pipeline lifecycle;
// there is no background monitor to start.
func (rm *ResourceManager) Start() {}

// Stop is a no-op kept for symmetry with Start and the Pipeline lifecycle.
func (rm *ResourceManager) Stop() {}

// AcquireGoroutine attempts to acquire a concurrent-detection slot.
// Returns an error if the limit is exceeded and context is cancelled.
func (rm *ResourceManager) AcquireGoroutine(ctx context.Context) error {
	if rm.goroutineSem == nil {
		rm.updateGoroutineStats(1)
		return nil
	}

	select {
	case rm.goroutineSem <- struct{}{}:
		rm.updateGoroutineStats(1)
		return nil
	case <-ctx.Done():
		rm.statsMutex.Lock()
		rm.stats.GoroutineBlocks++
		rm.statsMutex.Unlock()
		return ctx.Err()
	}
}

// ReleaseGoroutine releases a concurrent-detection slot.
func (rm *ResourceManager) ReleaseGoroutine() {
	if rm.goroutineSem != nil {
		select {
		case <-rm.goroutineSem:
		default:
			// Should not happen, but don't block.
		}
	}
	rm.updateGoroutineStats(-1)
}

// CheckMemoryPressure samples the current heap via runtime.MemStats and
// returns true if usage is above the configured threshold.
func (rm *ResourceManager) CheckMemoryPressure() bool {
	if rm.maxMemoryBytes == 0 {
		return false
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	utilization := float64(m.Alloc) / float64(rm.maxMemoryBytes)

	rm.statsMutex.Lock()
	defer rm.statsMutex.Unlock()

	rm.stats.CurrentMemoryBytes = m.Alloc
	rm.stats.MemoryUtilization = utilization

	if utilization > rm.memoryThreshold {
		rm.stats.MemoryPressureEvents++
		return true
	}

	return false
}

// GetStats returns a copy of current resource statistics.
func (rm *ResourceManager) GetStats() ResourceStats {
	rm.statsMutex.Lock()
	defer rm.statsMutex.Unlock()

	stats := rm.stats
	if rm.maxGoroutines > 0 {
		stats.GoroutineUtilization = float64(stats.ActiveGoroutines) / float64(rm.maxGoroutines)
	}

	return stats
}

// ShouldThrottle returns true if processing should be throttled due to resource constraints.
func (rm *ResourceManager) ShouldThrottle() bool {
	return rm.CheckMemoryPressure()
}

// GetOptimalWorkerCount returns the recommended number of workers based on current resource usage.
func (rm *ResourceManager) GetOptimalWorkerCount() int {
	optimal := runtime.NumCPU()

	if rm.maxGoroutines > 0 && optimal > rm.maxGoroutines {
		optimal = rm.maxGoroutines
	}

	if rm.CheckMemoryPressure() {
		optimal /= 2
		if optimal < 1 {
			optimal = 1
		}
	}

	return optimal
}

// updateGoroutineStats updates goroutine usage statistics.
func (rm *ResourceManager) updateGoroutineStats(delta int) {
	rm.statsMutex.Lock()
	defer rm.statsMutex.Unlock()

	rm.stats.ActiveGoroutines += delta
	if rm.stats.ActiveGoroutines < 0 {
		rm.stats.ActiveGoroutines = 0
	}

	if rm.stats.ActiveGoroutines > rm.stats.PeakGoroutines {
		rm.stats.PeakGoroutines = rm.stats.ActiveGoroutines
	}
}

// ResourceError represents an error related to resource management.
type ResourceError struct {
	Type    string
	Message string
	Stats   ResourceStats
}

func (e ResourceError) Error() string {
	return fmt.Sprintf("resource error (%s): %s", e.Type, e.Message)
}

// NewMemoryLimitError creates a new memory limit error.
func NewMemoryLimitError(current, limit uint64) *ResourceError {
	return &ResourceError{
		Type:    "memory_limit",
		Message: fmt.Sprintf("memory usage %d bytes exceeds limit %d bytes", current, limit),
	}
}

// NewGoroutineLimitError creates a new goroutine limit error.
func NewGoroutineLimitError(current, limit int) *ResourceError {
	return &ResourceError{
		Type:    "goroutine_limit",
		Message: fmt.Sprintf("goroutine count %d exceeds limit %d", current, limit),
	}
}
