package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyJobs(n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		text := strings.Repeat("xxx ", 20)
		if i%2 == 1 {
			text = strings.Repeat("yyy ", 20)
		}
		jobs[i] = Job{ID: fmt.Sprintf("job-%d", i), Text: text}
	}
	return jobs
}

func TestProcessJobsParallel_PreservesOrderAndLanguages(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).WithSeed(3).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	jobs := manyJobs(10)
	results, err := p.ProcessJobsParallel(jobs, DefaultParallelConfig())
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i, r := range results {
		assert.Equal(t, jobs[i].ID, r.ID)
		if i%2 == 0 {
			assert.Equal(t, "xx", r.Top())
		} else {
			assert.Equal(t, "yy", r.Top())
		}
	}
}

func TestProcessJobsParallel_RejectsEmpty(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	_, err = p.ProcessJobsParallel(nil, DefaultParallelConfig())
	assert.Error(t, err)
}

func TestProcessJobsParallel_ReportsProgress(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	var started, completed int
	cfg := DefaultParallelConfig()
	cfg.ProgressCallback = &countingCallback{onStart: func(int) { started++ }, onComplete: func() { completed++ }}

	jobs := manyJobs(6)
	_, err = p.ProcessJobsParallel(jobs, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, completed)
}

func TestProcessJobsParallelBatched_MatchesUnbatched(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).WithSeed(5).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	jobs := manyJobs(8)
	cfg := DefaultParallelConfig()
	cfg.BatchSize = 3

	results, err := p.ProcessJobsParallelBatched(jobs, cfg)
	require.NoError(t, err)
	require.Len(t, results, 8)
	for i, r := range results {
		assert.Equal(t, jobs[i].ID, r.ID)
	}
}

func TestProcessJobsParallelContext_RespectsCancellation(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err = p.ProcessJobsParallelContext(ctx, manyJobs(20), DefaultParallelConfig())
	assert.Error(t, err)
}

func TestCalculateParallelStats(t *testing.T) {
	jobs := manyJobs(4)
	results := []Result{{ID: "job-0"}, {ID: "job-1"}, {Err: assertErr}, {ID: "job-3"}}
	stats := CalculateParallelStats(jobs, results, 100*time.Millisecond, 2)
	assert.Equal(t, 4, stats.TotalJobs)
	assert.Equal(t, 3, stats.ProcessedJobs)
	assert.Equal(t, 1, stats.FailedJobs)
	assert.Equal(t, 2, stats.WorkerCount)
}

var assertErr = fmt.Errorf("boom")

type countingCallback struct {
	onStart    func(int)
	onComplete func()
}

func (c *countingCallback) OnStart(total int)       { c.onStart(total) }
func (c *countingCallback) OnProgress(cur, tot int) {}
func (c *countingCallback) OnComplete()             { c.onComplete() }
func (c *countingCallback) OnError(cur int, err error) {}
