package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessText_ReturnsErrorOnUnrecognizedText(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).WithSeed(1).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	res := p.ProcessText("doc1", "123 456")
	assert.Error(t, res.Err)
	assert.Equal(t, "unknown", res.Top())
}

func TestProcessTextContext_RespectsCancellation(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.ProcessTextContext(ctx, "doc1", strings.Repeat("xxx ", 10))
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestProcessTexts_PreservesOrder(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).WithSeed(2).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	jobs := []Job{
		{ID: "a", Text: strings.Repeat("xxx ", 30)},
		{ID: "b", Text: strings.Repeat("yyy ", 30)},
	}
	results, err := p.ProcessTexts(jobs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "xx", results[0].Top())
	assert.Equal(t, "b", results[1].ID)
	assert.Equal(t, "yy", results[1].Top())
}

func TestProcessTexts_RejectsEmptyJobList(t *testing.T) {
	p, err := NewBuilder(separableFactory(t)).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	_, err = p.ProcessTexts(nil)
	assert.Error(t, err)
}

func TestRun_BuildsDetectorsFromSharedFactory(t *testing.T) {
	f := separableFactory(t)
	jobs := []Job{
		{ID: "a", Text: strings.Repeat("xxx ", 30)},
		{ID: "b", Text: strings.Repeat("yyy ", 30)},
		{ID: "c", Text: strings.Repeat("xxx ", 30)},
	}
	results := Run(context.Background(), f, jobs, DefaultParallelConfig())
	require.Len(t, results, 3)
	assert.Equal(t, "xx", results[0].Top())
	assert.Equal(t, "yy", results[1].Top())
	assert.Equal(t, "xx", results[2].Top())
}

func TestProcessText_RecordsIntoProfiler(t *testing.T) {
	prof := &Profiler{}
	p, err := NewBuilder(separableFactory(t)).WithProfiler(prof).Build()
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	p.ProcessText("doc1", strings.Repeat("xxx ", 20))
	snap := prof.Snapshot()
	assert.EqualValues(t, 1, snap["texts"])
}
