package server

import (
	"testing"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/MeKo-Tech/langdetect/internal/pipeline"
	"github.com/stretchr/testify/require"
)

// separableFactory returns a Factory loaded with two profiles whose n-gram
// distributions barely overlap, so Monte-Carlo detection converges reliably
// without depending on a real corpus.
func separableFactory(t *testing.T) *langdetect.Factory {
	t.Helper()
	f := langdetect.NewFactory()
	require.NoError(t, f.LoadProfiles([]langdetect.LanguageProfile{
		{
			Name:   "xx",
			Freq:   map[string]int{"x": 90, "xx": 80, "xxx": 70, " x": 10, "x ": 10},
			NWords: [3]int{90, 100, 70},
		},
		{
			Name:   "yy",
			Freq:   map[string]int{"y": 90, "yy": 80, "yyy": 70, " y": 10, "y ": 10},
			NWords: [3]int{90, 100, 70},
		},
	}))
	return f
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	factory := separableFactory(t)
	srv, err := NewServer(factory, Config{
		CORSOrigin: "*",
		TimeoutSec: 5,
		PipelineConfig: pipeline.Config{
			Detector: pipeline.DetectorConfig{Alpha: 0.5, MaxTextLength: 10000},
			Parallel: pipeline.ParallelConfig{MaxWorkers: 2},
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}
