package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/pipeline"
)

const maxBatchDetectItems = 1000

// detectBatchHandler processes batch detection requests over a JSON list of
// texts, preserving input order in the response.
func (s *Server) detectBatchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BatchDetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detectRequestsTotal.WithLabelValues("batch", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Failed to parse JSON request: %v", err), http.StatusBadRequest)
		return
	}

	if len(req.Texts) == 0 {
		detectRequestsTotal.WithLabelValues("batch", "error").Inc()
		s.writeErrorResponse(w, "texts must not be empty", http.StatusBadRequest)
		return
	}
	if len(req.Texts) > maxBatchDetectItems {
		detectRequestsTotal.WithLabelValues("batch", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("batch too large (maximum %d items)", maxBatchDetectItems), http.StatusBadRequest)
		return
	}

	jobs := make([]pipeline.Job, len(req.Texts))
	for i, text := range req.Texts {
		jobs[i] = pipeline.Job{ID: fmt.Sprintf("%d", i), Text: text}
	}

	cfg := s.pipeline.Config()
	if req.Alpha != nil {
		cfg.Detector.Alpha = *req.Alpha
	}
	pl, err := pipeline.NewBuilder(s.factory).
		WithAlpha(cfg.Detector.Alpha).
		WithMaxTextLength(cfg.Detector.MaxTextLength).
		WithWorkers(cfg.Parallel.MaxWorkers).
		Build()
	if err != nil {
		detectRequestsTotal.WithLabelValues("batch", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Failed to build detection pipeline: %v", err), http.StatusInternalServerError)
		return
	}
	defer func() { _ = pl.Close() }()

	start := time.Now()
	results, err := pl.ProcessJobsParallelContext(r.Context(), jobs, pl.Config().Parallel)
	totalDuration := time.Since(start)
	if err != nil {
		detectRequestsTotal.WithLabelValues("batch", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("batch detection failed: %v", err), http.StatusInternalServerError)
		return
	}

	response := buildBatchResponse(results, totalDuration)

	detectRequestsTotal.WithLabelValues("batch", "success").Inc()
	for _, res := range response.Results {
		if res.Success {
			detectionsTotal.WithLabelValues(res.Result.Language).Inc()
		}
	}
	for _, text := range req.Texts {
		textLengthBytes.Observe(float64(len(text)))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding batch detect response: %v\n", err)
	}
}

func buildBatchResponse(results []pipeline.Result, totalDuration time.Duration) BatchDetectResponse {
	items := make([]BatchDetectResult, len(results))
	summary := BatchProcessingSummary{TotalItems: len(results)}

	for i, res := range results {
		idx := i
		if n, err := parseIndex(res.ID); err == nil {
			idx = n
		}
		if res.Err != nil {
			items[i] = BatchDetectResult{Index: idx, Error: res.Err.Error()}
			summary.Failed++
			continue
		}
		items[i] = BatchDetectResult{Index: idx, Success: true, Result: toDetectResult(res.Languages)}
		summary.Successful++
	}

	summary.TotalDuration = totalDuration.Seconds()
	if summary.TotalItems > 0 {
		summary.AvgItemTime = summary.TotalDuration / float64(summary.TotalItems)
	}

	return BatchDetectResponse{
		Success: summary.Failed == 0,
		Results: items,
		Summary: summary,
	}
}

func parseIndex(id string) (int, error) {
	var n int
	_, err := fmt.Sscanf(id, "%d", &n)
	return n, err
}
