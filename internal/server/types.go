package server

import (
	"net/http"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/MeKo-Tech/langdetect/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline    *pipeline.Pipeline
	factory     *langdetect.Factory
	corsOrigin  string
	timeoutSec  int
	rateLimiter *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host               string
	Port               int
	CORSOrigin         string
	TimeoutSec         int
	RateLimitRPS       int
	MaxTextBytesPerDay int64
	PipelineConfig     pipeline.Config
}

// HealthResponse reports whether the server has a usable language index.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// LanguagesResponse lists the languages the loaded index can distinguish.
type LanguagesResponse struct {
	Languages []string `json:"languages"`
	Count     int      `json:"count"`
}

// RankedLanguage is one entry of a detection's probability ranking.
type RankedLanguage struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// DetectRequest is the body of POST /v1/detect.
type DetectRequest struct {
	Text  string   `json:"text"`
	Alpha *float64 `json:"alpha,omitempty"`
}

// DetectResult is the detection outcome for a single text.
type DetectResult struct {
	Language   string           `json:"language"`
	Confidence float64          `json:"confidence"`
	Ranked     []RankedLanguage `json:"ranked,omitempty"`
}

// DetectResponse is the body of a POST /v1/detect response.
type DetectResponse struct {
	Success bool         `json:"success"`
	Result  DetectResult `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// BatchDetectRequest is the body of POST /v1/detect/batch.
type BatchDetectRequest struct {
	Texts []string `json:"texts"`
	Alpha *float64 `json:"alpha,omitempty"`
}

// BatchDetectResult is one item's outcome within a batch response, indexed
// to its position in the request's Texts slice.
type BatchDetectResult struct {
	Index   int          `json:"index"`
	Success bool         `json:"success"`
	Result  DetectResult `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// BatchProcessingSummary provides summary statistics for batch detection.
type BatchProcessingSummary struct {
	TotalItems    int     `json:"total_items"`
	Successful    int     `json:"successful"`
	Failed        int     `json:"failed"`
	TotalDuration float64 `json:"total_duration_seconds"`
	AvgItemTime   float64 `json:"avg_item_time_seconds"`
}

// BatchDetectResponse is the body of a POST /v1/detect/batch response.
type BatchDetectResponse struct {
	Success bool                   `json:"success"`
	Results []BatchDetectResult    `json:"results"`
	Summary BatchProcessingSummary `json:"summary"`
}

// errorResponse is the generic JSON error envelope every handler falls
// back to for 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewServer creates a new language detection server instance, building its
// own detection pipeline from the given Factory and configuration.
func NewServer(factory *langdetect.Factory, config Config) (*Server, error) {
	cfg := config.PipelineConfig

	pl, err := pipeline.NewBuilder(factory).
		WithAlpha(cfg.Detector.Alpha).
		WithMaxTextLength(cfg.Detector.MaxTextLength).
		WithWorkers(cfg.Parallel.MaxWorkers).
		WithBatchSize(cfg.Parallel.BatchSize).
		Build()
	if err != nil {
		return nil, err
	}

	var rl *RateLimiter
	if config.RateLimitRPS > 0 || config.MaxTextBytesPerDay > 0 {
		rl = NewRateLimiter(config.RateLimitRPS, config.RateLimitRPS*60, 0, config.MaxTextBytesPerDay)
	}

	return &Server{
		pipeline:    pl,
		factory:     factory,
		corsOrigin:  config.CORSOrigin,
		timeoutSec:  config.TimeoutSec,
		rateLimiter: rl,
	}, nil
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.pipeline != nil {
		return s.pipeline.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/v1/languages", s.corsMiddleware(s.languagesHandler))
	mux.HandleFunc("/v1/detect", s.corsMiddleware(s.rateLimitMiddleware(s.detectHandler)))
	mux.HandleFunc("/v1/detect/batch", s.corsMiddleware(s.rateLimitMiddleware(s.detectBatchHandler)))
	mux.HandleFunc("/v1/stream", s.streamWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
