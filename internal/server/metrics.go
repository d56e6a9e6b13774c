package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langdetect_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langdetect_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Detection metrics.
	detectRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langdetect_detect_requests_total",
			Help: "Total number of detection requests",
		},
		[]string{"type", "status"}, // type: single, batch, websocket
	)

	detectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langdetect_detections_total",
			Help: "Total number of successful detections, by top-ranked language",
		},
		[]string{"language"},
	)

	textLengthBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langdetect_text_length_bytes",
			Help:    "Length in bytes of text submitted for detection",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	// Rate limiting metrics.
	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langdetect_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"}, // type: minute, hour, requests, data
	)

	// WebSocket metrics.
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "langdetect_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langdetect_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
