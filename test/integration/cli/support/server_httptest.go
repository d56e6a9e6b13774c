package support

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
)

// HTTPTestServerWrapper wraps httptest.Server for integration tests.
type HTTPTestServerWrapper struct {
	Server       *httptest.Server
	MockDetector *MockDetector
}

// MockDetector provides predictable language-detection results for testing.
type MockDetector struct {
	ShouldFail bool
	ErrorMsg   string
}

// rankedGuess returns a deterministic ranking for a piece of text, based on simple
// substring heuristics over the languages shipped with the project's sample profiles.
func (m *MockDetector) rankedGuess(text string) (string, float64, []map[string]interface{}) {
	lower := strings.ToLower(text)
	switch {
	case strings.ContainsAny(lower, "速川岸飼犬") || strings.Contains(text, "。"):
		return "ja", 0.91, []map[string]interface{}{
			{"language": "ja", "confidence": 0.91},
			{"language": "zh-cn", "confidence": 0.06},
		}
	case strings.Contains(lower, "le ") || strings.Contains(lower, "chien"):
		return "fr", 0.88, []map[string]interface{}{
			{"language": "fr", "confidence": 0.88},
			{"language": "en", "confidence": 0.09},
		}
	default:
		return "en", 0.93, []map[string]interface{}{
			{"language": "en", "confidence": 0.93},
			{"language": "fr", "confidence": 0.04},
		}
	}
}

// withCORS wraps a handler with the same preflight behavior as the real server's corsMiddleware.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// createTestHTTPServer creates an httptest server with mock handlers mirroring the real server's routes.
func (testCtx *TestContext) createTestHTTPServer(port int) error {
	_ = port

	mockDetector := &MockDetector{}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", withCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "healthy"})
	}))

	mux.HandleFunc("/v1/languages", withCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"languages": []string{"en", "fr", "ja", "zh-cn"},
			"count":     4,
		})
	}))

	mux.HandleFunc("/v1/detect", withCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"success":false,"error":"Failed to parse JSON request"}`, http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			http.Error(w, `{"success":false,"error":"text must not be empty"}`, http.StatusBadRequest)
			return
		}
		if mockDetector.ShouldFail {
			http.Error(w, fmt.Sprintf(`{"success":false,"error":%q}`, mockDetector.ErrorMsg), http.StatusUnprocessableEntity)
			return
		}

		lang, conf, ranked := mockDetector.rankedGuess(req.Text)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"result": map[string]interface{}{
				"language":   lang,
				"confidence": conf,
				"ranked":     ranked,
			},
		})
	}))

	mux.HandleFunc("/v1/detect/batch", withCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Texts []string `json:"texts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"success":false,"error":"Failed to parse JSON request"}`, http.StatusBadRequest)
			return
		}

		results := make([]map[string]interface{}, 0, len(req.Texts))
		for i, text := range req.Texts {
			lang, conf, _ := mockDetector.rankedGuess(text)
			results = append(results, map[string]interface{}{
				"index":      i,
				"language":   lang,
				"confidence": conf,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "results": results})
	}))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)

	u, err := url.Parse(server.URL)
	if err != nil {
		server.Close()
		return fmt.Errorf("failed to parse server URL: %w", err)
	}

	testCtx.ServerHost = u.Hostname()
	if portStr := u.Port(); portStr != "" {
		testCtx.ServerPort, _ = strconv.Atoi(portStr)
	}

	testCtx.HTTPTestServer = &HTTPTestServerWrapper{
		Server:       server,
		MockDetector: mockDetector,
	}

	return nil
}

// stopTestHTTPServer stops the httptest server.
func (testCtx *TestContext) stopTestHTTPServer() error {
	if testCtx.HTTPTestServer != nil && testCtx.HTTPTestServer.Server != nil {
		testCtx.HTTPTestServer.Server.Close()
		testCtx.HTTPTestServer = nil
	}
	return nil
}
