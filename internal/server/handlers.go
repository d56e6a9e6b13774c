package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
)

// healthHandler reports whether the server has a usable language index.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := "healthy"
	code := http.StatusOK
	if len(s.factory.LoadedLanguages()) == 0 {
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status: status,
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// languagesHandler returns the languages the loaded index can distinguish.
func (s *Server) languagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	langs := s.factory.LoadedLanguages()
	response := LanguagesResponse{Languages: langs, Count: len(langs)}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding languages response: %v\n", err)
	}
}

// detectHandler processes single-text detection requests.
func (s *Server) detectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detectRequestsTotal.WithLabelValues("single", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Failed to parse JSON request: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		detectRequestsTotal.WithLabelValues("single", "error").Inc()
		s.writeErrorResponse(w, "text must not be empty", http.StatusBadRequest)
		return
	}

	alpha := s.pipeline.Config().Detector.Alpha
	if req.Alpha != nil {
		alpha = *req.Alpha
	}

	result, err := s.runDetection(req.Text, alpha)
	if err != nil {
		detectRequestsTotal.WithLabelValues("single", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("detection failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	detectRequestsTotal.WithLabelValues("single", "success").Inc()
	textLengthBytes.Observe(float64(len(req.Text)))
	detectionsTotal.WithLabelValues(result.Language).Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DetectResponse{Success: true, Result: result}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding detect response: %v\n", err)
	}
}

// runDetection builds a one-off Detector at the given alpha and runs it over
// text, returning the ranked result.
func (s *Server) runDetection(text string, alpha float64) (DetectResult, error) {
	det, err := s.factory.NewDetectorWithAlpha(alpha)
	if err != nil {
		return DetectResult{}, err
	}
	if err := det.Append(text); err != nil {
		return DetectResult{}, err
	}
	probs, err := det.Probabilities()
	if err != nil {
		return DetectResult{}, err
	}
	return toDetectResult(probs), nil
}

// toDetectResult converts a ranked probability list into the API's result
// shape, defaulting to UnknownLanguage when detection yields nothing.
func toDetectResult(probs []langdetect.LanguageProbability) DetectResult {
	if len(probs) == 0 {
		return DetectResult{Language: langdetect.UnknownLanguage}
	}

	ranked := make([]RankedLanguage, len(probs))
	for i, p := range probs {
		ranked[i] = RankedLanguage{Language: p.Lang, Confidence: p.Prob}
	}

	return DetectResult{
		Language:   ranked[0].Language,
		Confidence: ranked[0].Confidence,
		Ranked:     ranked,
	}
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResponse{Success: false, Error: message}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}
