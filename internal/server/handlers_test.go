package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Healthy(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.healthHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	srv.healthHandler(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLanguagesHandler(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/languages", nil)
	srv.languagesHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp LanguagesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"xx", "yy"}, resp.Languages)
	assert.Equal(t, 2, resp.Count)
}

func TestDetectHandler_Success(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(DetectRequest{Text: strings.Repeat("xxx ", 30)})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader(body))
	srv.detectHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp DetectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "xx", resp.Result.Language)
	assert.NotEmpty(t, resp.Result.Ranked)
}

func TestDetectHandler_EmptyText(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(DetectRequest{Text: "   "})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader(body))
	srv.detectHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetectHandler_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/detect", strings.NewReader("not json"))
	srv.detectHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetectHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/detect", nil)
	srv.detectHandler(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestDetectHandler_AlphaOverride(t *testing.T) {
	srv := newTestServer(t)

	alpha := 0.9
	body, _ := json.Marshal(DetectRequest{Text: strings.Repeat("yyy ", 30), Alpha: &alpha})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/detect", bytes.NewReader(body))
	srv.detectHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp DetectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "yy", resp.Result.Language)
}
