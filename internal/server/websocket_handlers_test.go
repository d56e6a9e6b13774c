package server

import (
	"encoding/json"
	"testing"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConnWriter captures every message written to it, in order.
type fakeConnWriter struct {
	messages [][]byte
}

func (f *fakeConnWriter) WriteMessage(messageType int, data []byte) error {
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeConnWriter) last() WebSocketStreamResponse {
	var resp WebSocketStreamResponse
	_ = json.Unmarshal(f.messages[len(f.messages)-1], &resp)
	return resp
}

func TestSendWebSocketResponse(t *testing.T) {
	srv := newTestServer(t)
	conn := &fakeConnWriter{}

	result := DetectResult{Language: "xx", Confidence: 0.9}
	srv.sendWebSocketResponse(conn, WebSocketStreamResponse{Type: "result", Result: &result})

	require.Len(t, conn.messages, 1)
	resp := conn.last()
	assert.Equal(t, "result", resp.Type)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "xx", resp.Result.Language)
}

func TestSendWebSocketError(t *testing.T) {
	srv := newTestServer(t)
	conn := &fakeConnWriter{}

	srv.sendWebSocketError(conn, "invalid_request", "bad input")

	resp := conn.last()
	assert.Equal(t, "error", resp.Type)
	assert.Equal(t, "invalid_request", resp.ErrorType)
	assert.Equal(t, "bad input", resp.Error)
}

func TestToDetectResult_EmptyYieldsUnknown(t *testing.T) {
	result := toDetectResult(nil)
	assert.Equal(t, langdetect.UnknownLanguage, result.Language)
	assert.Empty(t, result.Ranked)
}

func TestToDetectResult_RanksByInputOrder(t *testing.T) {
	probs := []langdetect.LanguageProbability{
		{Lang: "xx", Prob: 0.8},
		{Lang: "yy", Prob: 0.2},
	}
	result := toDetectResult(probs)
	assert.Equal(t, "xx", result.Language)
	assert.Equal(t, 0.8, result.Confidence)
	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "yy", result.Ranked[1].Language)
}
