package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketStreamMessage is one client message in the text-streaming
// protocol: repeated messages append text to the connection's accumulated
// buffer, and a message with Done set triggers detection over everything
// appended so far.
type WebSocketStreamMessage struct {
	Text  string   `json:"text,omitempty"`
	Alpha *float64 `json:"alpha,omitempty"`
	Done  bool     `json:"done,omitempty"`
}

// WebSocketConnWriter is an interface for writing WebSocket messages.
type WebSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// WebSocketStreamResponse is one server message in the text-streaming
// protocol.
type WebSocketStreamResponse struct {
	Type      string        `json:"type"` // "ack", "result", "error"
	Result    *DetectResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	ErrorType string        `json:"error_type,omitempty"`
}

// streamWebSocketHandler handles WebSocket connections for incremental,
// chunked language detection.
func (s *Server) streamWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection
// until it closes.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}()

	var det *langdetect.Detector
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			det = s.handleWebSocketMessage(conn, data, det)
		}
	}
}

// handleWebSocketMessage applies one stream message to det (creating it on
// first use, or after a prior Done resets it) and returns the detector to
// carry into the next message.
func (s *Server) handleWebSocketMessage(
	conn *websocket.Conn,
	data []byte,
	det *langdetect.Detector,
) *langdetect.Detector {
	var msg WebSocketStreamMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendWebSocketError(conn, "invalid_request", fmt.Sprintf("Failed to parse message: %v", err))
		return det
	}

	if det == nil {
		alpha := s.pipeline.Config().Detector.Alpha
		if msg.Alpha != nil {
			alpha = *msg.Alpha
		}
		newDet, err := s.factory.NewDetectorWithAlpha(alpha)
		if err != nil {
			detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
			s.sendWebSocketError(conn, "processing_error", fmt.Sprintf("detector unavailable: %v", err))
			return det
		}
		det = newDet
	}

	if msg.Text != "" {
		if err := det.Append(msg.Text); err != nil {
			detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
			s.sendWebSocketError(conn, "processing_error", fmt.Sprintf("failed to append text: %v", err))
			return det
		}
		textLengthBytes.Observe(float64(len(msg.Text)))
	}

	if !msg.Done {
		return det
	}

	probs, err := det.Probabilities()
	if err != nil {
		detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, "processing_error", fmt.Sprintf("detection failed: %v", err))
		return nil
	}

	result := toDetectResult(probs)
	detectRequestsTotal.WithLabelValues("websocket", "success").Inc()
	detectionsTotal.WithLabelValues(result.Language).Inc()

	s.sendWebSocketResponse(conn, WebSocketStreamResponse{Type: "result", Result: &result})
	return nil
}

// sendWebSocketResponse sends a response message over WebSocket.
func (s *Server) sendWebSocketResponse(conn WebSocketConnWriter, response WebSocketStreamResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

// sendWebSocketError sends an error message over WebSocket.
func (s *Server) sendWebSocketError(conn WebSocketConnWriter, errorType, message string) {
	s.sendWebSocketResponse(conn, WebSocketStreamResponse{
		Type:      "error",
		Error:     message,
		ErrorType: errorType,
	})
}
