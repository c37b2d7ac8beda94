// Package httpapi exposes the chatbot over HTTP: the chat and dependency
// health endpoints under /api/v1, a plain liveness probe at /health, and a
// welcome document at the root.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vk/travelbotgo/internal/amadeus"
	"github.com/vk/travelbotgo/internal/chat"
	"github.com/vk/travelbotgo/internal/ctxlog"
)

// maxBodyBytes caps the chat request body. Messages are a sentence or two;
// anything near the cap is abuse.
const maxBodyBytes = 64 << 10

// Bot is the part of the chat service the handlers need.
type Bot interface {
	ProcessMessage(ctx context.Context, message string) (*chat.Response, error)
	Health(ctx context.Context) error
}

// Handler builds the service's HTTP routing table.
func Handler(bot Bot) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleRoot)
	mux.HandleFunc("GET /health", handleLiveness)
	mux.HandleFunc("GET /api/v1/health", handleHealth(bot))
	mux.HandleFunc("POST /api/v1/chat", handleChat(bot))
	return mux
}

// handleRoot serves the welcome document.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "🤖 Travel Chatbot API",
		"status":  "running",
		"endpoints": map[string]string{
			"chat":   "/api/v1/chat",
			"health": "/api/v1/health",
		},
	})
}

// handleLiveness is the orchestrator probe target. It only proves the
// process is serving; it must never touch upstream APIs.
func handleLiveness(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// healthStatus is the /api/v1/health response body.
type healthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// handleHealth reports dependency health by checking the travel backend.
func handleHealth(bot Bot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := bot.Health(r.Context()); err != nil {
			ctxlog.FromContext(r.Context()).Error("Health check failed.", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, healthStatus{
				Status:    "unhealthy",
				Timestamp: time.Now().UTC(),
				Error:     err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, healthStatus{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	}
}

// handleChat runs one chat turn.
func handleChat(bot Bot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := ctxlog.FromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req chat.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request: body must be JSON with a 'message' field")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "Invalid request: 'message' must not be empty")
			return
		}

		logger.Info("Received chat message.", "preview", preview(req.Message))

		resp, err := bot.ProcessMessage(r.Context(), req.Message)
		if err != nil {
			if errors.Is(err, amadeus.ErrUnavailable) {
				logger.Error("Travel backend unavailable.", "error", err)
				writeError(w, http.StatusServiceUnavailable, "Travel services are temporarily unavailable. Please try again later.")
				return
			}
			logger.Error("Unexpected error processing chat.", "error", err)
			writeError(w, http.StatusInternalServerError, "I'm having trouble processing your request. Please try again.")
			return
		}

		logger.Info("Generated chat response.", "hotels", len(resp.Hotels))
		writeJSON(w, http.StatusOK, resp)
	}
}

// preview truncates a message for log lines.
func preview(message string) string {
	const max = 100
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "..."
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding failures at this point can only happen on a broken
	// connection; nothing useful left to do.
	_ = json.NewEncoder(w).Encode(body)
}

// writeError uses the {"detail": ...} shape for wire compatibility with
// existing clients.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
