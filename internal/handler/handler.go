// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hellosvc/hellosvc/internal/model"
)

// Greeting is the body of GET /.
const Greeting = "Hello, World!"

// Handler serves the greeting and status routes.
type Handler struct {
	now func() time.Time
}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{now: time.Now}
}

// Hello returns the plain-text greeting.
// @Summary Greeting
// @Produce plain
// @Success 200 {string} string "Hello, World!"
// @Router / [get]
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Greeting))
}

// Status reports that the service is up, stamped with the time the
// handler ran.
// @Summary Service status
// @Produce json
// @Success 200 {object} model.StatusResponse
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.NewStatusResponse(h.now()))
}

// NotFound answers every request no route matched, whatever the method.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "resource not found",
	}
	writeJSON(w, http.StatusNotFound, response)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; all that is left is to record it.
		slog.Error("failed to encode response", "error", err)
	}
}
