package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/concierge-ai/concierge/internal/log"
)

// errorBody is the uniform error payload for every non-2xx response.
type errorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Details    string `json:"details"`
}

// writeJSON writes a JSON response with the given status code.
// Uses buffer-first strategy to ensure headers are only sent after successful
// encoding. This allows returning a proper 500 error if JSON encoding fails.
func writeJSON(w http.ResponseWriter, status int, data any, logger log.Logger) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Client disconnects are common and expected.
		logger.Debug("failed to write response body", "error", err)
	}
}

// writeError writes the uniform error payload. details is client-facing and
// must never carry internal error text for 5xx responses.
func writeError(w http.ResponseWriter, status int, message, details string, logger log.Logger) {
	writeJSON(w, status, errorBody{
		Error:      message,
		StatusCode: status,
		Details:    details,
	}, logger)
}
