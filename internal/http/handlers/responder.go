package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/cfb-data-service/internal/http/middleware"
	"github.com/preston-bernstein/cfb-data-service/internal/http/requestutil"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
)

// Envelope is the response shape shared by every /api route.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Metadata  any    `json:"metadata,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// AnalysisEnvelope is the response shape for the matchup routes.
type AnalysisEnvelope struct {
	Success   bool   `json:"success"`
	Matchup   any    `json:"matchup,omitempty"`
	Analysis  any    `json:"analysis,omitempty"`
	Context   string `json:"context,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	body := map[string]string{"error": message}
	if reqID := requestID(r); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeEnvelopeError reports a failed /api call with an empty data array.
func writeEnvelopeError(w http.ResponseWriter, r *http.Request, status int, message string, metadata any, logger *slog.Logger) {
	writeJSON(w, status, Envelope{
		Success:   false,
		Data:      []any{},
		Metadata:  metadata,
		Error:     message,
		RequestID: requestID(r),
	}, logger)
}

func requestID(r *http.Request) string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	return reqID
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
