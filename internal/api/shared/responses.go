package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskdesk-api/internal/platform/logger"
	"github.com/phrazzld/taskdesk-api/internal/redact"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is a plain acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
// The request trace ID, if any, is echoed in the X-Trace-ID header.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if traceID := GetTraceID(r.Context()); traceID != "" {
		w.Header().Set(TraceIDHeader, traceID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithMessage writes a {"message": ...} body with the given status.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, MessageResponse{Message: message})
}

// RespondWithError writes a JSON error response with the given status code and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger.FromContextOrDefault(r.Context()).Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{Message: message})
}

// RespondWithErrorAndLog writes userMessage to the client and logs err after
// redaction. 5xx responses log at ERROR, 429 at WARN, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}
	logger.FromContextOrDefault(r.Context()).LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{Message: userMessage})
}
