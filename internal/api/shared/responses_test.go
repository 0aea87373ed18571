package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskdesk-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusCreated, map[string]int64{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, GetTraceID(req.Context()), rec.Header().Get(TraceIDHeader))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest("PUT", "/priorities/999", nil)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Priority not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get(TraceIDHeader))
	assert.JSONEq(t, `{"message":"Priority not found"}`, rec.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	req := httptest.NewRequest("POST", "/users/", nil)
	req = req.WithContext(logger.WithLogger(SetTraceID(context.Background()), log))
	rec := httptest.NewRecorder()

	err := errors.New("dial failed: postgres://app:hunter2@db:5432/tasks")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred", err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"An unexpected error occurred"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hunter2")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, GetTraceID(req.Context()), entry["trace_id"])
	assert.NotContains(t, logs.String(), "hunter2")
}

func TestRespondWithErrorAndLogLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusBadRequest, "DEBUG"},
		{http.StatusTooManyRequests, "WARN"},
		{http.StatusBadGateway, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var logs bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			req := httptest.NewRequest("GET", "/", nil)
			req = req.WithContext(logger.WithLogger(req.Context(), log))

			RespondWithErrorAndLog(httptest.NewRecorder(), req, tt.status, "x", nil)

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
		})
	}
}
