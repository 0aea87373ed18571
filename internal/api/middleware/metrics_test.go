package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Instrument(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	for _, path := range []string{"/tasks/1", "/tasks/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body),
		`taskdesk_http_requests_total{method="GET",route="/tasks/{id}",status="404"} 2`)
	assert.Contains(t, string(body), "taskdesk_http_request_duration_seconds")
	assert.Contains(t, string(body), "go_goroutines")
}
