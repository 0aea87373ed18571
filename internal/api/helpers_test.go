package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskdesk-api/internal/api/middleware"
	"github.com/phrazzld/taskdesk-api/internal/config"
	"github.com/phrazzld/taskdesk-api/internal/mocks"
	"github.com/phrazzld/taskdesk-api/internal/service"
	"github.com/phrazzld/taskdesk-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// testServer wires real services over the in-memory stores.
type testServer struct {
	t       *testing.T
	stores  *mocks.MockStores
	jwt     auth.JWTService
	handler http.Handler
}

func newTestServer(t *testing.T, configure ...func(*Routes)) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores := mocks.NewMockStores()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)

	authService := auth.NewAuthService(stores.Users, stores.Priorities, stores.Tx,
		jwtService, auth.NewBcryptVerifier(), logger)

	routes := &Routes{
		Users:      NewUserHandler(service.NewUserService(stores.Users, stores.Tx, logger)),
		Priorities: NewPriorityHandler(service.NewPriorityService(stores.Priorities, stores.Tx, logger)),
		Categories: NewCategoryHandler(service.NewCategoryService(stores.Categories, stores.Tx, logger)),
		Tasks: NewTaskHandler(service.NewTaskService(
			stores.Tasks, stores.Priorities, stores.Categories, stores.Tx, logger)),
		Auth:          NewAuthHandler(authService),
		Authenticator: middleware.NewAuthMiddleware(jwtService),
		Access:        middleware.NewAccessMiddleware(auth.NewAccessChecker(stores.Users, logger)),
		AdminPriority: "High",
	}
	for _, fn := range configure {
		fn(routes)
	}

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(logger))
	routes.Mount(r)

	return &testServer{t: t, stores: stores, jwt: jwtService, handler: r}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// register creates a user holding priorityID and returns its access token.
func (s *testServer) register(username string, priorityID int64) string {
	s.t.Helper()
	rec := s.do("POST", "/auth/register", map[string]interface{}{
		"username":    username,
		"password":    "secret-" + username,
		"priority_id": priorityID,
	}, "")
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens TokenResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	return tokens.AccessToken
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
