package api

import (
	"net/http"
	"testing"

	"github.com/phrazzld/taskdesk-api/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRoutes_RegisterLoginMe(t *testing.T) {
	s := newTestServer(t)
	s.do("POST", "/priorities/", map[string]string{"name": "High"}, "")

	rec := s.do("POST", "/auth/register", map[string]interface{}{
		"username": "alice", "password": "secret", "priority_id": 1,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	registered := decodeBody[TokenResponse](t, rec)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	rec = s.do("POST", "/auth/login", map[string]string{"username": "alice", "password": "secret"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tokens := decodeBody[TokenResponse](t, rec)

	rec = s.do("GET", "/auth/me", nil, tokens.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"alice","priority":"High"}`, rec.Body.String())

	rec = s.do("POST", "/auth/refresh", map[string]string{"refresh_token": tokens.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody[TokenResponse](t, rec).AccessToken)

	rec = s.do("POST", "/auth/refresh", map[string]string{"refresh_token": tokens.AccessToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do("POST", "/auth/logout", nil, tokens.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logout successful"}`, rec.Body.String())
}

func TestAuthRoutes_RegisterErrors(t *testing.T) {
	s := newTestServer(t)
	s.do("POST", "/priorities/", map[string]string{"name": "High"}, "")
	s.register("alice", 1)

	rec := s.do("POST", "/auth/register", map[string]interface{}{
		"username": "alice", "password": "x", "priority_id": 1,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Username already exists"}`, rec.Body.String())

	rec = s.do("POST", "/auth/register", map[string]interface{}{
		"username": "bob", "password": "x", "priority_id": 7,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Priority not found"}`, rec.Body.String())
}

func TestAuthRoutes_LoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.do("POST", "/priorities/", map[string]string{"name": "High"}, "")
	s.register("alice", 1)

	for _, creds := range []map[string]string{
		{"username": "alice", "password": "wrong"},
		{"username": "nobody", "password": "secret"},
	} {
		rec := s.do("POST", "/auth/login", creds, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid username or password"}`, rec.Body.String())
	}
}

func TestAuthRoutes_MeWithoutToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("GET", "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestAuthRoutes_MeForDeletedUser(t *testing.T) {
	s := newTestServer(t)
	s.do("POST", "/priorities/", map[string]string{"name": "High"}, "")
	token := s.register("alice", 1)
	s.do("DELETE", "/users/alice", nil, "")

	rec := s.do("GET", "/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	s := newTestServer(t, func(r *Routes) {
		r.AuthLimiter = middleware.NewRateLimiter(0.001, 1)
	})

	creds := map[string]string{"username": "x", "password": "y"}
	assert.Equal(t, http.StatusUnauthorized, s.do("POST", "/auth/login", creds, "").Code)

	rec := s.do("POST", "/auth/login", creds, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"Too many requests"}`, rec.Body.String())

	// Only the credential endpoints are throttled.
	assert.Equal(t, http.StatusOK, s.do("GET", "/priorities/", nil, "").Code)
}
