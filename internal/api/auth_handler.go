package api

import (
	"net/http"

	"github.com/phrazzld/taskdesk-api/internal/api/middleware"
	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/service/auth"
)

// authErrors is the resource context for auth endpoints; register reports
// unknown priorities and duplicate usernames through it.
var authErrors = resource{notFound: "User not found"}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth auth.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService auth.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tokens, err := h.auth.Register(r.Context(), req.Username, req.Password, req.PriorityID)
	if err != nil {
		respondWithServiceError(w, r, err, authErrors)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toTokenResponse(tokens))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tokens, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, r, err, authErrors)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTokenResponse(tokens))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tokens, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondWithServiceError(w, r, err, authErrors)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTokenResponse(tokens))
}

// Me handles GET /auth/me. It validates the bearer token itself so that a
// deleted user's token is reported as 401.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		respondWithServiceError(w, r, err, authErrors)
		return
	}
	user, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil {
		respondWithServiceError(w, r, err, authErrors)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toMeResponse(user))
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// acknowledges the request.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithMessage(w, r, http.StatusOK, h.auth.Logout(r.Context()))
}

func toTokenResponse(t *auth.TokenPair) TokenResponse {
	return TokenResponse{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken}
}
