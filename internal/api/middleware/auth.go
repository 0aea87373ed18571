package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", auth.ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

// Authenticate validates the access token from the Authorization header and
// stores its username in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r)
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			} else {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			}
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUsername(r.Context(), claims.Username)))
	})
}

// GetUsername extracts the authenticated username from the request context.
func GetUsername(r *http.Request) (string, bool) {
	return shared.UsernameFromContext(r.Context())
}
