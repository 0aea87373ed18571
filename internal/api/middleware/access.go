package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/service/auth"
)

// AccessDeniedMessage is the body message of a 403 from RequirePriority.
const AccessDeniedMessage = "Access denied: insufficient priority"

// AccessMiddleware guards routes by the caller's priority. It must run after
// AuthMiddleware.Authenticate.
type AccessMiddleware struct {
	checker auth.PriorityChecker
}

// NewAccessMiddleware creates an AccessMiddleware backed by checker.
func NewAccessMiddleware(checker auth.PriorityChecker) *AccessMiddleware {
	return &AccessMiddleware{checker: checker}
}

// RequirePriority lets the request through only when the authenticated user's
// priority is exactly required.
func (m *AccessMiddleware) RequirePriority(required string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetUsername(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		_, err := auth.Guard(r.Context(), m.checker, username, required,
			func(ctx context.Context) (struct{}, error) {
				next.ServeHTTP(w, r.WithContext(ctx))
				return struct{}{}, nil
			})
		if err == nil {
			return
		}
		if errors.Is(err, auth.ErrAccessDenied) {
			shared.RespondWithError(w, r, http.StatusForbidden, AccessDeniedMessage)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", err)
	})
}

// Require is RequirePriority in chi's func(http.Handler) http.Handler form.
func (m *AccessMiddleware) Require(required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.RequirePriority(required, next)
	}
}
