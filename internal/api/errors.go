package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/service"
	"github.com/phrazzld/taskdesk-api/internal/service/auth"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// resource names the messages used for one resource's errors.
type resource struct {
	notFound  string
	duplicate string
	inUse     string
}

var (
	userResource = resource{
		notFound:  "User not found",
		duplicate: "Username already exists",
	}
	priorityResource = resource{
		notFound:  "Priority not found",
		duplicate: "Priority already exists",
		inUse:     "Priority is still in use",
	}
	categoryResource = resource{
		notFound:  "Category not found",
		duplicate: "Category already exists",
	}
	taskResource = resource{
		notFound: "Task not found",
	}
)

// MapErrorToStatusCode maps service and auth errors to HTTP status codes.
// Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrAccessDenied):
		return http.StatusForbidden

	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInUse):
		return http.StatusConflict

	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrPriorityNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// safeErrorMessage returns the client-facing message for err in the context
// of res. Internal details never reach the client.
func safeErrorMessage(err error, res resource) string {
	switch {
	case err == nil:
		return unexpectedErrorMessage

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Invalid refresh token"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"
	case errors.Is(err, auth.ErrAccessDenied):
		return "Access denied: insufficient priority"

	case errors.Is(err, service.ErrNotFound) && res.notFound != "":
		return res.notFound
	case errors.Is(err, service.ErrDuplicateName) && res.duplicate != "":
		return res.duplicate
	case errors.Is(err, service.ErrDuplicateUsername):
		return userResource.duplicate
	case errors.Is(err, service.ErrPriorityNotFound):
		return priorityResource.notFound
	case errors.Is(err, service.ErrCategoryNotFound):
		return categoryResource.notFound
	case errors.Is(err, service.ErrInUse):
		if res.inUse != "" {
			return res.inUse
		}
		return "Resource is still in use"

	case errors.Is(err, domain.ErrValidation):
		return validationMessage(err)
	}
	return unexpectedErrorMessage
}

// validationMessage extracts the domain message from a wrapped validation
// error, e.g. "priority name cannot be empty".
func validationMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return "Validation error: " + msg[i+len(prefix):]
	}
	return "Validation error"
}

// respondWithServiceError writes the mapped status and message for err.
// 5xx responses are logged with the redacted error.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, res resource) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, safeErrorMessage(err, res), err)
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field by its JSON name without echoing the submitted value.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte":
		return "must be positive"
	default:
		return "validation failed"
	}
}
