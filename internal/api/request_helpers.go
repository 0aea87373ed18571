package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/domain"
)

// getPathID parses a positive integer path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, fmt.Errorf("%s is required: %w", paramName, domain.ErrInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s has invalid format: %w", paramName, domain.ErrInvalidID)
	}
	return id, nil
}

// handlePathID writes a 404 and returns false when the id parameter is not a
// positive integer. Such ids can never match a row.
func handlePathID(w http.ResponseWriter, r *http.Request, res resource) (int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, res.notFound)
		return 0, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into req and validates it, writing
// a 400 and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}
	return true
}
