package api

import (
	"net/http"

	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/service"
)

// CategoryHandler serves /categories.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /categories/.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetAll(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, categoryResource)
		return
	}
	resp := make([]NamedResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /categories/.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	category, err := h.categories.Create(r.Context(), req.Name)
	if err != nil {
		respondWithServiceError(w, r, err, categoryResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toCategoryResponse(category))
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, categoryResource)
	if !ok {
		return
	}
	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err, categoryResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toCategoryResponse(category))
}

// Update handles PUT /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, categoryResource)
	if !ok {
		return
	}
	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	category, err := h.categories.Update(r.Context(), id, req.Name)
	if err != nil {
		respondWithServiceError(w, r, err, categoryResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, categoryResource)
	if !ok {
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err, categoryResource)
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Category deleted successfully")
}
