package api

import (
	"net/http"

	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/service"
)

// PriorityHandler serves /priorities.
type PriorityHandler struct {
	priorities service.PriorityService
}

// NewPriorityHandler creates a new PriorityHandler.
func NewPriorityHandler(priorities service.PriorityService) *PriorityHandler {
	return &PriorityHandler{priorities: priorities}
}

// List handles GET /priorities/.
func (h *PriorityHandler) List(w http.ResponseWriter, r *http.Request) {
	priorities, err := h.priorities.GetAll(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, priorityResource)
		return
	}
	resp := make([]NamedResponse, 0, len(priorities))
	for _, p := range priorities {
		resp = append(resp, toPriorityResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /priorities/.
func (h *PriorityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PriorityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	priority, err := h.priorities.Create(r.Context(), req.Name)
	if err != nil {
		respondWithServiceError(w, r, err, priorityResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toPriorityResponse(priority))
}

// Get handles GET /priorities/{id}.
func (h *PriorityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, priorityResource)
	if !ok {
		return
	}
	priority, err := h.priorities.GetByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err, priorityResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPriorityResponse(priority))
}

// Update handles PUT /priorities/{id}.
func (h *PriorityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, priorityResource)
	if !ok {
		return
	}
	var req PriorityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	priority, err := h.priorities.Update(r.Context(), id, req.Name)
	if err != nil {
		respondWithServiceError(w, r, err, priorityResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toPriorityResponse(priority))
}

// Delete handles DELETE /priorities/{id}.
func (h *PriorityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, priorityResource)
	if !ok {
		return
	}
	if err := h.priorities.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err, priorityResource)
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Priority deleted successfully")
}
