package api

import (
	"net/http"

	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/service"
)

// TaskHandler serves /tasks.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /tasks/.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.GetAllTasks(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, taskResource)
		return
	}
	resp := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	task, err := h.tasks.CreateTask(r.Context(), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		PriorityID:  req.PriorityID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		respondWithServiceError(w, r, err, taskResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toTaskResponse(task))
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, taskResource)
	if !ok {
		return
	}
	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err, taskResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, taskResource)
	if !ok {
		return
	}
	var req TaskUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	task, err := h.tasks.UpdateTask(r.Context(), id, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		PriorityID:  req.PriorityID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		respondWithServiceError(w, r, err, taskResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, taskResource)
	if !ok {
		return
	}
	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err, taskResource)
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted successfully")
}
