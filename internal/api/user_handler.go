package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskdesk-api/internal/api/shared"
	"github.com/phrazzld/taskdesk-api/internal/service"
)

// UserHandler serves /users. Users are addressed by username.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users/.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAllUsers(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, userResource)
		return
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserListResponse{Users: names})
}

// Create handles POST /users/.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.users.CreateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, r, err, userResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /users/{username}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var req UserUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.users.UpdateUser(r.Context(), username, service.UserUpdate{Password: req.Password})
	if err != nil {
		respondWithServiceError(w, r, err, userResource)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserUpdatedResponse{
		Message: "User updated successfully",
		User:    user.Username,
	})
}

// Delete handles DELETE /users/{username}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.users.DeleteUser(r.Context(), username); err != nil {
		respondWithServiceError(w, r, err, userResource)
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "User deleted successfully")
}
