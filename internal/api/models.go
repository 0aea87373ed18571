package api

import "github.com/phrazzld/taskdesk-api/internal/domain"

// UserRequest is the payload of POST /users/.
type UserRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserUpdateRequest is the payload of PUT /users/{username}.
type UserUpdateRequest struct {
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
}

// UserResponse never includes the password hash.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserListResponse lists usernames only.
type UserListResponse struct {
	Users []string `json:"users"`
}

// UserUpdatedResponse acknowledges PUT /users/{username}.
type UserUpdatedResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

// PriorityRequest is the payload of POST and PUT on /priorities/.
type PriorityRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// CategoryRequest is the payload of POST and PUT on /categories/.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// NamedResponse is the body of a priority or category.
type NamedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskRequest is the payload of POST /tasks/.
type TaskRequest struct {
	Title       string  `json:"title"        validate:"required,max=120"`
	Description *string `json:"description"  validate:"omitempty,max=255"`
	Completed   bool    `json:"completed"`
	PriorityID  int64   `json:"priority_id"  validate:"required,gt=0"`
	CategoryIDs []int64 `json:"category_ids" validate:"omitempty,dive,gt=0"`
}

// TaskUpdateRequest is the payload of PUT /tasks/{id}. Absent fields are
// left unchanged.
type TaskUpdateRequest struct {
	Title       *string  `json:"title"        validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description"  validate:"omitempty,max=255"`
	Completed   *bool    `json:"completed"`
	PriorityID  *int64   `json:"priority_id"  validate:"omitempty,gt=0"`
	CategoryIDs *[]int64 `json:"category_ids" validate:"omitempty,dive,gt=0"`
}

// TaskResponse embeds the priority name and the resolved categories.
type TaskResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Completed   bool            `json:"completed"`
	Priority    string          `json:"priority"`
	Categories  []NamedResponse `json:"categories"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Username   string `json:"username"    validate:"required,max=80"`
	Password   string `json:"password"    validate:"required,max=72"`
	PriorityID int64  `json:"priority_id" validate:"required,gt=0"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the payload of POST /auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MeResponse describes the authenticated user. Priority is null when the
// user holds none.
type MeResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Priority *string `json:"priority"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

func toPriorityResponse(p *domain.Priority) NamedResponse {
	return NamedResponse{ID: p.ID, Name: p.Name}
}

func toCategoryResponse(c *domain.Category) NamedResponse {
	return NamedResponse{ID: c.ID, Name: c.Name}
}

func toTaskResponse(t *domain.Task) TaskResponse {
	categories := make([]NamedResponse, 0, len(t.Categories))
	for _, c := range t.Categories {
		categories = append(categories, toCategoryResponse(c))
	}
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.PriorityName(),
		Categories:  categories,
	}
}

func toMeResponse(u *domain.User) MeResponse {
	resp := MeResponse{ID: u.ID, Username: u.Username}
	if u.Priority != nil {
		name := u.Priority.Name
		resp.Priority = &name
	}
	return resp
}
