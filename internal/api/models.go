package api

import (
	"time"

	"github.com/tasknest/tasknest-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title    string `json:"title"    validate:"required"`
	Deadline string `json:"deadline" validate:"required"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// Title and deadline are required even for a completed-only toggle; the
// update re-runs the full creation validation on every call.
type UpdateTaskRequest struct {
	Title     string `json:"title"    validate:"required"`
	Deadline  string `json:"deadline" validate:"required"`
	Completed *bool  `json:"completed,omitempty"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Deadline  string    `json:"deadline"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// taskToResponse transforms a domain Task into its API representation.
func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID.String(),
		UserID:    t.UserID.String(),
		Title:     t.Title,
		Deadline:  t.Deadline,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
