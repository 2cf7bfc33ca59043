package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
)

// TaskPatch carries the fields a task update may change. Only the documented
// fields are patchable; in particular the owning user can never be rewritten.
// A nil Completed leaves the stored value untouched.
type TaskPatch struct {
	Title     string
	Deadline  string
	Completed *bool
}

// TaskStore defines the interface for task data persistence.
// Every read and write is scoped to the owning user: operations taking a
// userID must behave identically for "task does not exist" and "task belongs
// to someone else".
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUser returns all tasks owned by the given user, in store-native
	// order. An owner with no tasks yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update applies the patch to the task matching both id and userID
	// and returns the updated record.
	// Returns ErrTaskNotFound if no task matches.
	Update(ctx context.Context, id, userID uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// Delete removes the task matching both id and userID.
	// Returns ErrTaskNotFound if no task matches.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
