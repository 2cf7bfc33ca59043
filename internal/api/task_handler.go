package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/api/shared"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/platform/mail"
	"github.com/tasknest/tasknest-api/internal/store"
)

// TaskHandler handles task CRUD HTTP requests.
type TaskHandler struct {
	taskStore store.TaskStore
	userStore store.UserStore
	notifier  mail.Notifier
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// The user store resolves the notification address on task creation; the
// notifier may be nil, which disables reminders entirely.
func NewTaskHandler(
	taskStore store.TaskStore,
	userStore store.UserStore,
	notifier mail.Notifier,
	logger *slog.Logger,
) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskStore: taskStore,
		userStore: userStore,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tasks requests.
// After a successful insert it resolves the caller's email and dispatches a
// reminder without waiting for delivery.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token missing")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title and deadline required")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title and deadline required")
		return
	}

	if err := domain.ValidateDeadline(req.Deadline); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	task, err := domain.NewTask(userID, req.Title, req.Deadline)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.dispatchReminder(r.Context(), userID, task)

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// dispatchReminder resolves the owner's email and sends the reminder from a
// detached, unsupervised goroutine. The creating request never waits on mail
// delivery, and a failure is logged but never surfaced to the client.
func (h *TaskHandler) dispatchReminder(ctx context.Context, userID uuid.UUID, task *domain.Task) {
	if h.notifier == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, h.logger)

	user, err := h.userStore.GetByID(ctx, userID)
	if err != nil {
		log.Warn("skipping reminder: failed to resolve user email",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return
	}

	// Detach from the request context so the in-flight response cannot
	// cancel the send.
	title, deadline, to := task.Title, task.Deadline, user.Email
	go func() {
		if err := h.notifier.SendTaskReminder(context.Background(), to, title, deadline); err != nil {
			log.Error("failed to send task reminder",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
		}
	}()
}

// List handles GET /tasks requests.
// It returns every task owned by the authenticated caller, never anyone
// else's.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token missing")
		return
	}

	tasks, err := h.taskStore.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Update handles PUT /tasks/{id} requests.
// The patch is restricted to title, deadline and completed; the owning user
// of a task can never be rewritten through this endpoint. Title/deadline
// presence and the past-date rule are re-checked on every update.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token missing")
		return
	}

	taskID, ok := taskIDFromPath(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title and deadline required")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title and deadline required")
		return
	}

	if err := domain.ValidateDeadline(req.Deadline); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	patch := store.TaskPatch{
		Title:     req.Title,
		Deadline:  req.Deadline,
		Completed: req.Completed,
	}

	task, err := h.taskStore.Update(r.Context(), taskID, userID, patch)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token missing")
		return
	}

	taskID, ok := taskIDFromPath(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID, userID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithText(w, r, http.StatusOK, "Deleted successfully")
}

// authenticatedUserID pulls the identity the auth middleware stored in the
// request context.
func authenticatedUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// taskIDFromPath parses the {id} URL parameter. An id that is not a valid
// UUID can never match a stored task, so callers treat it as not found.
func taskIDFromPath(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
