package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner = errors.New("task owner cannot be empty")
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEmptyDeadline  = errors.New("deadline cannot be empty")
	ErrDeadlineInPast = errors.New("deadline cannot be in the past")
)

// deadlineLayouts are the date formats accepted for task deadlines.
// The deadline is stored verbatim as a string; these layouts only feed the
// past-date check.
var deadlineLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// Task represents a single to-do item owned by a user.
// Deadline is a loosely-typed date string, preserved exactly as the client
// supplied it.
type Task struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Deadline  string    `json:"deadline"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a new, not-yet-completed Task owned by the given user.
// It generates a new UUID for the task ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, deadline string) (*Task, error) {
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Deadline:  deadline,
		Completed: false,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data, including the deadline rule.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	if t.Title == "" {
		return ErrEmptyTitle
	}

	return ValidateDeadline(t.Deadline)
}

// ValidateDeadline rejects deadlines whose calendar date is strictly before
// today's calendar date. Both sides are truncated to midnight in the server's
// local time zone, so a deadline of today always passes regardless of
// time-of-day.
//
// A deadline that parses under none of the accepted layouts is stored as-is
// and passes this check; only recognizable dates are compared.
func ValidateDeadline(deadline string) error {
	if deadline == "" {
		return ErrEmptyDeadline
	}
	return validateDeadlineAt(deadline, time.Now())
}

func validateDeadlineAt(deadline string, now time.Time) error {
	parsed, ok := parseDeadline(deadline)
	if !ok {
		return nil
	}

	today := midnight(now)
	due := midnight(parsed)
	if due.Before(today) {
		return ErrDeadlineInPast
	}
	return nil
}

func parseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// midnight truncates an instant to the start of its server-local calendar
// day. Deadlines carrying a foreign offset are converted first, so the day
// boundary is always the server's, not the client's.
func midnight(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
