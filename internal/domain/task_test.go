package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates valid task with completed false", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask(userID, "Buy milk", "2099-01-01")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2099-01-01", task.Deadline)
		assert.False(t, task.Completed)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask(userID, "", "2099-01-01")
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("empty deadline", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask(userID, "Buy milk", "")
		assert.ErrorIs(t, err, ErrEmptyDeadline)
	})

	t.Run("empty owner", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask(uuid.Nil, "Buy milk", "2099-01-01")
		assert.ErrorIs(t, err, ErrEmptyTaskOwner)
	})
}

func TestValidateDeadline(t *testing.T) {
	t.Parallel()

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	tests := []struct {
		name     string
		deadline string
		wantErr  error
	}{
		{name: "far future", deadline: "2099-01-01", wantErr: nil},
		{name: "tomorrow", deadline: tomorrow, wantErr: nil},
		{name: "today passes regardless of time-of-day", deadline: today, wantErr: nil},
		{name: "yesterday", deadline: yesterday, wantErr: ErrDeadlineInPast},
		{name: "far past", deadline: "2000-01-01", wantErr: ErrDeadlineInPast},
		{name: "empty", deadline: "", wantErr: ErrEmptyDeadline},
		// Unparsable strings are stored verbatim and skip the comparison.
		{name: "unrecognized format accepted", deadline: "next tuesday", wantErr: nil},
		{name: "slash format", deadline: "2099/01/01", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateDeadline(tt.deadline)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDeadlineAt(t *testing.T) {
	t.Parallel()

	// A fixed "now" late in the day: same-day deadlines must still pass.
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.Local)

	tests := []struct {
		name     string
		deadline string
		wantErr  error
	}{
		{name: "same day late evening", deadline: "2025-06-15", wantErr: nil},
		{name: "previous day", deadline: "2025-06-14", wantErr: ErrDeadlineInPast},
		{name: "next day", deadline: "2025-06-16", wantErr: nil},
		{name: "naive datetime same day", deadline: "2025-06-15T00:00:00", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateDeadlineAt(tt.deadline, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// The day boundary is the server's, not the one the client's offset
	// implies. These deadlines are built from local instants rendered in a
	// shifted zone, so the string's own date differs from the local one.
	t.Run("foreign offset resolving to today passes", func(t *testing.T) {
		t.Parallel()

		// 01:00 local today, written in a zone three hours behind: the
		// string shows yesterday's date but the instant is today here.
		instant := time.Date(2025, 6, 15, 1, 0, 0, 0, time.Local)
		_, localOffset := instant.Zone()
		deadline := instant.In(time.FixedZone("", localOffset-3*3600)).Format(time.RFC3339)

		assert.NoError(t, validateDeadlineAt(deadline, now))
	})

	t.Run("foreign offset resolving to yesterday fails", func(t *testing.T) {
		t.Parallel()

		// 23:00 local yesterday, written in a zone three hours ahead: the
		// string shows today's date but the instant is yesterday here.
		instant := time.Date(2025, 6, 14, 23, 0, 0, 0, time.Local)
		_, localOffset := instant.Zone()
		deadline := instant.In(time.FixedZone("", localOffset+3*3600)).Format(time.RFC3339)

		assert.ErrorIs(t, validateDeadlineAt(deadline, now), ErrDeadlineInPast)
	})
}
