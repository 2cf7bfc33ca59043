package api

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore is an in-memory store.UserStore honoring the same contract
// as the Postgres implementation: it hashes passwords on create and checks
// email uniqueness with a lookup.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	createErr error
	getErr    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if s.createErr != nil {
		return s.createErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hashed)
	user.Password = ""

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// fakeTaskStore is an in-memory store.TaskStore with the same owner-scoping
// semantics as the Postgres implementation.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task

	createErr error
	listErr   error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (s *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if s.createErr != nil {
		return s.createErr
	}
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if task.UserID == userID {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}
	return tasks, nil
}

func (s *fakeTaskStore) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	patch store.TaskPatch,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	task.Title = patch.Title
	task.Deadline = patch.Deadline
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}

	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}

	delete(s.tasks, id)
	return nil
}

// fakeNotifier records reminder dispatches and signals on a channel so tests
// can wait for the detached goroutine without sleeping.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []reminderCall

	sendErr error
	done    chan struct{}
}

type reminderCall struct {
	to       string
	title    string
	deadline string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 8)}
}

func (n *fakeNotifier) SendTaskReminder(ctx context.Context, to, title, deadline string) error {
	n.mu.Lock()
	n.calls = append(n.calls, reminderCall{to: to, title: title, deadline: deadline})
	n.mu.Unlock()

	n.done <- struct{}{}
	return n.sendErr
}

func (n *fakeNotifier) recorded() []reminderCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]reminderCall(nil), n.calls...)
}
