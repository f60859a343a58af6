package store

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"task-list/errors"
	"task-list/tasks"
)

// DefaultLockTimeout bounds how long an operation waits for the store lock.
const DefaultLockTimeout = 100 * time.Millisecond

// Compile-time check to ensure MemoryTaskStore implements TaskStore interface
var _ TaskStore = (*MemoryTaskStore)(nil)

// MemoryTaskStore keeps tasks in insertion order behind a single exclusive lock.
//
// The lock is a one-slot semaphore so acquisition can be bounded: a caller
// that cannot get it within lockTimeout gets an Internal error instead of
// waiting. The sequence and the id counter are only touched while it is held.
type MemoryTaskStore struct {
	lock        chan struct{}
	lockTimeout time.Duration
	nextID      atomic.Uint64
	tasks       []tasks.Task
}

type MemoryOption func(*MemoryTaskStore)

// WithLockTimeout sets the bounded wait for the store lock. Zero means a
// single non-blocking attempt.
func WithLockTimeout(d time.Duration) MemoryOption {
	return func(s *MemoryTaskStore) {
		if d >= 0 {
			s.lockTimeout = d
		}
	}
}

// NewMemoryTaskStore creates an empty store whose counter starts at zero.
func NewMemoryTaskStore(opts ...MemoryOption) *MemoryTaskStore {
	s := &MemoryTaskStore{
		lock:        make(chan struct{}, 1),
		lockTimeout: DefaultLockTimeout,
		tasks:       make([]tasks.Task, 0, 32),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryTaskStore) acquire() error {
	select {
	case s.lock <- struct{}{}:
		return nil
	default:
	}

	if s.lockTimeout == 0 {
		return errors.NewInternalError("task store lock unavailable")
	}

	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case s.lock <- struct{}{}:
		return nil
	case <-timer.C:
		return errors.NewInternalError("task store lock unavailable")
	}
}

func (s *MemoryTaskStore) release() {
	<-s.lock
}

// indexOf returns the position of the task with the given id, or -1.
// Caller must hold the lock.
func (s *MemoryTaskStore) indexOf(id uint64) int {
	return slices.IndexFunc(s.tasks, func(t tasks.Task) bool {
		return t.ID == id
	})
}

// Insert validates the title, assigns the next id and appends the task.
func (s *MemoryTaskStore) Insert(_ context.Context, title, details string) (tasks.Task, error) {
	if err := tasks.ValidateTitle(title); err != nil {
		return tasks.Task{}, err
	}

	if err := s.acquire(); err != nil {
		return tasks.Task{}, err
	}
	defer s.release()

	task := tasks.Task{
		ID:      s.nextID.Add(1) - 1,
		Title:   title,
		Details: details,
	}
	s.tasks = append(s.tasks, task)

	return task, nil
}

// FindAll returns a snapshot of every task in insertion order.
func (s *MemoryTaskStore) FindAll(_ context.Context) ([]tasks.Task, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	return slices.Clone(s.tasks), nil
}

// FindByPattern returns a snapshot of the tasks whose title or details
// contain pattern, in insertion order.
func (s *MemoryTaskStore) FindByPattern(_ context.Context, pattern string) ([]tasks.Task, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	found := make([]tasks.Task, 0)
	for _, t := range s.tasks {
		if t.Matches(pattern) {
			found = append(found, t)
		}
	}
	return found, nil
}

// FindByID returns a copy of the task, so callers cannot mutate stored state.
func (s *MemoryTaskStore) FindByID(_ context.Context, id uint64) (tasks.Task, error) {
	if err := s.acquire(); err != nil {
		return tasks.Task{}, err
	}
	defer s.release()

	i := s.indexOf(id)
	if i < 0 {
		return tasks.Task{}, errors.NewIDNotFoundError(id)
	}
	return s.tasks[i], nil
}

// Update replaces title and details of an existing task in place.
func (s *MemoryTaskStore) Update(_ context.Context, id uint64, newTitle, details string) (tasks.Task, error) {
	if err := tasks.ValidateTitle(newTitle); err != nil {
		return tasks.Task{}, err
	}

	if err := s.acquire(); err != nil {
		return tasks.Task{}, err
	}
	defer s.release()

	i := s.indexOf(id)
	if i < 0 {
		return tasks.Task{}, errors.NewIDNotFoundError(id)
	}

	s.tasks[i].Title = newTitle
	s.tasks[i].Details = details

	return s.tasks[i], nil
}

// Delete removes the task and returns it. Remaining tasks keep their order.
func (s *MemoryTaskStore) Delete(_ context.Context, id uint64) (tasks.Task, error) {
	if err := s.acquire(); err != nil {
		return tasks.Task{}, err
	}
	defer s.release()

	i := s.indexOf(id)
	if i < 0 {
		return tasks.Task{}, errors.NewIDNotFoundError(id)
	}

	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)

	return removed, nil
}

func (s *MemoryTaskStore) Len(_ context.Context) (int, error) {
	if err := s.acquire(); err != nil {
		return 0, err
	}
	defer s.release()

	return len(s.tasks), nil
}
