package todo

import (
	"fmt"
	"strings"
	"time"
)

// Store owns the task collection and the ID sequence. It is not safe for
// concurrent use.
type Store struct {
	tasks   []Task
	created int // tasks ever created; the next ID is created+1
	now     func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now as the source of creation timestamps and of
// "today".
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date according to the store clock.
func (s *Store) Today() Date {
	return DateOf(s.now())
}

// Len returns the number of tasks currently held.
func (s *Store) Len() int {
	return len(s.tasks)
}

// List returns copies of all tasks in insertion order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].clone()
	}
	return out
}

// Create validates the input, assigns the next ID and appends the task.
func (s *Store) Create(in NewTask) (Task, error) {
	if err := ValidateTitle(in.Title); err != nil {
		return Task{}, err
	}
	priority := in.Priority
	if priority == 0 {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return Task{}, invalid("priority", ErrInvalidPriority)
	}
	if in.DueDate != nil {
		if err := checkDueDate(*in.DueDate, s.Today()); err != nil {
			return Task{}, err
		}
	}

	s.created++
	task := Task{
		ID:          s.created,
		Title:       strings.TrimSpace(in.Title),
		Description: normalizeDescription(in.Description),
		Priority:    priority,
		Status:      StatusPending,
		CreatedAt:   s.now(),
	}
	if in.DueDate != nil {
		d := *in.DueDate
		task.DueDate = &d
	}

	s.tasks = append(s.tasks, task)
	return task.clone(), nil
}

// Get returns a task by ID. The boolean is false if no task has that ID.
func (s *Store) Get(id int) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i].clone(), true
	}
	return Task{}, false
}

// Update applies the non-nil fields of u to the task with the given ID.
// All fields are validated first; on any error the task is left unchanged.
func (s *Store) Update(id int, u Update) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}

	if u.Title != nil {
		if err := ValidateTitle(*u.Title); err != nil {
			return Task{}, err
		}
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return Task{}, invalid("priority", ErrInvalidPriority)
	}
	if u.DueDate != nil && !u.ClearDueDate {
		if err := checkDueDate(*u.DueDate, s.Today()); err != nil {
			return Task{}, err
		}
	}

	task := &s.tasks[i]
	if u.Title != nil {
		task.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		task.Description = normalizeDescription(*u.Description)
	}
	if u.Priority != nil {
		task.Priority = *u.Priority
	}
	switch {
	case u.ClearDueDate:
		task.DueDate = nil
	case u.DueDate != nil:
		d := *u.DueDate
		task.DueDate = &d
	}

	return task.clone(), nil
}

// Delete removes the task with the given ID and returns it.
func (s *Store) Delete(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, nil
}

// ToggleStatus flips the status of the task with the given ID and returns
// the new status.
func (s *Store) ToggleStatus(id int) (Status, error) {
	i := s.index(id)
	if i < 0 {
		return "", notFound(id)
	}
	return s.tasks[i].Toggle(), nil
}

// Search returns copies of the tasks matching every set field of f, in
// insertion order.
func (s *Store) Search(f Filter) []Task {
	return Search(s.tasks, f)
}

// Sorted returns copies of all tasks ordered by key.
func (s *Store) Sorted(by SortKey) []Task {
	return Sort(s.List(), by)
}

// Summary aggregates the whole collection against the store's today.
func (s *Store) Summary() Summary {
	return Summarize(s.tasks, s.Today())
}

func (s *Store) index(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int) error {
	return fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
}
