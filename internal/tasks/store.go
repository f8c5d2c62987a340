package tasks

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dohr-michael/todobrain/internal/events"
)

// Store is an insertion-ordered, process-lifetime collection of tasks.
// Ids are assigned sequentially from 1 and never reused.
type Store struct {
	mu     sync.RWMutex
	tasks  []*Task
	nextID int
	bus    *events.Bus
	now    func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// SetBus attaches an event bus; mutations are published on it.
func (s *Store) SetBus(bus *events.Bus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bus = bus
}

// Create appends a new task. The description is trimmed and must not be empty.
func (s *Store) Create(description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &ValidationError{Field: "description"}
	}

	s.mu.Lock()
	t := &Task{
		ID:          s.nextID,
		Description: description,
		CreatedAt:   timestamp(s.now()),
	}
	s.tasks = append(s.tasks, t)
	s.nextID++
	created := *t
	s.mu.Unlock()

	s.publish(events.EventTaskCreated, created)
	return created, nil
}

// FindByDescription returns the first task, in insertion order, whose
// normalized description equals the normalized input.
func (s *Store) FindByDescription(description string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(description)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(description))
	}
	return *s.tasks[i], nil
}

// Complete marks the first matching task as completed. Completing an
// already completed task succeeds and changes nothing.
func (s *Store) Complete(description string) (Task, error) {
	s.mu.Lock()
	i := s.indexOf(description)
	if i < 0 {
		s.mu.Unlock()
		return Task{}, fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(description))
	}
	s.tasks[i].Completed = true
	completed := *s.tasks[i]
	s.mu.Unlock()

	s.publish(events.EventTaskCompleted, completed)
	return completed, nil
}

// Delete removes the first matching task and returns it. Other tasks with
// the same normalized description are left untouched.
func (s *Store) Delete(description string) (Task, error) {
	s.mu.Lock()
	i := s.indexOf(description)
	if i < 0 {
		s.mu.Unlock()
		return Task{}, fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(description))
	}
	removed := *s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	s.publish(events.EventTaskDeleted, removed)
	return removed, nil
}

// List returns a snapshot of all tasks in insertion order. Never nil.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = *t
	}
	return out
}

// Len returns the number of tasks currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(description string) int {
	key := Normalize(description)
	for i, t := range s.tasks {
		if Normalize(t.Description) == key {
			return i
		}
	}
	return -1
}

func (s *Store) publish(kind events.EventType, t Task) {
	s.mu.RLock()
	bus := s.bus
	s.mu.RUnlock()

	bus.Publish(events.NewTypedEvent(events.SourceStore, events.TaskPayload{
		Kind:        kind,
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
	}))
}
