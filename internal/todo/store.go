package todo

import (
	"errors"
	"fmt"
	"strings"
)

// NoTasksMessage is rendered in place of a listing when the store is empty.
const NoTasksMessage = "\n\nThere are no tasks in the system."

const (
	tasksHeader     = "\n\nTasks\t\t\tPriority\n"
	completedHeader = "\n\nCompleted tasks:\n"
)

var (
	// ErrTaskExists is returned when adding a task whose name is taken.
	ErrTaskExists = errors.New("task already exists")
	// ErrTaskNotFound is returned when no task has the requested name.
	ErrTaskNotFound = errors.New("task not found")
)

// Store is the in-memory task list for a session, keyed by task name.
// It is not safe for concurrent use.
type Store struct {
	tasks map[string]*Task
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{tasks: make(map[string]*Task)}
}

// IsEmpty reports whether the store holds no tasks.
func (s *Store) IsEmpty() bool {
	return len(s.tasks) == 0
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Contains reports whether a task named name exists. Matching is case-sensitive.
func (s *Store) Contains(name string) bool {
	_, ok := s.tasks[name]
	return ok
}

// GetTask returns the task named name, or nil if not found.
func (s *Store) GetTask(name string) *Task {
	return s.tasks[name]
}

// Lookup returns the task named name or ErrTaskNotFound.
func (s *Store) Lookup(name string) (*Task, error) {
	t, ok := s.tasks[name]
	if !ok {
		return nil, fmt.Errorf("task %q: %w", name, ErrTaskNotFound)
	}
	return t, nil
}

// AddTask inserts task. A task with the same name must not already exist.
func (s *Store) AddTask(task *Task) error {
	if task == nil {
		return errors.New("task is nil")
	}
	if s.Contains(task.Name()) {
		return fmt.Errorf("task %q: %w", task.Name(), ErrTaskExists)
	}
	s.tasks[task.Name()] = task
	s.order = append(s.order, task.Name())
	return nil
}

// RemoveTask deletes the task named name and reports whether it existed.
func (s *Store) RemoveTask(name string) bool {
	if !s.Contains(name) {
		return false
	}
	delete(s.tasks, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// UpdateTask applies updater to the task named name.
func (s *Store) UpdateTask(name string, updater func(*Task)) error {
	t, err := s.Lookup(name)
	if err != nil {
		return err
	}
	updater(t)
	return nil
}

// SetPriority parses priorityText and applies it to the task named name.
// It is a no-op returning false when no such task exists.
func (s *Store) SetPriority(name, priorityText string) bool {
	p := ParsePriority(priorityText)
	err := s.UpdateTask(name, func(t *Task) {
		t.SetPriority(p)
	})
	return err == nil
}

// Tasks returns all tasks in insertion order.
func (s *Store) Tasks() []*Task {
	return s.Filter(nil)
}

// Filter returns the tasks for which keep returns true, in insertion order.
// A nil keep selects every task.
func (s *Store) Filter(keep func(*Task) bool) []*Task {
	out := make([]*Task, 0, len(s.order))
	for _, name := range s.order {
		t := s.tasks[name]
		if keep == nil || keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns the tasks whose priority is completed.
func (s *Store) Completed() []*Task {
	return s.Filter(func(t *Task) bool {
		return t.PriorityEquals(string(PriorityCompleted))
	})
}

// ListCompleted renders the names of completed tasks under a header.
// An empty store renders NoTasksMessage; a store with no completed tasks
// renders the header alone.
func (s *Store) ListCompleted() string {
	if s.IsEmpty() {
		return NoTasksMessage
	}
	var b strings.Builder
	b.WriteString(completedHeader)
	for _, t := range s.Completed() {
		b.WriteString(t.Name())
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders every task under a header, or NoTasksMessage when empty.
func (s *Store) String() string {
	if s.IsEmpty() {
		return NoTasksMessage
	}
	var b strings.Builder
	b.WriteString(tasksHeader)
	for _, t := range s.Tasks() {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
