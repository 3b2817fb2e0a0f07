package todo

import "strings"

// Task is a named unit of work with a mutable priority.
// The name is fixed at construction.
type Task struct {
	name     string
	priority Priority
}

// NewTask creates a task. Neither argument is validated.
func NewTask(name string, priority Priority) *Task {
	return &Task{name: name, priority: priority}
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// Priority returns the current priority.
func (t *Task) Priority() Priority {
	return t.priority
}

// SetPriority replaces the priority. Callers validate first.
func (t *Task) SetPriority(priority Priority) {
	t.priority = priority
}

// NameEquals reports whether candidate is exactly the task name.
func (t *Task) NameEquals(candidate string) bool {
	return t.name == candidate
}

// PriorityEquals compares the task priority to candidate, ignoring case.
func (t *Task) PriorityEquals(candidate string) bool {
	return strings.EqualFold(string(t.priority), candidate)
}

// String renders the task as "<name>\t\t<label>".
func (t *Task) String() string {
	return t.name + "\t\t" + t.priority.DisplayName()
}
