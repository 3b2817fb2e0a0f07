// Package todo holds the in-memory task list: priorities, tasks and the store.
//
// # Priorities
//
//   - "completed": the task is done
//   - "optional":  nice to have
//   - "soon":      should be picked up shortly
//   - "immediate": needs attention now
//
// Parsing is case-insensitive and total. Unrecognised text parses to the
// PriorityError sentinel, which renders as InvalidPriorityLabel and is never
// written to a Store by the command loop.
//
// # Names
//
// Task names identify tasks within a Store and are compared case-sensitively.
// A Store keys tasks by name, so it can never hold two tasks with the same
// name.
//
// # Rendering
//
// Task.String renders "<name>\t\t<Priority label>". Store.String renders a
// header followed by one task per line in insertion order, or NoTasksMessage
// when the store is empty.
package todo
