package todo

import "strings"

// Priority is how urgently a task needs attention.
type Priority string

const (
	PriorityCompleted Priority = "completed"
	PriorityOptional  Priority = "optional"
	PrioritySoon      Priority = "soon"
	PriorityImmediate Priority = "immediate"

	// PriorityError is what ParsePriority returns for unrecognised text.
	PriorityError Priority = "error"
)

// InvalidPriorityLabel is the display form of anything that is not a valid priority.
const InvalidPriorityLabel = "Error getting priority (invalid input?)"

var priorityLabels = map[Priority]string{
	PriorityCompleted: "Completed",
	PriorityOptional:  "Optional",
	PrioritySoon:      "Soon",
	PriorityImmediate: "Immediate",
}

// Priorities returns the valid priorities in the order they are offered to users.
func Priorities() []Priority {
	return []Priority{PriorityCompleted, PriorityOptional, PrioritySoon, PriorityImmediate}
}

// ParsePriority converts text to a Priority, ignoring case.
// Any other input yields PriorityError.
func ParsePriority(text string) Priority {
	p := Priority(strings.ToLower(text))
	if _, ok := priorityLabels[p]; ok {
		return p
	}
	return PriorityError
}

// IsValidPriority reports whether text names one of the valid priorities.
func IsValidPriority(text string) bool {
	return ParsePriority(text) != PriorityError
}

// DisplayName maps a priority name (any case) to its capitalised label.
func DisplayName(text string) string {
	if label, ok := priorityLabels[Priority(strings.ToLower(text))]; ok {
		return label
	}
	return InvalidPriorityLabel
}

// DisplayName returns the capitalised label for p.
func (p Priority) DisplayName() string {
	return DisplayName(string(p))
}

// Valid reports whether p is one of the four real priorities.
func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (p Priority) String() string {
	return string(p)
}
