package loop

import (
	"strings"

	"github.com/nibzard/taskcal/internal/todo"
)

// User-facing text. Leading blank lines and trailing spaces are part of the
// console layout.
const (
	bannerText = "Hello, and welcome to the automated task calendar system.\n\n\n"

	menuPrompt = "\n\nList of options: Show tasks, create new task, " +
		"change priority, complete task, show completed tasks, remove a task\n" +
		"Type what you want to do, or type in \"quit\" to quit: "

	createNamePrompt      = "\n\nEnter the name of the task, or type quit to quit: "
	createNameTakenPrompt = "Task is already in the system! Type a different name, " +
		"or quit to exit this option. "
	changeNamePrompt     = "\n\nEnter the name of the task you want to edit, or type quit to exit this option: "
	changePriorityPrompt = "\n\nEnter the priority you want to set this task to, or type quit to exit this option: "
	completeNamePrompt   = "\n\nWhich task do you want to complete? (or type quit to exit this option) "
	removeNamePrompt     = "\n\nWhich task do you want to remove? (or type quit to exit this option) "
	unknownNamePrompt    = "Task is not in the system! Type another option, or quit to exit this option. "

	invalidCreatePriorityMsg = "Invalid priority input! "
	invalidChangePriorityMsg = "Invalid priority!"
	priorityChangedMsg       = "Priority has been successfully changed.\n"
	taskRemovedMsg           = "Task successfully removed.\n"
	noTasksMsg               = "\n\nThere are no tasks in the system.\n"
	invalidOptionMsg         = "\n\nInvalid option, please try again.\n"
	programEndedMsg          = "Program ended.\n"
)

var createPriorityPrompt = "Enter its priority (" + priorityChoices() + "), " +
	"or type quit to exit this option: "

// priorityChoices lists the valid priority labels, e.g. "Completed, Optional".
func priorityChoices() string {
	labels := make([]string, 0, len(todo.Priorities()))
	for _, p := range todo.Priorities() {
		labels = append(labels, p.DisplayName())
	}
	return strings.Join(labels, ", ")
}
