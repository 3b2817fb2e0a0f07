// Package loop implements the interactive command loop over a task store.
//
// A Loop is fed one input line at a time through Handle and tells the caller
// what to print next through Prompt. Run drives it from an io.Reader for the
// console; the TUI drives it from key events.
package loop

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskcal/internal/todo"
	"github.com/nibzard/taskcal/internal/utils"
)

// Top-level commands. Matching ignores case and requires the whole line.
const (
	CmdShowTasks          = "show tasks"
	CmdCreateTask         = "create new task"
	CmdCreate             = "create"
	CmdChangePriority     = "change priority"
	CmdCompleteTask       = "complete task"
	CmdShowCompletedTasks = "show completed tasks"
	CmdRemoveTask         = "remove a task"
	CmdQuit               = "quit"
	CmdQuitShort          = "q"
)

// DefaultBannerDelay is the pause between the welcome banner and the first prompt.
const DefaultBannerDelay = 2 * time.Second

// Loop manages the command flow and its sub-prompts.
type Loop struct {
	store       *todo.Store
	logger      *log.Logger
	bannerDelay time.Duration

	state  State
	prompt string
	// name accepted by a name prompt, waiting for its priority
	pending string
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithBannerDelay sets the pause after the banner. Negative values mean none.
func WithBannerDelay(d time.Duration) Option {
	return func(l *Loop) {
		if d < 0 {
			d = 0
		}
		l.bannerDelay = d
	}
}

// New creates a loop over store, waiting at the top-level menu.
func New(store *todo.Store, opts ...Option) *Loop {
	l := &Loop{
		store:       store,
		logger:      log.New(io.Discard),
		bannerDelay: DefaultBannerDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.toMenu()
	return l
}

// Store returns the task store the loop operates on.
func (l *Loop) Store() *todo.Store {
	return l.store
}

// Banner returns the welcome text printed once at startup.
func (l *Loop) Banner() string {
	return bannerText
}

// BannerDelay returns the configured pause after the banner.
func (l *Loop) BannerDelay() time.Duration {
	return l.bannerDelay
}

// Prompt returns the text to show before the next line is read.
// It is empty once the loop is done.
func (l *Loop) Prompt() string {
	return l.prompt
}

// State returns the prompt the loop is waiting on.
func (l *Loop) State() State {
	return l.state
}

// Done reports whether the user has quit.
func (l *Loop) Done() bool {
	return l.state == StateFinished
}

// Handle consumes one line of input and returns the feedback to print
// before the next prompt.
func (l *Loop) Handle(line string) string {
	line = strings.TrimRight(line, "\r\n")

	switch l.state {
	case StateMenu:
		return l.handleMenu(line)
	case StateCreateName:
		return l.handleCreateName(line)
	case StateCreatePriority:
		return l.handleCreatePriority(line)
	case StateChangeName:
		return l.handleChangeName(line)
	case StateChangePriority:
		return l.handleChangePriority(line)
	case StateCompleteName:
		return l.handleCompleteName(line)
	case StateRemoveName:
		return l.handleRemoveName(line)
	default:
		return ""
	}
}

func isQuit(line string) bool {
	return utils.EqualFoldAny(line, CmdQuit, CmdQuitShort)
}

func (l *Loop) setState(state State, prompt string) {
	l.state = state
	l.prompt = prompt
}

func (l *Loop) toMenu() {
	l.pending = ""
	l.setState(StateMenu, menuPrompt)
}

func (l *Loop) handleMenu(line string) string {
	switch {
	case isQuit(line):
		l.logger.Debug("session ended", "tasks", l.store.Len())
		l.setState(StateFinished, "")
		return programEndedMsg

	case utils.EqualFoldAny(line, CmdShowTasks):
		return l.store.String() + "\n"

	case utils.EqualFoldAny(line, CmdCreateTask, CmdCreate):
		l.setState(StateCreateName, createNamePrompt)
		return ""

	case utils.EqualFoldAny(line, CmdChangePriority):
		return l.startNamePrompt(StateChangeName, changeNamePrompt)

	case utils.EqualFoldAny(line, CmdCompleteTask):
		return l.startNamePrompt(StateCompleteName, completeNamePrompt)

	case utils.EqualFoldAny(line, CmdShowCompletedTasks):
		return l.store.ListCompleted() + "\n"

	case utils.EqualFoldAny(line, CmdRemoveTask):
		return l.startNamePrompt(StateRemoveName, removeNamePrompt)

	default:
		l.logger.Debug("invalid option", "input", line)
		return invalidOptionMsg
	}
}

// startNamePrompt enters a flow that needs an existing task, or stays at
// the menu when there are none.
func (l *Loop) startNamePrompt(state State, prompt string) string {
	if l.store.IsEmpty() {
		return noTasksMsg
	}
	l.setState(state, prompt)
	return ""
}

func (l *Loop) handleCreateName(name string) string {
	switch {
	case isQuit(name):
		l.toMenu()
	case l.store.Contains(name):
		l.logger.Debug("duplicate task name", "task", name)
		l.setState(StateCreateName, createNameTakenPrompt)
	default:
		l.pending = name
		l.setState(StateCreatePriority, createPriorityPrompt)
	}
	return ""
}

func (l *Loop) handleCreatePriority(text string) string {
	if isQuit(text) {
		l.toMenu()
		return ""
	}
	if !todo.IsValidPriority(text) {
		return invalidCreatePriorityMsg
	}

	task := todo.NewTask(l.pending, todo.ParsePriority(text))
	if err := l.store.AddTask(task); err != nil {
		l.logger.Error("add task", "task", task.Name(), "err", err)
	} else {
		l.logger.Debug("task created", "task", task.Name(), "priority", task.Priority())
	}
	l.toMenu()
	return ""
}

func (l *Loop) handleChangeName(name string) string {
	switch {
	case isQuit(name):
		l.toMenu()
	case l.store.Contains(name):
		l.pending = name
		l.setState(StateChangePriority, changePriorityPrompt)
	default:
		l.setState(StateChangeName, unknownNamePrompt)
	}
	return ""
}

func (l *Loop) handleChangePriority(text string) string {
	if isQuit(text) {
		l.toMenu()
		return ""
	}
	if !todo.IsValidPriority(text) {
		return invalidChangePriorityMsg
	}

	name := l.pending
	l.store.SetPriority(name, text)
	l.logger.Debug("priority changed", "task", name, "priority", todo.ParsePriority(text))
	l.toMenu()
	return priorityChangedMsg
}

func (l *Loop) handleCompleteName(name string) string {
	switch {
	case isQuit(name):
		l.toMenu()
	case l.store.Contains(name):
		l.store.SetPriority(name, string(todo.PriorityCompleted))
		l.logger.Debug("task completed", "task", name)
		l.toMenu()
	default:
		l.setState(StateCompleteName, unknownNamePrompt)
	}
	return ""
}

func (l *Loop) handleRemoveName(name string) string {
	switch {
	case isQuit(name):
		l.toMenu()
	case l.store.Contains(name):
		l.store.RemoveTask(name)
		l.logger.Debug("task removed", "task", name)
		l.toMenu()
		return taskRemovedMsg
	default:
		l.setState(StateRemoveName, unknownNamePrompt)
	}
	return ""
}
