package loop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/taskcal/internal/todo"
)

// feed sends each line to l and returns the concatenated feedback.
func feed(l *Loop, lines ...string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(l.Handle(line))
	}
	return b.String()
}

func newTestLoop(t *testing.T, tasks ...*todo.Task) *Loop {
	t.Helper()
	store := todo.NewStore()
	for _, task := range tasks {
		if err := store.AddTask(task); err != nil {
			t.Fatalf("AddTask(%s): %v", task.Name(), err)
		}
	}
	return New(store, WithBannerDelay(0))
}

// runScript drives a full session over script and returns everything written.
func runScript(t *testing.T, l *Loop, script ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	var out bytes.Buffer
	if err := l.Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run failed: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func TestNewStartsAtMenu(t *testing.T) {
	l := newTestLoop(t)

	if l.State() != StateMenu {
		t.Errorf("State: got %v, want menu", l.State())
	}
	if l.Prompt() != menuPrompt {
		t.Errorf("Prompt: got %q", l.Prompt())
	}
	if l.Done() {
		t.Error("new loop should not be done")
	}
	if l.BannerDelay() != 0 {
		t.Errorf("BannerDelay: got %v, want 0", l.BannerDelay())
	}
}

func TestDefaultBannerDelay(t *testing.T) {
	l := New(todo.NewStore())
	if l.BannerDelay() != DefaultBannerDelay {
		t.Errorf("BannerDelay: got %v, want %v", l.BannerDelay(), DefaultBannerDelay)
	}
	l = New(todo.NewStore(), WithBannerDelay(-time.Second))
	if l.BannerDelay() != 0 {
		t.Errorf("negative delay should clamp to 0, got %v", l.BannerDelay())
	}
}

func TestMenuCommands(t *testing.T) {
	tests := []struct {
		input     string
		wantState State
		wantOut   string
	}{
		{"quit", StateFinished, programEndedMsg},
		{"Q", StateFinished, programEndedMsg},
		{"QUIT", StateFinished, programEndedMsg},
		{"show tasks", StateMenu, "\n\nTasks\t\t\tPriority\nLaundry\t\tSoon\n\n"},
		{"SHOW TASKS", StateMenu, "\n\nTasks\t\t\tPriority\nLaundry\t\tSoon\n\n"},
		{"create new task", StateCreateName, ""},
		{"Create", StateCreateName, ""},
		{"change priority", StateChangeName, ""},
		{"complete task", StateCompleteName, ""},
		{"Show completed tasks", StateMenu, "\n\nCompleted tasks:\n\n"},
		{"remove a task", StateRemoveName, ""},
		{"show", StateMenu, invalidOptionMsg},
		{" show tasks", StateMenu, invalidOptionMsg},
		{"", StateMenu, invalidOptionMsg},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := newTestLoop(t, todo.NewTask("Laundry", todo.PrioritySoon))
			out := l.Handle(tt.input)
			if diff := cmp.Diff(tt.wantOut, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			if l.State() != tt.wantState {
				t.Errorf("State: got %v, want %v", l.State(), tt.wantState)
			}
		})
	}
}

func TestTrailingCarriageReturnIgnored(t *testing.T) {
	l := newTestLoop(t)
	l.Handle("create\r")
	if l.State() != StateCreateName {
		t.Errorf("State: got %v, want create-name", l.State())
	}
}

func TestEmptyStoreGuards(t *testing.T) {
	for _, cmd := range []string{CmdChangePriority, CmdCompleteTask, CmdRemoveTask} {
		t.Run(cmd, func(t *testing.T) {
			l := newTestLoop(t)
			out := l.Handle(cmd)
			if out != noTasksMsg {
				t.Errorf("output: got %q, want %q", out, noTasksMsg)
			}
			if l.State() != StateMenu {
				t.Errorf("State: got %v, want menu", l.State())
			}
		})
	}

	t.Run("listings", func(t *testing.T) {
		l := newTestLoop(t)
		if got := l.Handle(CmdShowTasks); got != todo.NoTasksMessage+"\n" {
			t.Errorf("show tasks: got %q", got)
		}
		if got := l.Handle(CmdShowCompletedTasks); got != todo.NoTasksMessage+"\n" {
			t.Errorf("show completed tasks: got %q", got)
		}
	})
}

func TestCreateTask(t *testing.T) {
	t.Run("valid name and priority", func(t *testing.T) {
		l := newTestLoop(t)
		feed(l, "create", "Laundry")
		if l.State() != StateCreatePriority || l.Prompt() != createPriorityPrompt {
			t.Fatalf("expected priority prompt, got %v %q", l.State(), l.Prompt())
		}
		feed(l, "SOON")

		task := l.Store().GetTask("Laundry")
		if task == nil {
			t.Fatal("task was not created")
		}
		if task.Priority() != todo.PrioritySoon {
			t.Errorf("Priority: got %q, want soon", task.Priority())
		}
		if l.State() != StateMenu {
			t.Errorf("State: got %v, want menu", l.State())
		}
	})

	t.Run("invalid priority retries", func(t *testing.T) {
		l := newTestLoop(t)
		out := feed(l, "create", "Laundry", "whenever")
		if out != invalidCreatePriorityMsg {
			t.Errorf("output: got %q", out)
		}
		if l.State() != StateCreatePriority {
			t.Errorf("State: got %v, want create-priority", l.State())
		}
		if !l.Store().IsEmpty() {
			t.Error("invalid priority must not create a task")
		}

		feed(l, "optional")
		if got := l.Store().GetTask("Laundry"); got == nil || got.Priority() != todo.PriorityOptional {
			t.Errorf("expected Laundry/optional, got %v", got)
		}
	})

	t.Run("duplicate name retries", func(t *testing.T) {
		l := newTestLoop(t, todo.NewTask("Laundry", todo.PrioritySoon))
		feed(l, "create", "Laundry")
		if l.State() != StateCreateName || l.Prompt() != createNameTakenPrompt {
			t.Fatalf("expected duplicate prompt, got %v %q", l.State(), l.Prompt())
		}

		feed(l, "laundry", "immediate")
		if l.Store().Len() != 2 {
			t.Errorf("names are case-sensitive, expected 2 tasks, got %d", l.Store().Len())
		}
	})

	t.Run("quit at priority prompt adds nothing", func(t *testing.T) {
		l := newTestLoop(t)
		feed(l, "create", "Laundry", "q")
		if !l.Store().IsEmpty() {
			t.Error("task should not be created")
		}
		if l.State() != StateMenu {
			t.Errorf("State: got %v, want menu", l.State())
		}
	})

	t.Run("error is not a priority", func(t *testing.T) {
		l := newTestLoop(t)
		feed(l, "create", "Laundry", "error")
		if !l.Store().IsEmpty() {
			t.Error("the error sentinel must never be stored")
		}
	})
}

func TestChangePriority(t *testing.T) {
	l := newTestLoop(t,
		todo.NewTask("Laundry", todo.PrioritySoon),
		todo.NewTask("Essay", todo.PriorityOptional),
	)

	feed(l, "change priority", "Dishes")
	if l.State() != StateChangeName || l.Prompt() != unknownNamePrompt {
		t.Fatalf("expected unknown-name prompt, got %v %q", l.State(), l.Prompt())
	}

	feed(l, "Laundry")
	if l.State() != StateChangePriority || l.Prompt() != changePriorityPrompt {
		t.Fatalf("expected priority prompt, got %v %q", l.State(), l.Prompt())
	}

	if out := l.Handle("asap"); out != invalidChangePriorityMsg {
		t.Errorf("invalid priority output: got %q", out)
	}
	if out := l.Handle("Immediate"); out != priorityChangedMsg {
		t.Errorf("success output: got %q", out)
	}

	if got := l.Store().GetTask("Laundry").Priority(); got != todo.PriorityImmediate {
		t.Errorf("Laundry: got %q, want immediate", got)
	}
	if got := l.Store().GetTask("Essay").Priority(); got != todo.PriorityOptional {
		t.Errorf("Essay should be untouched, got %q", got)
	}
	if l.State() != StateMenu {
		t.Errorf("State: got %v, want menu", l.State())
	}
}

func TestChangePriorityQuit(t *testing.T) {
	l := newTestLoop(t, todo.NewTask("Laundry", todo.PrioritySoon))

	feed(l, "change priority", "Laundry", "quit")
	if got := l.Store().GetTask("Laundry").Priority(); got != todo.PrioritySoon {
		t.Errorf("quit should leave priority alone, got %q", got)
	}
	if l.State() != StateMenu {
		t.Errorf("State: got %v, want menu", l.State())
	}
}

func TestCompleteTask(t *testing.T) {
	l := newTestLoop(t, todo.NewTask("Essay", todo.PriorityImmediate))

	feed(l, "complete task", "essay")
	if l.State() != StateCompleteName || l.Prompt() != unknownNamePrompt {
		t.Fatalf("expected unknown-name prompt, got %v %q", l.State(), l.Prompt())
	}

	feed(l, "Essay")
	if got := l.Store().GetTask("Essay").Priority(); got != todo.PriorityCompleted {
		t.Errorf("Essay: got %q, want completed", got)
	}
	if l.State() != StateMenu {
		t.Errorf("State: got %v, want menu", l.State())
	}
}

func TestRemoveTask(t *testing.T) {
	l := newTestLoop(t,
		todo.NewTask("Laundry", todo.PrioritySoon),
		todo.NewTask("Essay", todo.PriorityImmediate),
	)

	if out := feed(l, "remove a task", "Essay"); out != taskRemovedMsg {
		t.Errorf("output: got %q", out)
	}
	if l.Store().Contains("Essay") {
		t.Error("Essay should be removed")
	}

	feed(l, "remove a task", "Essay")
	if l.Prompt() != unknownNamePrompt {
		t.Errorf("second removal should report not in the system, prompt %q", l.Prompt())
	}
	feed(l, "q")
	if l.Store().Len() != 1 {
		t.Errorf("Len: got %d, want 1", l.Store().Len())
	}
}

func TestQuitUnwindsOnlyTheCommand(t *testing.T) {
	flows := [][]string{
		{"create", "quit"},
		{"create", "Laundry2", "QUIT"},
		{"change priority", "q"},
		{"change priority", "Laundry", "q"},
		{"complete task", "Q"},
		{"remove a task", "quit"},
	}

	for _, flow := range flows {
		t.Run(strings.Join(flow, "/"), func(t *testing.T) {
			l := newTestLoop(t, todo.NewTask("Laundry", todo.PrioritySoon))
			feed(l, flow...)
			if l.Done() {
				t.Fatal("sub-prompt quit must not end the session")
			}
			if l.State() != StateMenu {
				t.Errorf("State: got %v, want menu", l.State())
			}
			if l.Store().Len() != 1 || l.Store().GetTask("Laundry").Priority() != todo.PrioritySoon {
				t.Error("store should be unchanged")
			}
		})
	}
}

func TestHandleAfterFinish(t *testing.T) {
	l := newTestLoop(t)
	l.Handle("quit")
	if out := l.Handle("show tasks"); out != "" {
		t.Errorf("finished loop should ignore input, got %q", out)
	}
	if l.Prompt() != "" {
		t.Errorf("finished loop should have no prompt, got %q", l.Prompt())
	}
}

func TestScenarioCreateAndShow(t *testing.T) {
	l := newTestLoop(t)
	out := runScript(t, l, "create new task", "Laundry", "soon", "show tasks", "quit")

	if !l.Store().Contains("Laundry") {
		t.Error("Laundry should exist")
	}
	if !strings.Contains(out, "Laundry\t\tSoon") {
		t.Errorf("listing should show Laundry\\t\\tSoon:\n%s", out)
	}
	if !strings.HasPrefix(out, bannerText) {
		t.Errorf("output should start with the banner:\n%s", out)
	}
	if !strings.HasSuffix(out, programEndedMsg) {
		t.Errorf("output should end with %q:\n%s", programEndedMsg, out)
	}
}

func TestScenarioDuplicateRejected(t *testing.T) {
	l := newTestLoop(t)
	out := runScript(t, l,
		"create", "Laundry", "soon",
		"create", "Laundry", "quit",
		"quit",
	)

	if !strings.Contains(out, "already in the system") {
		t.Errorf("expected duplicate rejection:\n%s", out)
	}
	if l.Store().Len() != 1 {
		t.Errorf("Len: got %d, want 1", l.Store().Len())
	}
}

func TestScenarioCompleteTask(t *testing.T) {
	l := newTestLoop(t)
	out := runScript(t, l,
		"create", "Essay", "immediate",
		"complete task", "Essay",
		"show completed tasks",
		"show tasks",
		"q",
	)

	if !strings.Contains(l.Store().ListCompleted(), "Essay") {
		t.Error("Essay should be listed as completed")
	}
	if !strings.Contains(out, "\n\nCompleted tasks:\nEssay\n") {
		t.Errorf("completed listing missing:\n%s", out)
	}
	if !strings.Contains(out, "Essay\t\tCompleted") {
		t.Errorf("task listing should show Completed:\n%s", out)
	}
}

func TestScenarioRemoveTask(t *testing.T) {
	l := newTestLoop(t,
		todo.NewTask("Essay", todo.PriorityCompleted),
		todo.NewTask("Laundry", todo.PrioritySoon),
	)
	out := runScript(t, l,
		"remove a task", "Essay",
		"remove a task", "Essay", "quit",
		"quit",
	)

	if l.Store().Contains("Essay") {
		t.Error("Essay should be gone")
	}
	if !strings.Contains(out, taskRemovedMsg) {
		t.Errorf("missing removal confirmation:\n%s", out)
	}
	if !strings.Contains(out, "not in the system") {
		t.Errorf("second removal should report not in the system:\n%s", out)
	}
}

func TestScenarioQuitAtNamePrompt(t *testing.T) {
	l := newTestLoop(t)
	runScript(t, l, "create new task", "quit", "quit")

	if !l.Store().IsEmpty() {
		t.Error("store should be unchanged")
	}
}

func TestRunTranscript(t *testing.T) {
	l := newTestLoop(t)
	out := runScript(t, l, "create", "Laundry", "soon", "q")

	want := bannerText +
		menuPrompt +
		createNamePrompt +
		createPriorityPrompt +
		menuPrompt +
		programEndedMsg
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestRunGoldenTranscript(t *testing.T) {
	l := newTestLoop(t)
	out := runScript(t, l, "create", "Laundry", "soon", "show tasks", "quit")

	want := "Hello, and welcome to the automated task calendar system.\n\n\n" +
		"\n\nList of options: Show tasks, create new task, change priority, " +
		"complete task, show completed tasks, remove a task\n" +
		"Type what you want to do, or type in \"quit\" to quit: " +
		"\n\nEnter the name of the task, or type quit to quit: " +
		"Enter its priority (Completed, Optional, Soon, Immediate), or type quit to exit this option: " +
		"\n\nList of options: Show tasks, create new task, change priority, " +
		"complete task, show completed tasks, remove a task\n" +
		"Type what you want to do, or type in \"quit\" to quit: " +
		"\n\nTasks\t\t\tPriority\nLaundry\t\tSoon\n\n" +
		"\n\nList of options: Show tasks, create new task, change priority, " +
		"complete task, show completed tasks, remove a task\n" +
		"Type what you want to do, or type in \"quit\" to quit: " +
		"Program ended.\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestRunLongLine(t *testing.T) {
	l := newTestLoop(t)
	name := strings.Repeat("x", 70*1024)
	runScript(t, l, "create", name, "soon", "quit")

	task := l.Store().GetTask(name)
	if task == nil {
		t.Fatal("long task name should be stored")
	}
	if task.Priority() != todo.PrioritySoon {
		t.Errorf("Priority: got %v, want soon", task.Priority())
	}
}

func TestRunLastLineWithoutNewline(t *testing.T) {
	l := newTestLoop(t)
	var out bytes.Buffer
	if err := l.Run(context.Background(), strings.NewReader("show tasks\nquit"), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.HasSuffix(out.String(), programEndedMsg) {
		t.Errorf("output should end with %q:\n%s", programEndedMsg, out.String())
	}
}

func TestReadLinesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines := readLines(ctx, strings.NewReader("first\nsecond\nthird\n"))

	if got := <-lines; got.text != "first" {
		t.Fatalf("first line: got %q", got.text)
	}
	cancel()
	// Give the reader time to see the cancellation while nobody receives.
	time.Sleep(20 * time.Millisecond)

	select {
	case got, ok := <-lines:
		if ok {
			t.Errorf("reader kept sending after cancel: %q", got.text)
		}
	case <-time.After(time.Second):
		t.Fatal("reader goroutine did not stop after cancel")
	}
}

func TestRunInputClosed(t *testing.T) {
	l := newTestLoop(t)
	err := l.Run(context.Background(), strings.NewReader("show tasks\n"), io.Discard)
	if !errors.Is(err, ErrInputClosed) {
		t.Errorf("expected ErrInputClosed, got %v", err)
	}
}

func TestRunCancelledDuringBanner(t *testing.T) {
	l := New(todo.NewStore(), WithBannerDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Run(ctx, strings.NewReader("quit\n"), io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunCancelledWhileWaiting(t *testing.T) {
	l := newTestLoop(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Run(ctx, pr, io.Discard)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	if StateCreatePriority.String() != "create-priority" {
		t.Errorf("got %q", StateCreatePriority.String())
	}
	if State(99).String() != "unknown" {
		t.Errorf("got %q", State(99).String())
	}
}
