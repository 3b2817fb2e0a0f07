// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskcal/internal/loop"
)

// ErrInterrupted is returned when the user leaves the TUI with ctrl+c or esc
// instead of quitting from the menu.
var ErrInterrupted = errors.New("interrupted")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bodyStyle  = lipgloss.NewStyle()
	helpStyle  = lipgloss.NewStyle().Faint(true)
	inputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// RunTUI runs the command loop in a full-screen terminal UI on out.
// The loop's closing message is printed to out after the alternate screen
// is torn down.
func RunTUI(ctx context.Context, l *loop.Loop, out io.Writer) error {
	if !IsTTY(out) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newTUIModel(l), tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	finalModel, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	m, ok := finalModel.(*tuiModel)
	if !ok {
		return nil
	}
	if m.interrupted {
		return ErrInterrupted
	}
	return m.writeFarewell(out)
}

type tuiModel struct {
	loop        *loop.Loop
	input       textinput.Model
	transcript  strings.Builder
	farewell    string // feedback from the final menu quit
	ready       bool
	interrupted bool
	width       int
	height      int
}

type bannerDoneMsg struct{}

func newTUIModel(l *loop.Loop) *tuiModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0 // unlimited, like console input
	ti.TextStyle = inputStyle
	ti.Focus()

	m := &tuiModel{loop: l, input: ti}
	m.transcript.WriteString(l.Banner())
	return m
}

func bannerDelayCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return bannerDoneMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bannerDoneMsg{}
	})
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, bannerDelayCmd(m.loop.BannerDelay()))
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case bannerDoneMsg:
		if !m.ready {
			m.ready = true
			m.transcript.WriteString(m.loop.Prompt())
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.interrupted = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit feeds the current input line to the loop and records the exchange.
func (m *tuiModel) submit() tea.Cmd {
	if !m.ready {
		return nil
	}
	line := m.input.Value()
	m.input.Reset()

	out := m.loop.Handle(line)
	m.transcript.WriteString(line + "\n")
	m.transcript.WriteString(out)
	if m.loop.Done() {
		m.farewell = out
		return tea.Quit
	}
	m.transcript.WriteString(m.loop.Prompt())
	return nil
}

func (m *tuiModel) writeFarewell(w io.Writer) error {
	if m.farewell == "" {
		return nil
	}
	_, err := io.WriteString(w, m.farewell)
	return err
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskcal"))
	b.WriteString("\n")

	body := m.transcript.String()
	if m.ready && !m.loop.Done() {
		body += m.input.View()
	}
	b.WriteString(bodyStyle.Render(tailLines(body, m.bodyHeight())))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: submit • type quit at the menu to exit • esc/ctrl+c: abort"))
	return b.String()
}

// bodyHeight is the number of transcript lines that fit between the title
// and the help line. Zero means unknown, in which case everything is shown.
func (m *tuiModel) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func tailLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
