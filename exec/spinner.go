package exec

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunWithSpinner runs a command while a spinner with message is shown on
// stderr. The command's own output is discarded.
func (e *Executor) RunWithSpinner(ctx context.Context, message string, name string, args ...string) error {
	quiet := &Executor{
		stdin:       e.stdin,
		stdout:      io.Discard,
		stderr:      io.Discard,
		env:         e.env,
		dir:         e.dir,
		commandFunc: e.commandFunc,
	}

	return e.Spin(ctx, message, func(ctx context.Context) error {
		return quiet.Run(ctx, name, args...)
	})
}

// Spin calls fn while a spinner with message is shown on stderr. The
// spinner ends with a check mark or a cross depending on fn's error.
func (e *Executor) Spin(ctx context.Context, message string, fn func(ctx context.Context) error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(e.stderr), tea.WithInput(nil))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// A spinner that cannot draw is not worth failing the work for.
		_, _ = p.Run()
	}()

	err := <-done
	p.Send(spinnerDoneMsg{err: err})
	<-finished

	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
