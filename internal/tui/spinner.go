package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

type workDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    <-chan struct{}
}

func newSpinnerModel(message string, done <-chan struct{}) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{
		spinner: s,
		message: message,
		done:    done,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	wait := func() tea.Msg {
		<-m.done
		return workDoneMsg{}
	}
	return tea.Batch(m.spinner.Tick, wait)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	return m.spinner.View() + " " + m.message
}

// WithSpinner runs work while showing a loading indicator. In
// non-interactive environments the indicator is skipped and the work runs
// directly. The work result is returned either way; a failure of the
// indicator itself never masks it.
func WithSpinner(message string, work func() error) error {
	if !isInteractive() {
		return work()
	}

	var workErr error
	done := make(chan struct{})
	go func() {
		workErr = work()
		close(done)
	}()

	model := newSpinnerModel(message, done)
	_, _ = tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()

	<-done
	return workErr
}

func isInteractive() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
