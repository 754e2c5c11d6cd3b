package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	forbiddenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1).
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// ForbiddenNotice renders the inline permission-denied box shown when an
// authenticated user's role lacks the capability a command requires. It is
// rendered in place of the command output; no navigation happens.
func ForbiddenNotice(w io.Writer, capability string) {
	msg := fmt.Sprintf("Permission denied\n\nYour role does not grant: %s\nAsk an administrator if you need access.", capability)
	fmt.Fprintln(w, forbiddenStyle.Render(msg))
}

// Success renders a green confirmation line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn renders a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf(format, args...)))
}
