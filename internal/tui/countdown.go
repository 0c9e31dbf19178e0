package tui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user quits the countdown.
var ErrAborted = errors.New("booking aborted before sign-in")

// IsTerminal reports whether stderr, where the countdown draws, is a
// terminal.
func IsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Countdown blocks until at, drawing a countdown on stderr. d is only used
// to skip the program when nothing is left to wait for.
func Countdown(d time.Duration, at time.Time) error {
	if d <= 0 {
		return nil
	}
	p := tea.NewProgram(NewModel(at, "Signing in"), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "countdown")
	}
	if m, ok := final.(Model); ok && m.Aborted() {
		return errors.WithStack(ErrAborted)
	}
	return nil
}
