// Package tui renders the sign-in countdown shown while a booking waits for
// the release time.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg asks the model to recompute the time left.
type tickMsg time.Time

type Model struct {
	at        time.Time
	label     string
	remaining time.Duration
	now       func() time.Time
	spinner   spinner.Model
	keys      KeyMap
	help      help.Model
	done      bool
	aborted   bool
}

// NewModel counts down to at. label describes what happens at that moment.
func NewModel(at time.Time, label string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		at:      at,
		label:   label,
		now:     time.Now,
		spinner: s,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	m.remaining = m.left()
	return m
}

func (m Model) left() time.Duration {
	d := m.at.Sub(m.now())
	if d < 0 {
		return 0
	}
	return d
}

func (m Model) tick() tea.Cmd {
	interval := time.Second
	if m.remaining < interval {
		interval = m.remaining
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	if m.remaining <= 0 {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.tick())
}

// Done reports whether the countdown reached zero.
func (m Model) Done() bool {
	return m.done
}

// Aborted reports whether the user quit before the countdown ended.
func (m Model) Aborted() bool {
	return m.aborted
}

// Remaining is the time left as of the last tick.
func (m Model) Remaining() time.Duration {
	return m.remaining
}
