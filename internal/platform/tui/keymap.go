package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
)

// holdTicks is how long a movement key stays active after a press.
// Terminals report no key release, so movement is latched across the gap
// between auto-repeat events.
const holdTicks = 6

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Pause      key.Binding
	Start      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Fire},
		{k.Start, k.Pause, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// InputLatch collects commands between ticks. One-shot commands last a
// single tick; movement stays held for holdTicks.
type InputLatch struct {
	pending core.InputFrame
	left    int
	right   int
}

// Press translates a key into commands. The game state decides whether
// Pause means pause or unpause. It returns false for keys that are not
// game input.
func (l *InputLatch) Press(keys KeyMap, msg tea.KeyMsg, state starlane.State) bool {
	switch {
	case key.Matches(msg, keys.Left):
		l.left, l.right = holdTicks, 0
	case key.Matches(msg, keys.Right):
		l.right, l.left = holdTicks, 0
	case key.Matches(msg, keys.Fire):
		l.pending.Set(core.CommandFire)
	case key.Matches(msg, keys.Pause):
		if state == starlane.StatePaused {
			l.pending.Set(core.CommandUnpause)
		} else {
			l.pending.Set(core.CommandPause)
		}
	case key.Matches(msg, keys.Start):
		l.pending.Set(core.CommandStart)
	case key.Matches(msg, keys.Restart):
		l.pending.Set(core.CommandRestart)
	default:
		return false
	}
	return true
}

// Take returns the input for the next tick and ages held movement.
func (l *InputLatch) Take() core.InputFrame {
	in := l.pending
	l.pending.Clear()
	if l.left > 0 {
		in.Set(core.CommandMoveLeft)
		l.left--
	}
	if l.right > 0 {
		in.Set(core.CommandMoveRight)
		l.right--
	}
	return in
}

// Reset drops everything pending.
func (l *InputLatch) Reset() {
	*l = InputLatch{}
}
