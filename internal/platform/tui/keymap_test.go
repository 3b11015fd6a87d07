package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInputLatchPress(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		state starlane.State
		want  core.Command
	}{
		{"space fires", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, starlane.StatePlaying, core.CommandFire},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, starlane.StateMenu, core.CommandStart},
		{"p pauses while playing", runeKey('p'), starlane.StatePlaying, core.CommandPause},
		{"p unpauses while paused", runeKey('p'), starlane.StatePaused, core.CommandUnpause},
		{"esc unpauses while paused", tea.KeyMsg{Type: tea.KeyEscape}, starlane.StatePaused, core.CommandUnpause},
		{"r restarts", runeKey('r'), starlane.StateGameOver, core.CommandRestart},
		{"a moves left", runeKey('a'), starlane.StatePlaying, core.CommandMoveLeft},
		{"right arrow moves right", tea.KeyMsg{Type: tea.KeyRight}, starlane.StatePlaying, core.CommandMoveRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l InputLatch
			if !l.Press(keys, tt.msg, tt.state) {
				t.Fatalf("Press(%q) = false, expected true", tt.msg.String())
			}
			in := l.Take()
			if !in.Has(tt.want) {
				t.Errorf("Take() = %v, expected %s", in.List(), tt.want)
			}
		})
	}
}

func TestInputLatchIgnoresOtherKeys(t *testing.T) {
	var l InputLatch
	if l.Press(DefaultKeyMap(), runeKey('z'), starlane.StatePlaying) {
		t.Error("Press('z') = true, expected false")
	}
	if in := l.Take(); !in.Empty() {
		t.Errorf("Take() = %v, expected empty", in.List())
	}
}

func TestInputLatchOneShotAndHold(t *testing.T) {
	keys := DefaultKeyMap()
	var l InputLatch
	l.Press(keys, runeKey('d'), starlane.StatePlaying)
	l.Press(keys, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, starlane.StatePlaying)

	first := l.Take()
	if !first.Has(core.CommandFire) || !first.Has(core.CommandMoveRight) {
		t.Fatalf("first Take() = %v, expected Fire and MoveRight", first.List())
	}
	for i := 1; i < holdTicks; i++ {
		in := l.Take()
		if in.Has(core.CommandFire) {
			t.Fatalf("Take() %d repeated Fire", i)
		}
		if !in.Has(core.CommandMoveRight) {
			t.Fatalf("Take() %d dropped MoveRight before %d ticks", i, holdTicks)
		}
	}
	if in := l.Take(); !in.Empty() {
		t.Errorf("Take() after hold = %v, expected empty", in.List())
	}
}

func TestInputLatchDirectionSwitch(t *testing.T) {
	keys := DefaultKeyMap()
	var l InputLatch
	l.Press(keys, runeKey('a'), starlane.StatePlaying)
	l.Press(keys, runeKey('d'), starlane.StatePlaying)

	in := l.Take()
	if in.Has(core.CommandMoveLeft) || !in.Has(core.CommandMoveRight) {
		t.Errorf("Take() = %v, expected only MoveRight", in.List())
	}

	l.Reset()
	if in := l.Take(); !in.Empty() {
		t.Errorf("Take() after Reset = %v, expected empty", in.List())
	}
}
