package starlane

import (
	"errors"
	"testing"
)

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     State
		via      Transition
		expected State
		wantErr  bool
	}{
		{"start from menu", StateMenu, TransitionStart, StatePlaying, false},
		{"restart from menu", StateMenu, TransitionRestart, StatePlaying, false},
		{"pause while playing", StatePlaying, TransitionPause, StatePaused, false},
		{"unpause", StatePaused, TransitionUnpause, StatePlaying, false},
		{"game over", StatePlaying, TransitionGameOver, StateGameOver, false},
		{"next wave keeps playing", StatePlaying, TransitionNextWave, StatePlaying, false},
		{"restart after game over", StateGameOver, TransitionRestart, StateMenu, false},
		{"pause in menu", StateMenu, TransitionPause, StateMenu, true},
		{"unpause while playing", StatePlaying, TransitionUnpause, StatePlaying, true},
		{"next wave while paused", StatePaused, TransitionNextWave, StatePaused, true},
		{"game over while paused", StatePaused, TransitionGameOver, StatePaused, true},
		{"start after game over", StateGameOver, TransitionStart, StateGameOver, true},
		{"restart while playing", StatePlaying, TransitionRestart, StatePlaying, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &Machine{state: tc.from}
			prev, err := m.Request(tc.via)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("Request(%s) error = %v, expected ErrInvalidTransition", tc.via, err)
				}
			} else if err != nil {
				t.Errorf("Request(%s) error = %v", tc.via, err)
			}
			if prev != tc.from {
				t.Errorf("Request(%s) prev = %s, expected %s", tc.via, prev, tc.from)
			}
			if m.State() != tc.expected {
				t.Errorf("State() = %s, expected %s", m.State(), tc.expected)
			}
		})
	}
}

func TestMachineSimulating(t *testing.T) {
	m := NewMachine()
	if m.State() != StateMenu {
		t.Fatalf("initial state = %s, expected Menu", m.State())
	}
	if m.Simulating() {
		t.Error("Menu should not simulate")
	}
	_, _ = m.Request(TransitionStart)
	if !m.Simulating() {
		t.Error("Playing should simulate")
	}
	_, _ = m.Request(TransitionPause)
	if m.Simulating() {
		t.Error("Paused should not simulate")
	}
}
