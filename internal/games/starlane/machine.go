package starlane

import (
	"errors"
	"fmt"
)

// State is the top-level game state.
type State uint8

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Transition is a request to change state.
type Transition uint8

const (
	TransitionStart Transition = iota
	TransitionPause
	TransitionUnpause
	TransitionGameOver
	TransitionRestart
	TransitionNextWave // stays in Playing
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionStart:
		return "Start"
	case TransitionPause:
		return "Pause"
	case TransitionUnpause:
		return "Unpause"
	case TransitionGameOver:
		return "GameOver"
	case TransitionRestart:
		return "Restart"
	case TransitionNextWave:
		return "NextWave"
	default:
		return "Unknown"
	}
}

// ErrInvalidTransition is returned when a transition is not allowed from the
// current state. Callers log and ignore it.
var ErrInvalidTransition = errors.New("starlane: invalid transition")

type edge struct {
	from State
	via  Transition
}

// transitions is the complete transition table.
var transitions = map[edge]State{
	{StateMenu, TransitionStart}:       StatePlaying,
	{StateMenu, TransitionRestart}:     StatePlaying,
	{StatePlaying, TransitionPause}:    StatePaused,
	{StatePlaying, TransitionGameOver}: StateGameOver,
	{StatePlaying, TransitionNextWave}: StatePlaying,
	{StatePaused, TransitionUnpause}:   StatePlaying,
	{StateGameOver, TransitionRestart}: StateMenu,
}

// Machine gates which systems run each frame.
type Machine struct {
	state State
}

// NewMachine returns a machine in the Menu state.
func NewMachine() *Machine {
	return &Machine{state: StateMenu}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Simulating reports whether gameplay systems run this frame.
func (m *Machine) Simulating() bool {
	return m.state == StatePlaying
}

// Request applies t. On success it returns the previous state; otherwise
// the state is unchanged and the error wraps ErrInvalidTransition.
func (m *Machine) Request(t Transition) (State, error) {
	next, ok := transitions[edge{m.state, t}]
	if !ok {
		return m.state, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, t, m.state)
	}
	prev := m.state
	m.state = next
	return prev, nil
}
