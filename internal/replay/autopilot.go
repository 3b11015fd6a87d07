package replay

import (
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
)

// Autopilot is a scripted pilot for headless runs: it starts the game,
// then sweeps side to side while holding fire. It reads nothing but the
// tick and state, so its input depends only on the simulation's own output.
type Autopilot struct {
	// SweepTicks is how long each sweep in one direction lasts.
	SweepTicks uint64
}

// Input returns the commands for the step that follows a frame with the
// given tick and state.
func (a Autopilot) Input(tick uint64, state starlane.State) core.InputFrame {
	switch state {
	case starlane.StateMenu:
		return core.NewInputFrame(core.CommandStart)
	case starlane.StatePaused:
		return core.NewInputFrame(core.CommandUnpause)
	case starlane.StatePlaying:
	default:
		return 0
	}

	sweep := a.SweepTicks
	if sweep == 0 {
		sweep = 90
	}
	in := core.NewInputFrame(core.CommandFire)
	if (tick/sweep)%2 == 0 {
		in.Set(core.CommandMoveLeft)
	} else {
		in.Set(core.CommandMoveRight)
	}
	return in
}

// Run drives rec with the autopilot until the game ends or maxSteps steps
// have been taken, and returns the last frame.
func (a Autopilot) Run(rec *Recorder, dt float64, maxSteps int) starlane.Frame {
	sim := rec.Sim()
	var frame starlane.Frame
	tick, state := uint64(0), sim.State()
	for range maxSteps {
		frame = rec.Step(a.Input(tick, state), dt)
		tick, state = frame.Tick, frame.HUD.State
		if state == starlane.StateGameOver {
			break
		}
	}
	return frame
}
