// Package replay records simulation runs and plays them back. A run is
// fully described by its config, seed, and the input frames and time steps
// fed to Step, so playback reproduces every frame bit for bit.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
	"github.com/vovakirdan/starlane/internal/storage"
)

var (
	// ErrDiverged is returned when playback does not end on the recorded frame.
	ErrDiverged = errors.New("replay: playback diverged from recording")

	// ErrConfigMismatch is returned when a replay is played with a config
	// other than the one it was recorded with.
	ErrConfigMismatch = errors.New("replay: config differs from recording")
)

// Recorder steps a simulation and keeps every input it was given.
type Recorder struct {
	sim    *starlane.Sim
	seed   int64
	frames []storage.Frame
	last   starlane.Frame
}

// NewRecorder wraps sim, which must have been created with seed.
func NewRecorder(sim *starlane.Sim, seed int64) *Recorder {
	return &Recorder{sim: sim, seed: seed}
}

// Sim returns the wrapped simulation.
func (r *Recorder) Sim() *starlane.Sim {
	return r.sim
}

// Step advances the simulation and records the step.
func (r *Recorder) Step(in core.InputFrame, dt float64) starlane.Frame {
	r.frames = append(r.frames, storage.Frame{Input: in, DT: dt})
	r.last = r.sim.Step(in, dt)
	return r.last
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Replay returns the recording so far, ready to be saved.
func (r *Recorder) Replay(preset string, tickRate int) storage.Replay {
	frames := make([]storage.Frame, len(r.frames))
	copy(frames, r.frames)
	return storage.Replay{
		Seed:      r.seed,
		Preset:    preset,
		TickRate:  tickRate,
		Score:     r.last.HUD.Score,
		Wave:      r.last.HUD.Wave,
		FinalHash: r.last.Hash(),
		ConfigFP:  config.Fingerprint(r.sim.Config()),
		Frames:    frames,
	}
}

// Reset drops the recording. The simulation itself is left alone.
func (r *Recorder) Reset() {
	r.frames = nil
	r.last = starlane.Frame{}
}

// Player steps a fresh simulation through a recording.
type Player struct {
	sim  *starlane.Sim
	rec  *storage.Replay
	next int
	last starlane.Frame
}

// NewPlayer prepares playback of rec with cfg. cfg must be the config the
// run was recorded with, after applying rec.Preset.
func NewPlayer(cfg config.StarlaneConfig, rec *storage.Replay, opts ...starlane.Option) *Player {
	return &Player{
		sim: starlane.NewSeeded(cfg, rec.Seed, opts...),
		rec: rec,
	}
}

// CheckConfig reports ErrConfigMismatch when the playback config is not
// the recorded one. Replays saved without a fingerprint always pass.
func (p *Player) CheckConfig() error {
	if p.rec.ConfigFP == 0 {
		return nil
	}
	if got := config.Fingerprint(p.sim.Config()); got != p.rec.ConfigFP {
		return fmt.Errorf("%w: fingerprint %x, recorded %x", ErrConfigMismatch, got, p.rec.ConfigFP)
	}
	return nil
}

// Done reports whether every recorded step has been played.
func (p *Player) Done() bool {
	return p.next >= len(p.rec.Frames)
}

// Progress returns played and total step counts.
func (p *Player) Progress() (played, total int) {
	return p.next, len(p.rec.Frames)
}

// Next plays one recorded step. ok is false once the recording is
// exhausted.
func (p *Player) Next() (frame starlane.Frame, ok bool) {
	if p.Done() {
		return p.last, false
	}
	f := p.rec.Frames[p.next]
	p.next++
	p.last = p.sim.Step(f.Input, f.DT)
	return p.last, true
}

// Verify plays the rest of the recording and checks the final frame
// against the recorded hash.
func (p *Player) Verify() (starlane.Frame, error) {
	for !p.Done() {
		p.Next()
	}
	if len(p.rec.Frames) == 0 {
		return p.last, nil
	}
	if got := p.last.Hash(); got != p.rec.FinalHash {
		err := fmt.Errorf("%w: final hash %d, recorded %d", ErrDiverged, got, p.rec.FinalHash)
		if cerr := p.CheckConfig(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return p.last, err
	}
	return p.last, nil
}
