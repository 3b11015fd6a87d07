// Package starlane implements the simulation core of a vertical arcade
// shooter: entities, movement, waves of enemies, collisions, scoring and
// the top-level game state. It has no terminal, audio or clock dependency;
// the platform layer feeds it input frames and a time step and consumes
// the exported Frame.
package starlane

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// Option configures a Sim.
type Option func(*Sim)

// WithLogger routes simulation debug logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Sim) {
		if l != nil {
			s.ctx.Log = l
		}
	}
}

// WithCapacity preallocates room for n entities.
func WithCapacity(n int) Option {
	return func(s *Sim) {
		s.ctx.World = ecs.NewWorld(n)
	}
}

// Sim runs one game. It is not safe for concurrent use; the owner calls
// Step from a single goroutine.
type Sim struct {
	ctx     Context
	cfg     config.StarlaneConfig
	machine *Machine
	spawner *Spawner
	tick    uint64
}

// New creates a simulation in the Menu state. The same config, RNG seed
// and sequence of Step calls always produce the same frames.
func New(cfg config.StarlaneConfig, rng core.RNG, opts ...Option) *Sim {
	s := &Sim{cfg: cfg, machine: NewMachine()}
	s.ctx = Context{
		World: ecs.NewWorld(256),
		Cfg:   &s.cfg,
		RNG:   rng,
		Log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.spawner = NewSpawner(&s.cfg)
	s.resetRun()
	return s
}

// NewSeeded is New with the package's deterministic generator.
func NewSeeded(cfg config.StarlaneConfig, seed int64, opts ...Option) *Sim {
	return New(cfg, core.NewSimpleRNG(seed), opts...)
}

// Step advances the simulation by dt seconds under the given input and
// returns the resulting frame. Negative or non-finite dt is treated as 0.
//
// Order within a step: state commands, player and enemy control, movement,
// spawning, collision detection, resolution, export.
func (s *Sim) Step(in core.InputFrame, dt float64) Frame {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	s.tick++
	s.ctx.sounds = s.ctx.sounds[:0]

	s.handleStateCommands(in)

	if s.machine.Simulating() {
		ctx := &s.ctx
		SteerPlayer(ctx, in, dt)
		DriveEnemies(ctx, dt)
		Move(ctx, dt)
		if s.spawner.Update(ctx, dt) {
			ctx.Request(TransitionNextWave)
		}
		DetectCollisions(ctx)
		Resolve(ctx, ctx.Events.Drain())
		s.applyRequests()
	} else {
		s.rejectIdleCommands(in)
	}

	frame := Export(&s.ctx, s.tick, s.HUD())
	s.ctx.World.Maintain()
	return frame
}

// State returns the current game state.
func (s *Sim) State() State {
	return s.machine.State()
}

// HUD returns the current heads-up display data.
func (s *Sim) HUD() HUD {
	h := HUD{
		Score: s.ctx.Score,
		Lives: s.ctx.Lives,
		Wave:  s.spawner.State().Wave,
		State: s.machine.State(),
	}
	if pu, err := ecs.GetAs[PowerUp](s.ctx.World, s.ctx.Player); err == nil {
		h.PowerUp = pu.Kind
		h.PowerUpLeft = pu.TimeLeft
	}
	return h
}

// Wave returns the spawner's progress through the current wave.
func (s *Sim) Wave() WaveState {
	return s.spawner.State()
}

// Stats returns kills and escaped enemies for the current run.
func (s *Sim) Stats() (kills, escaped int) {
	return s.ctx.Kills, s.ctx.Escaped
}

// Config returns the config the simulation runs with.
func (s *Sim) Config() config.StarlaneConfig {
	return s.cfg
}

// handleStateCommands feeds Pause, Unpause, Restart and Start to the state
// machine. Rejected requests are logged and ignored.
func (s *Sim) handleStateCommands(in core.InputFrame) {
	for _, c := range in.List() {
		var t Transition
		switch c {
		case core.CommandPause:
			t = TransitionPause
		case core.CommandUnpause:
			t = TransitionUnpause
		case core.CommandRestart:
			t = TransitionRestart
		case core.CommandStart:
			t = TransitionStart
		default:
			continue
		}
		s.transition(t)
	}
}

// rejectIdleCommands logs gameplay commands that arrive outside Playing.
func (s *Sim) rejectIdleCommands(in core.InputFrame) {
	for _, c := range []core.Command{core.CommandMoveLeft, core.CommandMoveRight, core.CommandFire} {
		if in.Has(c) {
			s.ctx.Log.Debug("command ignored", "command", c, "state", s.machine.State(), "err", ErrInvalidTransition)
		}
	}
}

// applyRequests processes transitions requested by systems this step.
// GameOver goes first: a run that ends in the same frame its wave clears
// does not start the next wave.
func (s *Sim) applyRequests() {
	reqs := s.ctx.requests
	s.ctx.requests = nil
	if slices.Contains(reqs, TransitionGameOver) {
		s.transition(TransitionGameOver)
		reqs = slices.DeleteFunc(reqs, func(t Transition) bool {
			return t == TransitionGameOver || t == TransitionNextWave
		})
	}
	for _, t := range reqs {
		s.transition(t)
	}
}

// transition requests t and runs the side effects of the state change.
func (s *Sim) transition(t Transition) {
	prev, err := s.machine.Request(t)
	if err != nil {
		s.ctx.Log.Debug("transition ignored", "err", err)
		return
	}
	next := s.machine.State()
	s.ctx.Log.Debug("state change", "from", prev, "to", next, "via", t)

	switch {
	case prev == StateMenu && next == StatePlaying:
		s.startRun()
	case prev == StateGameOver && next == StateMenu:
		s.resetRun()
	case t == TransitionNextWave:
		s.nextWave()
	}
}

// startRun places the player and starts wave 1.
func (s *Sim) startRun() {
	SpawnPlayer(&s.ctx)
	s.beginWave(1)
}

// nextWave starts the wave after the current one.
func (s *Sim) nextWave() {
	s.ctx.Emit(SoundWaveCleared)
	s.beginWave(s.spawner.State().Wave + 1)
}

func (s *Sim) beginWave(n int) {
	s.ctx.Provoked = false
	if err := s.spawner.BeginWave(n); err != nil {
		s.ctx.Log.Warn("wave config rejected, using defaults", "wave", n, "err", err)
	}
	s.ctx.Log.Debug("wave started", "wave", n, "budget", s.spawner.State().Budget)
}

// resetRun returns score, lives, wave progress and the world to their
// initial values. It runs at construction and on GameOver -> Menu only.
func (s *Sim) resetRun() {
	s.ctx.World.Clear()
	s.ctx.Events.Drain()
	s.ctx.requests = nil
	s.ctx.Player = ecs.Nil
	s.ctx.Score = 0
	s.ctx.Lives = s.cfg.Player.Lives
	s.ctx.Provoked = false
	s.ctx.Kills = 0
	s.ctx.Escaped = 0
	s.ctx.Formation = newFormation(s.cfg.Formation)
	s.spawner.Reset()
}
