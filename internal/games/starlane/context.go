package starlane

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// Context is the simulation state shared by the systems. Every system
// receives it explicitly; nothing in the package keeps global state.
//
// Score and Lives are written only by the resolver (and by a restart).
type Context struct {
	World  *ecs.World
	Cfg    *config.StarlaneConfig
	RNG    core.RNG
	Events EventQueue
	Log    *log.Logger

	Player ecs.Entity
	Score  int
	Lives  int

	// Provoked is set once the player fires in the current wave. Armed
	// enemies hold fire until then.
	Provoked bool

	Formation Formation

	// Stats for the current run.
	Kills   int
	Escaped int

	sounds   []SoundKind
	requests []Transition
}

// Emit queues a sound for this frame's export.
func (c *Context) Emit(s SoundKind) {
	c.sounds = append(c.sounds, s)
}

// Request asks the state machine for a transition at the end of the
// current system pass.
func (c *Context) Request(t Transition) {
	c.requests = append(c.requests, t)
}

// Formation is the shared horizontal sway of every enemy. The direction
// flips every SwayPeriod seconds.
type Formation struct {
	Left  bool
	Timer float64
}

// newFormation starts half way through a period so the first sweep is
// centered on the spawn lanes.
func newFormation(cfg config.FormationConfig) Formation {
	return Formation{Left: true, Timer: cfg.SwayPeriod / 2}
}

// Advance moves the sway timer and returns the horizontal velocity.
func (f *Formation) Advance(cfg config.FormationConfig, dt float64) float64 {
	if cfg.SwayPeriod <= 0 || cfg.SwaySpeed == 0 {
		return 0
	}
	f.Timer -= dt
	if f.Timer <= 0 {
		// Flips elapsed this step, counted without looping per period.
		over := -f.Timer
		n := math.Floor(over/cfg.SwayPeriod) + 1
		if math.Mod(n, 2) == 1 {
			f.Left = !f.Left
		}
		f.Timer = cfg.SwayPeriod - math.Mod(over, cfg.SwayPeriod)
		if !(f.Timer > 0 && f.Timer <= cfg.SwayPeriod) {
			f.Timer = cfg.SwayPeriod
		}
	}
	if f.Left {
		return -cfg.SwaySpeed
	}
	return cfg.SwaySpeed
}
