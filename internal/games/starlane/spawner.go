package starlane

import (
	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// WaveState is the spawner's progress through the current wave.
type WaveState struct {
	Wave     int     // 1-based; 0 before the first wave
	Budget   int     // enemies still to spawn
	Interval float64 // seconds between spawns
	Timer    float64 // seconds until the next spawn becomes due
	Due      int     // spawns that became due but have not happened yet
	Spawned  int     // enemies spawned this wave
	Kind     string  // forced kind, "" for the default mix
}

// Spawner creates enemies on a timer until the wave's budget is spent.
// At most one enemy is created per frame; spawns that fall due while
// another is pending are queued, never dropped.
type Spawner struct {
	cfg     *config.StarlaneConfig
	state   WaveState
	lastErr error
}

// NewSpawner returns a spawner that has not started any wave.
func NewSpawner(cfg *config.StarlaneConfig) *Spawner {
	return &Spawner{cfg: cfg}
}

// State returns the current wave state.
func (s *Spawner) State() WaveState {
	return s.state
}

// LastError returns the configuration error reported by the most recent
// BeginWave, or nil.
func (s *Spawner) LastError() error {
	return s.lastErr
}

// Reset drops all wave progress.
func (s *Spawner) Reset() {
	s.state = WaveState{}
	s.lastErr = nil
}

// BeginWave loads the parameters of wave n. Malformed parameters are
// replaced by defaults and the *config.ConfigurationError is returned so
// the caller can report it; the wave starts either way.
func (s *Spawner) BeginWave(n int) error {
	p := s.cfg.Waves.Params(n)
	err := p.Validate(n)
	if err != nil {
		p = p.Sanitized()
	}
	s.lastErr = err
	s.state = WaveState{
		Wave:     n,
		Budget:   p.Budget,
		Interval: p.Interval,
		Timer:    p.Interval,
		Kind:     p.Kind,
	}
	return err
}

// Update advances the spawn timer by dt and spawns at most one enemy. It
// reports whether the wave is complete: nothing left to spawn and no
// enemy alive.
func (s *Spawner) Update(ctx *Context, dt float64) (complete bool) {
	st := &s.state
	if st.Wave == 0 {
		return false
	}
	if dt < 0 {
		dt = 0
	}

	if st.Due < st.Budget {
		st.Timer -= dt
		for st.Timer <= 0 && st.Due < st.Budget {
			st.Due++
			st.Timer += st.Interval
		}
	}

	if st.Due > 0 && st.Budget > 0 {
		kind := s.nextKind()
		x := s.lane(ctx)
		e := SpawnEnemy(ctx, kind, x, ctx.Cfg.Playfield.MinY)
		st.Due--
		st.Budget--
		st.Spawned++
		ctx.Log.Debug("enemy spawned", "wave", st.Wave, "kind", kind, "entity", e, "x", x, "budget", st.Budget)
	}

	return st.Budget == 0 && st.Due == 0 && ctx.World.Count(ecs.MaskOf(CEnemy)) == 0
}

// nextKind picks the kind of the next enemy. Later waves mix in fighters
// and then bombers.
func (s *Spawner) nextKind() EnemyKind {
	if k, ok := parseEnemyKind(s.state.Kind); ok {
		return k
	}
	wave, i := s.state.Wave, s.state.Spawned
	switch {
	case wave >= 3 && i%5 == 4:
		return EnemyBomber
	case wave >= 2 && i%3 == 2:
		return EnemyFighter
	default:
		return EnemyScout
	}
}

// lane picks a whole-unit x position inside the spawn margins.
func (s *Spawner) lane(ctx *Context) float64 {
	pf := ctx.Cfg.Playfield
	margin := s.cfg.Waves.LaneMargin
	lo := pf.MinX + margin
	span := int(pf.MaxX - margin - lo)
	if span < 0 {
		return (pf.MinX + pf.MaxX) / 2
	}
	return lo + float64(ctx.RNG.Intn(span+1))
}
