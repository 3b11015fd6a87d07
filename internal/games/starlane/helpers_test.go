package starlane

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

const dt60 = 1.0 / 60

// testConfig returns the default config without random power-up drops.
func testConfig() config.StarlaneConfig {
	cfg := config.DefaultStarlaneConfig()
	cfg.PowerUps.DropChance = 0
	return cfg
}

func newTestContext(cfg *config.StarlaneConfig) *Context {
	return &Context{
		World:     ecs.NewWorld(0),
		Cfg:       cfg,
		RNG:       core.NewSimpleRNG(1),
		Log:       log.New(io.Discard),
		Lives:     cfg.Player.Lives,
		Formation: newFormation(cfg.Formation),
	}
}

// startSim creates a simulation and moves it into Playing with a zero step.
func startSim(cfg config.StarlaneConfig, seed int64) *Sim {
	s := NewSeeded(cfg, seed)
	s.Step(core.NewInputFrame(core.CommandStart), 0)
	return s
}

func hasSound(sounds []SoundKind, k SoundKind) bool {
	for _, s := range sounds {
		if s == k {
			return true
		}
	}
	return false
}

func countFaction(w *ecs.World, f Faction) int {
	n := 0
	for e := range w.Query(ecs.MaskOf(CFaction)) {
		if got, _ := ecs.GetAs[Faction](w, e); got == f {
			n++
		}
	}
	return n
}
