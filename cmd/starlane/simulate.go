package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
	"github.com/vovakirdan/starlane/internal/replay"
	"github.com/vovakirdan/starlane/internal/storage"
)

var (
	flagSeconds int
	flagSave    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot game",
	Long: `Run the simulation without a terminal, driven by a scripted pilot that
sweeps side to side while firing. Useful for checking determinism and for
profiling: the same seed and config always print the same hash.

Examples:
  starlane simulate --seed 7
  starlane simulate --seed 7 --seconds 600 --profile cpu
  starlane simulate --seed 7 --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSeconds, "seconds", 120, "Simulated seconds to run at most")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store the run as a replay")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	sim := starlane.NewSeeded(cfg, rc.Seed, starlane.WithLogger(logger))
	rec := replay.NewRecorder(sim, rc.Seed)

	start := time.Now()
	last := replay.Autopilot{}.Run(rec, rc.FrameDelta(), flagSeconds*max(rc.TickRate, 1))
	kills, escaped := sim.Stats()

	fmt.Printf("seed %d: %d frames in %s\n", rc.Seed, rec.Len(), time.Since(start).Round(time.Millisecond))
	fmt.Printf("state %s, score %d, wave %d, lives %d, kills %d, escaped %d\n",
		last.HUD.State, last.HUD.Score, last.HUD.Wave, last.HUD.Lives, kills, escaped)
	fmt.Printf("hash %016x\n", last.Hash())

	if !flagSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	id, err := store.SaveReplay(rec.Replay(string(preset), rc.TickRate))
	if err != nil {
		return fmt.Errorf("saving replay: %w", err)
	}
	fmt.Printf("saved replay #%d\n", id)
	return nil
}
