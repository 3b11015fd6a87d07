package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/platform/audio"
	"github.com/vovakirdan/starlane/internal/platform/tui"
	"github.com/vovakirdan/starlane/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the current terminal.

Controls:
  A/Left, D/Right - Move
  Space           - Fire
  Enter           - Start
  P/Esc           - Pause / resume
  R               - Back to the title screen after game over
  Ctrl+S          - Save a text screenshot
  Q/Ctrl+C        - Quit

Every finished run with a score is saved as a replay.

Examples:
  starlane play
  starlane play --difficulty easy
  starlane play --seed 42 --mute
  starlane play --config ./my-starlane.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	restore := fileLogger()
	defer restore()

	sink := audio.Open(flagMute, logger)
	defer sink.Close()

	return tui.Run(tui.Options{
		Config:  cfg,
		Preset:  preset,
		Runtime: runtimeConfig(),
		Store:   store,
		Audio:   sink,
		Logger:  logger,
	})
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	return rc
}
