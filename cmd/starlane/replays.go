package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/games/starlane"
	"github.com/vovakirdan/starlane/internal/platform/audio"
	"github.com/vovakirdan/starlane/internal/platform/tui"
	"github.com/vovakirdan/starlane/internal/replay"
	"github.com/vovakirdan/starlane/internal/storage"
)

var (
	flagBrowse bool
	flagLimit  int
	flagVerify bool
	flagDelete bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded replays",
	Long: `Display the most recent replays, newest first.

With --browse, opens an interactive table; press Enter on a replay to
watch it.

Examples:
  starlane replays
  starlane replays --limit 50
  starlane replays --browse`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch, verify or delete a recorded replay",
	Long: `Play back a recorded run in the terminal.

With --verify the replay is re-simulated headless and its final frame is
checked against the recording. A mismatch means the game rules or config
changed since it was recorded.

Replays store a fingerprint of the config they were recorded with, not the
config itself. Play them back with the same --config file; a warning is
printed when the fingerprint differs.

Examples:
  starlane replay 12
  starlane replay 12 --verify
  starlane replay 12 --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive replay browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of replays to list")
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Re-simulate headless and check the final frame")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay")
	replayCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runReplays(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	if flagBrowse {
		rc := runtimeConfig()
		id, err := tui.RunBrowser(store, rc.ScreenW, rc.ScreenH)
		if err != nil || id == 0 {
			return err
		}
		return watchReplay(store, id)
	}

	replays, err := store.ListReplays(flagLimit)
	if err != nil {
		return fmt.Errorf("listing replays: %w", err)
	}

	fmt.Println("Replays")
	fmt.Println()
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Finish a run with 'starlane play' to record one!")
		return nil
	}

	fmt.Printf("  %-6s  %-8s  %-4s  %-8s  %-6s  %s\n", "ID", "Score", "Wave", "Frames", "Preset", "Date")
	fmt.Printf("  %-6s  %-8s  %-4s  %-8s  %-6s  %s\n", "--", "-----", "----", "------", "------", "----")
	for _, r := range replays {
		preset := r.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Printf("  %-6d  %-8d  %-4d  %-8d  %-6s  %s\n",
			r.ID, r.Score, r.Wave, r.FrameCount, preset, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	switch {
	case flagDelete:
		if err := store.DeleteReplay(id); err != nil {
			return err
		}
		fmt.Printf("Deleted replay #%d\n", id)
		return nil
	case flagVerify:
		return verifyReplay(store, id)
	}
	return watchReplay(store, id)
}

// replayConfig rebuilds the config a replay was recorded with. The base
// comes from --config; the recorded preset wins over --difficulty.
func replayConfig(rec *storage.Replay) (config.StarlaneConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, config.ParsePreset(rec.Preset))
	return cfg, nil
}

func loadReplay(store *storage.Store, id int64) (*storage.Replay, config.StarlaneConfig, error) {
	rec, err := store.LoadReplay(id)
	if errors.Is(err, storage.ErrReplayNotFound) {
		return nil, config.StarlaneConfig{}, fmt.Errorf("replay #%d not found; run 'starlane replays' to list them", id)
	}
	if err != nil {
		return nil, config.StarlaneConfig{}, err
	}
	cfg, err := replayConfig(rec)
	return rec, cfg, err
}

func verifyReplay(store *storage.Store, id int64) error {
	rec, cfg, err := loadReplay(store, id)
	if err != nil {
		return err
	}

	start := time.Now()
	player := replay.NewPlayer(cfg, rec, starlane.WithLogger(logger))
	if err := player.CheckConfig(); err != nil {
		logger.Warn("replay recorded with a different config", "id", id, "err", err)
	}
	last, err := player.Verify()
	if err != nil {
		return fmt.Errorf("replay #%d: %w", id, err)
	}
	fmt.Printf("Replay #%d OK: %d frames (%s of play) in %s, score %d, wave %d\n",
		id, len(rec.Frames), rec.Duration().Round(time.Second), time.Since(start).Round(time.Millisecond),
		last.HUD.Score, last.HUD.Wave)
	return nil
}

func watchReplay(store *storage.Store, id int64) error {
	rec, cfg, err := loadReplay(store, id)
	if err != nil {
		return err
	}

	restore := fileLogger()
	defer restore()

	sink := audio.Open(flagMute, logger)
	defer sink.Close()

	if err := tui.RunReplay(tui.Options{
		Config:  cfg,
		Preset:  config.ParsePreset(rec.Preset),
		Runtime: runtimeConfig(),
		Audio:   sink,
		Logger:  logger,
	}, id, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		return err
	}
	return nil
}
