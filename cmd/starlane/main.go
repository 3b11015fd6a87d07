// starlane is a vertical arcade shooter for the terminal.
//
// Usage:
//
//	starlane play             - Play a game
//	starlane replays          - List or browse recorded replays
//	starlane replay <id>      - Watch or verify a recorded replay
//	starlane simulate         - Run a headless autopilot game
//	starlane serve            - Start SSH server for remote play
//	starlane config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.starlane/replays.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - Preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
//	--profile <mode>      - cpu or mem; writes a pprof profile on exit
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starlane/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagProfile    string

	logger   = log.New(os.Stderr)
	profiler interface{ Stop() }
)

func main() {
	err := rootCmd.Execute()
	if profiler != nil {
		profiler.Stop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starlane",
	Short: "Starlane - a vertical arcade shooter in your terminal",
	Long: `Starlane is a terminal arcade shooter. Waves of enemies descend
from the top of the screen; shoot them down before they slip past you.

Available commands:
  play      - Play a game
  replays   - List or browse recorded replays
  replay    - Watch or verify a recorded replay
  simulate  - Run a headless autopilot game
  serve     - Start SSH server for remote play
  config    - Print the effective configuration

Examples:
  starlane play
  starlane play --difficulty hard --seed 42
  starlane replays --browse
  starlane replay 3 --verify
  starlane serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)

		switch flagProfile {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		case "mem":
			profiler = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
		default:
			return fmt.Errorf("invalid --profile %q: expected cpu or mem", flagProfile)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starlane/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Write a pprof profile: cpu or mem")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves --config and --difficulty into a validated config.
func loadConfig() (config.StarlaneConfig, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return cfg, "", fmt.Errorf("unknown difficulty %q: expected easy, normal or hard", flagDifficulty)
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// fileLogger redirects logging to ~/.starlane/starlane.log while the
// terminal belongs to the game. The returned func restores stderr.
func fileLogger() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		return func() {}
	}
	dir := filepath.Join(home, ".starlane")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "starlane.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return func() {}
	}
	logger.SetOutput(f)
	logger.SetReportTimestamp(true)
	return func() {
		logger.SetOutput(os.Stderr)
		logger.SetReportTimestamp(false)
		f.Close()
	}
}
