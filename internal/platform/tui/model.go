package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
	"github.com/vovakirdan/starlane/internal/platform/audio"
	"github.com/vovakirdan/starlane/internal/replay"
	"github.com/vovakirdan/starlane/internal/storage"
)

// Options configure a session.
type Options struct {
	Config  config.StarlaneConfig
	Preset  config.DifficultyPreset
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables replay saving
	Audio   audio.Sink     // nil means silent
	Logger  *log.Logger
}

func (o *Options) defaults() {
	if o.Audio == nil {
		o.Audio = audio.Nop{}
	}
	if o.Logger == nil {
		o.Logger = log.New(os.Stderr)
	}
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = 60
	}
	if o.Runtime.Seed == 0 {
		o.Runtime.Seed = time.Now().UnixNano()
	}
}

// Model is the Bubble Tea model for a Starlane session. It either plays
// live, recording every step, or plays back a stored replay.
type Model struct {
	opts   Options
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	latch  InputLatch

	rec      *replay.Recorder
	playback *replay.Player
	replayID int64

	frame    starlane.Frame
	savedID  int64
	saved    bool
	finished bool
	quitting bool
}

// NewModel creates a live session.
func NewModel(opts Options) Model {
	opts.defaults()
	m := newModel(opts)
	m.newRun()
	return m
}

// NewReplayModel creates a session that plays back rec. Input other than
// quit and help is ignored.
func NewReplayModel(opts Options, id int64, rec *storage.Replay) Model {
	if rec.TickRate > 0 {
		opts.Runtime.TickRate = rec.TickRate
	}
	opts.defaults()
	m := newModel(opts)
	m.replayID = id
	m.playback = replay.NewPlayer(opts.Config, rec, starlane.WithLogger(opts.Logger))
	if err := m.playback.CheckConfig(); err != nil {
		m.opts.Logger.Warn("replay recorded with a different config", "id", id, "err", err)
	}
	return m
}

func newModel(opts Options) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		opts:   opts,
		screen: core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 0)),
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// newRun starts a fresh simulation. Each run gets its own seed so every
// saved replay starts from a clean simulation.
func (m *Model) newRun() {
	if m.rec != nil {
		m.opts.Runtime.Seed = time.Now().UnixNano()
	}
	sim := starlane.NewSeeded(m.opts.Config, m.opts.Runtime.Seed, starlane.WithLogger(m.opts.Logger))
	m.rec = replay.NewRecorder(sim, m.opts.Runtime.Seed)
	m.frame = starlane.Frame{HUD: sim.HUD()}
	m.saved = false
	m.savedID = 0
	m.latch.Reset()
	m.opts.Logger.Debug("new run", "seed", m.opts.Runtime.Seed)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.opts.Audio.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if m.playback == nil {
		m.latch.Press(m.keys, msg, m.frame.HUD.State)
	}
	return m, nil
}

// handleResize only changes the drawing surface. The playfield is fixed in
// world units, so the running game is not disturbed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.playback != nil {
		return m.stepPlayback()
	}

	prev := m.frame.HUD.State
	m.frame = m.rec.Step(m.latch.Take(), m.opts.Runtime.FrameDelta())
	m.playSounds()

	switch state := m.frame.HUD.State; {
	case state == starlane.StateGameOver && !m.saved:
		m.saveReplay()
	case prev == starlane.StateGameOver && state == starlane.StateMenu:
		m.newRun()
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m Model) stepPlayback() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, tickCmd(m.opts.Runtime.TickRate)
	}
	frame, ok := m.playback.Next()
	if !ok {
		m.finished = true
		if _, err := m.playback.Verify(); err != nil {
			m.opts.Logger.Warn("replay diverged", "id", m.replayID, "err", err)
		}
		return m, tickCmd(m.opts.Runtime.TickRate)
	}
	m.frame = frame
	m.playSounds()
	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m *Model) playSounds() {
	for _, s := range m.frame.Sounds {
		m.opts.Audio.Play(s)
	}
}

// saveReplay stores the finished run. Failures are logged; the game
// continues regardless.
func (m *Model) saveReplay() {
	m.saved = true
	if m.opts.Store == nil || m.frame.HUD.Score == 0 {
		return
	}
	rec := m.rec.Replay(string(m.opts.Preset), m.opts.Runtime.TickRate)
	id, err := m.opts.Store.SaveReplay(rec)
	if err != nil {
		m.opts.Logger.Error("save replay", "err", err)
		return
	}
	m.savedID = id
	m.opts.Logger.Info("replay saved", "id", id, "score", rec.Score, "wave", rec.Wave, "frames", len(rec.Frames))
}

// status is the HUD text shown in place of the power-up timer.
func (m Model) status() string {
	switch {
	case m.playback != nil:
		played, total := m.playback.Progress()
		if m.finished {
			return fmt.Sprintf("REPLAY #%d done", m.replayID)
		}
		return fmt.Sprintf("REPLAY #%d %d/%d", m.replayID, played, total)
	case m.savedID != 0:
		return fmt.Sprintf("saved replay #%d", m.savedID)
	}
	return ""
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.frame, m.opts.Config.Playfield, m.status())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".starlane", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("starlane_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current frame and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	DrawFrame(m.screen, m.frame, m.opts.Config.Playfield, m.status())
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts a live session in the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunReplay plays a stored replay in the current terminal.
func RunReplay(opts Options, id int64, rec *storage.Replay) error {
	p := tea.NewProgram(NewReplayModel(opts, id, rec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
