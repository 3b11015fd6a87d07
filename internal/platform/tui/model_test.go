package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
	"github.com/vovakirdan/starlane/internal/replay"
	"github.com/vovakirdan/starlane/internal/storage"
)

func testOptions() Options {
	return Options{
		Config:  config.DefaultStarlaneConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11},
		Logger:  log.New(io.Discard),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return mm
}

func TestModelStartsAndPauses(t *testing.T) {
	m := NewModel(testOptions())
	if m.frame.HUD.State != starlane.StateMenu {
		t.Fatalf("initial state = %s, expected Menu", m.frame.HUD.State)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	if m.frame.HUD.State != starlane.StatePlaying {
		t.Fatalf("state after Enter = %s, expected Playing", m.frame.HUD.State)
	}
	if m.frame.HUD.Wave != 1 {
		t.Errorf("Wave = %d, expected 1", m.frame.HUD.Wave)
	}

	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg{})
	if m.frame.HUD.State != starlane.StatePaused {
		t.Fatalf("state after p = %s, expected Paused", m.frame.HUD.State)
	}
	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg{})
	if m.frame.HUD.State != starlane.StatePlaying {
		t.Errorf("state after second p = %s, expected Playing", m.frame.HUD.State)
	}
	if m.rec.Len() != 3 {
		t.Errorf("recorded %d steps, expected 3", m.rec.Len())
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(testOptions())
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if v := next.View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := NewModel(testOptions())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
	if m.frame.HUD.State != starlane.StatePlaying {
		t.Errorf("state after resize = %s, expected Playing", m.frame.HUD.State)
	}
	if !strings.Contains(m.View(), "SCORE") {
		t.Error("View() should draw the HUD")
	}
}

func TestModelSavesReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := testOptions()
	opts.Store = store
	opts.Preset = config.DifficultyHard
	m := NewModel(opts)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for range 30 {
		m = update(t, m, TickMsg{})
	}

	m.frame.HUD.Score = 100
	m.saveReplay()
	if m.savedID == 0 {
		t.Fatal("saveReplay() did not store the run")
	}
	if !strings.Contains(m.status(), "saved replay") {
		t.Errorf("status() = %q", m.status())
	}

	list, err := store.ListReplays(10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(list) != 1 || list[0].FrameCount != 30 || list[0].Preset != "hard" || list[0].Seed != 11 {
		t.Errorf("ListReplays() = %+v", list)
	}
}

func TestReplayModelPlaysToTheEnd(t *testing.T) {
	opts := testOptions()
	rec := replay.NewRecorder(starlane.NewSeeded(opts.Config, 3), 3)
	replay.Autopilot{}.Run(rec, 1.0/60, 120)
	r := rec.Replay("", 60)

	m := NewReplayModel(opts, 9, &r)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for range rec.Len() + 1 {
		m = update(t, m, TickMsg{})
	}

	if !m.finished {
		t.Fatal("playback should be finished")
	}
	if got := m.status(); got != "REPLAY #9 done" {
		t.Errorf("status() = %q, expected %q", got, "REPLAY #9 done")
	}
	if m.frame.Hash() != r.FinalHash {
		t.Errorf("played frame hash = %d, expected %d", m.frame.Hash(), r.FinalHash)
	}
}
