package replay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
	"github.com/vovakirdan/starlane/internal/storage"
)

func record(t *testing.T, cfg config.StarlaneConfig, seed int64, steps int) *Recorder {
	t.Helper()
	rec := NewRecorder(starlane.NewSeeded(cfg, seed), seed)
	for i := range steps {
		in := core.NewInputFrame()
		switch {
		case i == 0:
			in.Set(core.CommandStart)
		case i%3 == 0:
			in.Set(core.CommandFire)
		}
		if (i/50)%2 == 0 {
			in.Set(core.CommandMoveRight)
		} else {
			in.Set(core.CommandMoveLeft)
		}
		rec.Step(in, 1.0/60)
	}
	return rec
}

func TestPlaybackMatchesRecording(t *testing.T) {
	cfg := config.DefaultStarlaneConfig()
	rec := record(t, cfg, 77, 1200)
	r := rec.Replay("normal", 60)

	if len(r.Frames) != 1200 || rec.Len() != 1200 {
		t.Fatalf("recorded %d frames, expected 1200", len(r.Frames))
	}

	p := NewPlayer(cfg, &r)
	last, err := p.Verify()
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if last.HUD.Score != r.Score {
		t.Errorf("Score = %d, expected %d", last.HUD.Score, r.Score)
	}
	if !p.Done() {
		t.Error("player should be done")
	}
	if _, ok := p.Next(); ok {
		t.Error("Next() after the end should report false")
	}
}

func TestPlaybackThroughStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultStarlaneConfig()
	rec := record(t, cfg, 5, 600)
	id, err := store.SaveReplay(rec.Replay("", 60))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	loaded, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if loaded.ConfigFP != config.Fingerprint(cfg) {
		t.Errorf("ConfigFP = %x, expected %x", loaded.ConfigFP, config.Fingerprint(cfg))
	}
	if _, err := NewPlayer(cfg, loaded).Verify(); err != nil {
		t.Errorf("Verify() after a store round trip: %v", err)
	}
}

func TestPlaybackDetectsDivergence(t *testing.T) {
	cfg := config.DefaultStarlaneConfig()
	rec := record(t, cfg, 9, 300)
	r := rec.Replay("", 60)

	other := cfg
	other.Player.Speed *= 2
	_, err := NewPlayer(other, &r).Verify()
	if !errors.Is(err, ErrDiverged) {
		t.Errorf("Verify() with a different config error = %v, expected ErrDiverged", err)
	}
	if !errors.Is(err, ErrConfigMismatch) {
		t.Errorf("Verify() with a different config error = %v, expected ErrConfigMismatch", err)
	}
}

func TestCheckConfig(t *testing.T) {
	cfg := config.DefaultStarlaneConfig()
	r := record(t, cfg, 3, 30).Replay("", 60)
	if r.ConfigFP == 0 {
		t.Fatal("ConfigFP not recorded")
	}

	other := cfg
	other.Waves.BaseBudget++
	unknown := r
	unknown.ConfigFP = 0

	tests := []struct {
		name     string
		cfg      config.StarlaneConfig
		rec      storage.Replay
		mismatch bool
	}{
		{"same config", cfg, r, false},
		{"changed config", other, r, true},
		{"no fingerprint recorded", other, unknown, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewPlayer(tc.cfg, &tc.rec).CheckConfig()
			if got := errors.Is(err, ErrConfigMismatch); got != tc.mismatch {
				t.Errorf("CheckConfig() = %v, expected mismatch %v", err, tc.mismatch)
			}
		})
	}
}

func TestRecorderReplayIsACopy(t *testing.T) {
	cfg := config.DefaultStarlaneConfig()
	rec := record(t, cfg, 1, 10)
	r := rec.Replay("", 60)
	rec.Step(core.NewInputFrame(core.CommandFire), 1.0/60)

	if len(r.Frames) != 10 {
		t.Errorf("saved replay grew to %d frames", len(r.Frames))
	}
	rec.Reset()
	if rec.Len() != 0 {
		t.Errorf("Len() after Reset = %d, expected 0", rec.Len())
	}
}
