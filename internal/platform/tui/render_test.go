package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
)

func TestViewportCorners(t *testing.T) {
	pf := config.DefaultStarlaneConfig().Playfield
	vp := newViewport(core.NewScreen(81, 23), pf)

	tests := []struct {
		name         string
		x, y         float64
		col, wantRow int
	}{
		{"top left", pf.MinX, pf.MinY, 0, hudRows},
		{"bottom right", pf.MaxX, pf.MaxY, 80, 22},
		{"center column", (pf.MinX + pf.MaxX) / 2, pf.MinY, 40, hudRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := vp.cell(tt.x, tt.y)
			if col != tt.col || row != tt.wantRow {
				t.Errorf("cell(%v, %v) = (%d, %d), expected (%d, %d)", tt.x, tt.y, col, row, tt.col, tt.wantRow)
			}
		})
	}
}

func TestDrawFrame(t *testing.T) {
	cfg := config.DefaultStarlaneConfig()
	s := core.NewScreen(81, 23)
	f := starlane.Frame{
		Sprites: []starlane.SpriteInstance{
			{Kind: starlane.SpritePlayer, X: 0, Y: cfg.Playfield.MaxY},
			{Kind: starlane.SpriteScout, X: cfg.Playfield.MinX, Y: cfg.Playfield.MinY},
		},
		HUD: starlane.HUD{Score: 300, Lives: 2, Wave: 3, State: starlane.StatePlaying},
	}

	DrawFrame(s, f, cfg.Playfield, "")
	out := s.String()
	lines := strings.Split(out, "\n")

	if !strings.Contains(lines[0], "SCORE 000300") || !strings.Contains(lines[0], "WAVE 3") {
		t.Errorf("HUD line = %q", lines[0])
	}
	if got := strings.Count(lines[0], "♥"); got != 2 {
		t.Errorf("HUD hearts = %d, expected 2", got)
	}
	if !strings.Contains(lines[22], "/^\\") {
		t.Errorf("player missing from bottom row: %q", lines[22])
	}
	if !strings.HasPrefix(lines[hudRows], "o>") {
		t.Errorf("scout at the left edge should be clipped to %q, got %q", "o>", lines[hudRows])
	}
}

func TestDrawFrameOverlays(t *testing.T) {
	pf := config.DefaultStarlaneConfig().Playfield
	tests := []struct {
		state starlane.State
		want  string
	}{
		{starlane.StateMenu, "S T A R L A N E"},
		{starlane.StatePaused, "PAUSED"},
		{starlane.StateGameOver, "GAME OVER"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			s := core.NewScreen(60, 20)
			DrawFrame(s, starlane.Frame{HUD: starlane.HUD{State: tt.state}}, pf, "")
			if !strings.Contains(s.String(), tt.want) {
				t.Errorf("screen for %s does not contain %q", tt.state, tt.want)
			}
		})
	}
}

func TestDrawFrameStatusAndSmallWindow(t *testing.T) {
	pf := config.DefaultStarlaneConfig().Playfield

	s := core.NewScreen(60, 20)
	DrawFrame(s, starlane.Frame{HUD: starlane.HUD{State: starlane.StatePlaying}}, pf, "REPLAY #4 10/20")
	if first := strings.Split(s.String(), "\n")[0]; !strings.HasSuffix(first, "REPLAY #4 10/20 ") {
		t.Errorf("status not right-aligned: %q", first)
	}

	tiny := core.NewScreen(8, 3)
	DrawFrame(tiny, starlane.Frame{}, pf, "")
	if !strings.Contains(tiny.String(), "window") {
		t.Errorf("tiny screen = %q, expected a size warning", tiny.String())
	}
}

func TestRenderScreenSkipsWidePlaceholders(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.DrawText(0, 0, "♥ab", core.ColorDefault)
	if got := RenderScreen(s); !strings.Contains(got, "♥ab") {
		t.Errorf("RenderScreen() = %q, expected it to contain %q", got, "♥ab")
	}
}
