package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// glyph is how a sprite kind is drawn.
type glyph struct {
	text  string
	color core.Color
}

var glyphs = map[starlane.SpriteKind]glyph{
	starlane.SpritePlayer:       {"/^\\", core.ColorBrightCyan},
	starlane.SpriteScout:        {"<o>", core.ColorGreen},
	starlane.SpriteFighter:      {"{#}", core.ColorYellow},
	starlane.SpriteBomber:       {"[=O=]", core.ColorRed},
	starlane.SpritePlayerShot:   {"|", core.ColorBrightYellow},
	starlane.SpriteEnemyShot:    {"!", core.ColorOrange},
	starlane.SpritePickupDouble: {"D", core.ColorMagenta},
	starlane.SpritePickupTriple: {"T", core.ColorMagenta},
}

// hudRows is the number of rows above the playfield.
const hudRows = 2

// viewport maps playfield coordinates onto screen cells.
type viewport struct {
	pf         config.PlayfieldConfig
	cols, rows int
}

func newViewport(s *core.Screen, pf config.PlayfieldConfig) viewport {
	return viewport{pf: pf, cols: s.Width(), rows: s.Height() - hudRows}
}

func (v viewport) cell(x, y float64) (int, int) {
	col := (x - v.pf.MinX) / v.pf.Width() * float64(v.cols-1)
	row := (y - v.pf.MinY) / v.pf.Height() * float64(v.rows-1)
	return int(math.Round(col)), hudRows + int(math.Round(row))
}

// DrawFrame draws a simulation frame onto the screen. status, when not
// empty, replaces the right side of the HUD.
func DrawFrame(s *core.Screen, f starlane.Frame, pf config.PlayfieldConfig, status string) {
	s.Clear()
	if s.Width() < 10 || s.Height() <= hudRows+2 {
		s.DrawText(0, 0, "window too small", core.ColorRed)
		return
	}

	drawHUD(s, f.HUD, status)
	s.DrawHLine(0, 1, s.Width(), '─', core.ColorGray)

	vp := newViewport(s, pf)
	for _, sp := range f.Sprites {
		g, ok := glyphs[sp.Kind]
		if !ok {
			continue
		}
		col, row := vp.cell(sp.X, sp.Y)
		s.DrawText(col-runewidth.StringWidth(g.text)/2, row, g.text, g.color)
	}

	drawOverlay(s, f.HUD)
}

func drawHUD(s *core.Screen, h starlane.HUD, status string) {
	left := fmt.Sprintf("SCORE %06d  WAVE %d  %s", h.Score, h.Wave, strings.Repeat("♥", max(h.Lives, 0)))
	s.DrawText(1, 0, left, core.ColorWhite)

	if status == "" && h.PowerUp != starlane.PowerUpNone {
		status = fmt.Sprintf("%s %.1fs", strings.ToUpper(h.PowerUp.String()), h.PowerUpLeft)
	}
	if status != "" {
		s.DrawTextRight(0, 1, status, core.ColorBrightYellow)
	}
}

func drawOverlay(s *core.Screen, h starlane.HUD) {
	mid := hudRows + (s.Height()-hudRows)/2
	switch h.State {
	case starlane.StateMenu:
		s.DrawTextCentered(mid-1, "S T A R L A N E", core.ColorBrightCyan)
		s.DrawTextCentered(mid+1, "press enter to launch", core.ColorGray)
	case starlane.StatePaused:
		s.DrawTextCentered(mid, "PAUSED", core.ColorBrightYellow)
	case starlane.StateGameOver:
		s.DrawTextCentered(mid-1, "GAME OVER", core.ColorBrightRed)
		s.DrawTextCentered(mid+1, fmt.Sprintf("final score %d, press r", h.Score), core.ColorGray)
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				// Zero runes sit behind wide runes.
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
