package blast

import (
	"fmt"
	"math"

	"github.com/vovakirdan/blast/internal/core"
	"github.com/vovakirdan/blast/internal/games/blast/board"
)

const (
	cellWidth    = 3 // glyph plus one column of padding on each side
	hudHeight    = 3
	footerHeight = 2
)

// Glyphs per tier, plus the shrunken forms used while animating.
var tierGlyphs = map[board.MatchTier]rune{
	board.TierDefault: '●',
	board.TierA:       '◆',
	board.TierB:       '■',
	board.TierC:       '★',
}

const (
	glyphTiny  = '·'
	glyphSmall = '•'
)

// boardSize returns the boxed board size in screen cells.
func (g *Game) boardSize() (w, h int) {
	return g.cfg.Board.Rows*cellWidth + 2, g.cfg.Board.Columns + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.ctrl == nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)
	g.renderTiles(dst, boardX+1, boardY+1)
	g.renderCursor(dst, boardX+1, boardY+1)
	g.renderFooter(dst, boardY+boardH)
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCenteredColored(y-1, "Cannot start "+g.Title(), core.ColorBrightRed)
	if g.err != nil {
		msg := g.err.Error()
		if len(msg) > g.screenW {
			msg = msg[:g.screenW]
		}
		dst.DrawTextCentered(y, msg)
	}
	dst.DrawTextCenteredColored(y+2, "Q to quit", core.ColorGray)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title and the session counters.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightWhite)

	st := g.ctrl.Stats()
	left := fmt.Sprintf("Cleared: %d  Best: %d", st.TilesRemoved, st.LargestGroup)
	dst.DrawText(boardX, 1, left)

	right := fmt.Sprintf("Group: %d", len(g.ctrl.GroupAt(g.cursor.X, g.cursor.Y)))
	x := boardX + boardW - len(right)
	if x < boardX+len(left)+1 {
		x = boardX + len(left) + 1
	}
	dst.DrawText(x, 1, right)
}

// renderTiles draws every sprite. Y grows upward on the board and downward
// on screen.
func (g *Game) renderTiles(dst *core.Screen, originX, originY int) {
	columns := g.cfg.Board.Columns
	minScale := g.cfg.Presentation.MinScale

	g.view.each(func(s *sprite) {
		col := int(math.Round(s.x))
		row := int(math.Round(s.y))
		if row < 0 || row >= columns {
			return
		}
		sx := originX + col*cellWidth + 1
		sy := originY + columns - 1 - row
		dst.SetColored(sx, sy, glyphFor(s.tier, s.scale(minScale)), g.colorOf(s.color))
	})
}

// renderCursor brackets the cursor cell, bright when its group can be taken.
func (g *Game) renderCursor(dst *core.Screen, originX, originY int) {
	sx := originX + g.cursor.X*cellWidth
	sy := originY + g.cfg.Board.Columns - 1 - g.cursor.Y

	color := core.ColorGray
	if g.ctrl.InputAllowed() && len(g.ctrl.GroupAt(g.cursor.X, g.cursor.Y)) >= g.cfg.Board.MinRun {
		color = core.ColorBrightWhite
	}
	dst.SetColored(sx, sy, '[', color)
	dst.SetColored(sx+cellWidth-1, sy, ']', color)
}

// renderFooter draws the status and key help lines.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	dst.DrawTextCenteredColored(y, g.statusText(), core.ColorYellow)
	dst.DrawTextCenteredColored(y+1, "arrows/hjkl move  space select  p pause  r new board  q quit", core.ColorGray)
}

func (g *Game) statusText() string {
	switch {
	case g.paused:
		return "PAUSED"
	case g.ctrl.Phase() == board.PhaseRecreate:
		return "No moves left, shuffling..."
	case g.ctrl.InputAllowed():
		return "Select a group"
	default:
		return ""
	}
}

// colorOf maps a tile color to its palette entry.
func (g *Game) colorOf(c board.Color) core.Color {
	if int(c) < len(g.palette) {
		return g.palette[c]
	}
	return core.ColorWhite
}

// glyphFor picks the rune for a tile drawn at the given scale.
func glyphFor(tier board.MatchTier, scale float64) rune {
	switch {
	case scale < 0.5:
		return glyphTiny
	case scale < 0.9:
		return glyphSmall
	}
	if r, ok := tierGlyphs[tier]; ok {
		return r
	}
	return tierGlyphs[board.TierDefault]
}
