package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ashmarty/hexview/internal/core"
	"github.com/ashmarty/hexview/internal/hexgrid"
	"github.com/ashmarty/hexview/internal/replay"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Board glyphs and colors.
const (
	emptyCellRune    = '⬡'
	occupiedCellRune = '⬢'
)

const (
	emptyCellColor    = core.ColorGray
	occupiedCellColor = core.ColorCyan
	placedCellColor   = core.ColorBrightGreen
	clearedCellColor  = core.ColorBrightRed
)

// BoardWidth returns the screen width a radius-r board occupies.
func BoardWidth(radius int) int {
	// Longest row has 2r-1 cells, two columns apart.
	return 4*radius - 3
}

// BoardHeight returns the screen height a radius-r board occupies.
func BoardHeight(radius int) int {
	return 2*radius - 1
}

// cellScreenPos maps a board cell to screen coordinates relative to the
// board's top-left corner. Row i is indented so the board comes out as
// a hexagon with cells two columns apart.
func cellScreenPos(radius int, h hexgrid.Hex) (x, y int) {
	lo := core.Max(0, h.I-radius+1)
	count := core.Min(2*radius-2, h.I+radius-1) - lo + 1
	indent := (2*radius - 1) - count
	return indent + 2*(h.K-lo), h.I
}

// DrawBoard renders the snapshot's board into the screen buffer with
// its top-left corner at (ox, oy). Cells placed this turn are shown
// green and cells cleared this turn red, so a step reads as a move.
func DrawBoard(s *core.Screen, ox, oy int, snap replay.Snapshot) {
	radius := snap.Radius()

	placed := make(map[hexgrid.Hex]bool, len(snap.Placed()))
	for _, h := range snap.Placed() {
		placed[h] = true
	}
	cleared := make(map[hexgrid.Hex]bool, len(snap.Cleared()))
	for _, h := range snap.Cleared() {
		cleared[h] = true
	}

	for i := 0; i <= 2*radius-2; i++ {
		lo := core.Max(0, i-radius+1)
		hi := core.Min(2*radius-2, i+radius-1)
		for k := lo; k <= hi; k++ {
			h := hexgrid.NewHex(i, k)
			x, y := cellScreenPos(radius, h)

			r, c := emptyCellRune, emptyCellColor
			switch {
			case cleared[h]:
				// Just vacated by a line clear; shown empty but hot.
				r, c = emptyCellRune, clearedCellColor
			case placed[h]:
				r, c = occupiedCellRune, placedCellColor
			case snap.Occupied(h):
				r, c = occupiedCellRune, occupiedCellColor
			}
			s.SetColored(ox+x, oy+y, r, c)
		}
	}
}

// DrawQueue renders the upcoming piece queue into the screen buffer
// starting at (ox, oy), one piece per three-row block with a blank row
// between blocks.
func DrawQueue(s *core.Screen, ox, oy int, queue []hexgrid.Piece) {
	s.DrawTextColored(ox, oy, "next", core.ColorBrightWhite)
	for n, p := range queue {
		top := oy + 2 + n*4
		drawPiece(s, ox, top, p)
	}
}

// drawPiece renders a single piece's 7-cell neighborhood as a mini
// hexagon: rows of 2, 3, 2 cells. The neighborhood is exactly the
// center of a radius-2 board, so the same cell layout applies after
// shifting the offsets to its origin.
func drawPiece(s *core.Screen, ox, oy int, p hexgrid.Piece) {
	present := make(map[hexgrid.Hex]bool, p.Len())
	for _, off := range p.Offsets() {
		present[off] = true
	}

	for _, off := range []hexgrid.Hex{
		{I: -1, K: -1}, {I: -1, K: 0},
		{I: 0, K: -1}, {I: 0, K: 0}, {I: 0, K: 1},
		{I: 1, K: 0}, {I: 1, K: 1},
	} {
		x, y := cellScreenPos(2, off.Add(hexgrid.NewHex(1, 1)))
		r, c := emptyCellRune, emptyCellColor
		if present[off] {
			r, c = occupiedCellRune, occupiedCellColor
		}
		s.SetColored(ox+x, oy+y, r, c)
	}
}

// DrawStatus renders the turn/score line and the playback indicator.
func DrawStatus(s *core.Screen, ox, oy int, snap replay.Snapshot, totalTurns int, playing bool, backward bool, speed float64) {
	line := fmt.Sprintf("turn %d/%d   score %d", snap.Turn(), totalTurns, snap.Score())
	s.DrawTextColored(ox, oy, line, core.ColorBrightWhite)

	indicator := "⏸ paused"
	color := core.ColorGray
	if playing {
		indicator = fmt.Sprintf("▶ %gx", speed)
		color = core.ColorBrightGreen
		if backward {
			indicator = fmt.Sprintf("◀ %gx", speed)
			color = core.ColorOrange
		}
	}
	s.DrawTextColored(ox, oy+1, indicator, color)
}
