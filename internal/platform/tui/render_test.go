package tui

import (
	"testing"

	"github.com/ashmarty/hexview/internal/core"
	"github.com/ashmarty/hexview/internal/hexgrid"
	"github.com/ashmarty/hexview/internal/hexlog"
	"github.com/ashmarty/hexview/internal/replay"
)

func TestBoardDimensions(t *testing.T) {
	cases := []struct {
		radius, w, h int
	}{
		{1, 1, 1},
		{2, 5, 3},
		{5, 17, 9},
	}
	for _, tc := range cases {
		if got := BoardWidth(tc.radius); got != tc.w {
			t.Errorf("BoardWidth(%d) = %d, want %d", tc.radius, got, tc.w)
		}
		if got := BoardHeight(tc.radius); got != tc.h {
			t.Errorf("BoardHeight(%d) = %d, want %d", tc.radius, got, tc.h)
		}
	}
}

func TestCellScreenPos(t *testing.T) {
	// Radius 2: rows of 2, 3, 2 cells with a one-column indent on the
	// short rows.
	cases := []struct {
		hex  hexgrid.Hex
		x, y int
	}{
		{hexgrid.NewHex(0, 0), 1, 0},
		{hexgrid.NewHex(0, 1), 3, 0},
		{hexgrid.NewHex(1, 0), 0, 1},
		{hexgrid.NewHex(1, 1), 2, 1},
		{hexgrid.NewHex(1, 2), 4, 1},
		{hexgrid.NewHex(2, 1), 1, 2},
		{hexgrid.NewHex(2, 2), 3, 2},
	}
	for _, tc := range cases {
		x, y := cellScreenPos(2, tc.hex)
		if x != tc.x || y != tc.y {
			t.Errorf("cellScreenPos(2, %v) = (%d, %d), want (%d, %d)", tc.hex, x, y, tc.x, tc.y)
		}
	}
}

func TestDrawBoardHighlights(t *testing.T) {
	p, err := hexgrid.PieceFromByte(0x08)
	if err != nil {
		t.Fatal(err)
	}
	queue := []hexgrid.Piece{p}

	initial, err := replay.NewInitial(2, queue)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := replay.Apply(initial, hexlog.Delta{
		Origin: hexgrid.NewHex(1, 1), PieceIndex: 0, Queue: queue, NextQueue: queue,
	})
	if err != nil {
		t.Fatal(err)
	}

	s := core.NewScreen(BoardWidth(2), BoardHeight(2))
	DrawBoard(s, 0, 0, snap)

	// The placed center cell is a green filled hex.
	center := s.GetCell(2, 1)
	if center.Rune != occupiedCellRune || center.Color != placedCellColor {
		t.Errorf("placed cell = %+v", center)
	}

	// Everything else is an empty gray hex.
	corner := s.GetCell(1, 0)
	if corner.Rune != emptyCellRune || corner.Color != emptyCellColor {
		t.Errorf("empty cell = %+v", corner)
	}
}

func TestDrawBoardClearedCells(t *testing.T) {
	p, err := hexgrid.PieceFromByte(0x08)
	if err != nil {
		t.Fatal(err)
	}
	queue := []hexgrid.Piece{p}

	initial, err := replay.NewInitial(2, queue)
	if err != nil {
		t.Fatal(err)
	}
	one, err := replay.Apply(initial, hexlog.Delta{
		Origin: hexgrid.NewHex(0, 0), PieceIndex: 0, Queue: queue, NextQueue: queue,
	})
	if err != nil {
		t.Fatal(err)
	}
	two, err := replay.Apply(one, hexlog.Delta{
		Origin: hexgrid.NewHex(0, 1), PieceIndex: 0, Queue: queue, NextQueue: queue,
	})
	if err != nil {
		t.Fatal(err)
	}

	s := core.NewScreen(BoardWidth(2), BoardHeight(2))
	DrawBoard(s, 0, 0, two)

	// Both cells of the cleared line render empty but red.
	for _, h := range []hexgrid.Hex{hexgrid.NewHex(0, 0), hexgrid.NewHex(0, 1)} {
		x, y := cellScreenPos(2, h)
		cell := s.GetCell(x, y)
		if cell.Rune != emptyCellRune || cell.Color != clearedCellColor {
			t.Errorf("cleared cell %v = %+v", h, cell)
		}
	}
}

func TestDrawStatus(t *testing.T) {
	p, err := hexgrid.PieceFromByte(0x08)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := replay.NewInitial(2, []hexgrid.Piece{p})
	if err != nil {
		t.Fatal(err)
	}

	s := core.NewScreen(48, 2)
	DrawStatus(s, 0, 0, snap, 12, false, false, 2.0)

	row := s.Row(0)
	want := "turn 0/12   score 0"
	if got := row[:len(want)]; got != want {
		t.Errorf("status row = %q, want prefix %q", row, want)
	}
}

func TestRenderScreenGroupsColors(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGreen)

	// Rendering must preserve the text; styling may add escape codes
	// around each same-color run.
	out := RenderScreen(s)
	plain := s.String()
	if plain != "abcd" {
		t.Fatalf("plain screen = %q", plain)
	}
	if len(out) < len(plain) {
		t.Errorf("rendered output shorter than plain text: %q", out)
	}
}
