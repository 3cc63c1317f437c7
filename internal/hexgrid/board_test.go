package hexgrid

import "testing"

func mustPiece(t *testing.T, b byte) Piece {
	t.Helper()
	p, err := PieceFromByte(b)
	if err != nil {
		t.Fatalf("PieceFromByte(%#02x): %v", b, err)
	}
	return p
}

func TestBoardCellCount(t *testing.T) {
	for radius := 1; radius <= 5; radius++ {
		b, err := NewBoard(radius)
		if err != nil {
			t.Fatalf("NewBoard(%d): %v", radius, err)
		}
		want := 1 + 3*radius*(radius-1)
		if b.Len() != want {
			t.Errorf("radius %d: Len = %d, want %d", radius, b.Len(), want)
		}
		if got := len(b.Cells()); got != want {
			t.Errorf("radius %d: len(Cells) = %d, want %d", radius, got, want)
		}
	}

	if _, err := NewBoard(0); err == nil {
		t.Error("expected error for radius 0")
	}
}

func TestBoardIndexBijective(t *testing.T) {
	b, err := NewBoard(4)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int]bool)
	for _, h := range b.Cells() {
		idx := b.index(h)
		if idx < 0 || idx >= b.Len() {
			t.Fatalf("index(%v) = %d out of [0, %d)", h, idx, b.Len())
		}
		if seen[idx] {
			t.Fatalf("index %d assigned twice", idx)
		}
		seen[idx] = true
	}
}

func TestBoardPlace(t *testing.T) {
	b, err := NewBoard(3)
	if err != nil {
		t.Fatal(err)
	}
	center := mustPiece(t, 0x08)

	if !b.CanPlace(NewHex(2, 2), center) {
		t.Fatal("center placement should be possible on empty board")
	}
	if err := b.Place(NewHex(2, 2), center); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !b.Occupied(NewHex(2, 2)) {
		t.Error("cell (2,2) should be occupied after placement")
	}
	if b.Filled() != 1 {
		t.Errorf("Filled = %d, want 1", b.Filled())
	}

	// Overlap is rejected and leaves the board unchanged.
	if err := b.Place(NewHex(2, 2), center); err == nil {
		t.Error("expected overlap error")
	}
	if b.Filled() != 1 {
		t.Errorf("Filled after failed place = %d, want 1", b.Filled())
	}

	// Out-of-range placement is rejected.
	if err := b.Place(NewHex(10, 10), center); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestBoardClearFullLines(t *testing.T) {
	b, err := NewBoard(2)
	if err != nil {
		t.Fatal(err)
	}
	center := mustPiece(t, 0x08)

	// Fill the I=0 line: cells (0,0) and (0,1).
	for _, h := range []Hex{NewHex(0, 0), NewHex(0, 1)} {
		if err := b.Place(h, center); err != nil {
			t.Fatalf("Place(%v): %v", h, err)
		}
	}

	cleared, eliminated := b.ClearFullLines()
	if len(cleared) != 2 {
		t.Fatalf("cleared %d cells, want 2: %v", len(cleared), cleared)
	}
	if eliminated != 2 {
		t.Errorf("eliminated = %d, want 2", eliminated)
	}
	if b.Filled() != 0 {
		t.Errorf("Filled after clear = %d, want 0", b.Filled())
	}

	// Cleared cells are reported in I-then-K order.
	if cleared[0] != (NewHex(0, 0)) || cleared[1] != (NewHex(0, 1)) {
		t.Errorf("cleared order = %v", cleared)
	}
}

func TestBoardClearIntersectingLines(t *testing.T) {
	b, err := NewBoard(2)
	if err != nil {
		t.Fatal(err)
	}
	center := mustPiece(t, 0x08)

	// (0,0) sits on both the I=0 line {(0,0),(0,1)} and the K=0 line
	// {(0,0),(1,0)}; filling all three cells completes both at once.
	for _, h := range []Hex{NewHex(0, 1), NewHex(1, 0), NewHex(0, 0)} {
		if err := b.Place(h, center); err != nil {
			t.Fatalf("Place(%v): %v", h, err)
		}
	}

	cleared, eliminated := b.ClearFullLines()
	if len(cleared) != 3 {
		t.Fatalf("cleared %d cells, want 3: %v", len(cleared), cleared)
	}
	// The shared cell is cleared once but counts toward both lines.
	if eliminated != 4 {
		t.Errorf("eliminated = %d, want 4", eliminated)
	}
	if b.Filled() != 0 {
		t.Errorf("Filled after clear = %d, want 0", b.Filled())
	}
}

func TestBoardClearNothing(t *testing.T) {
	b, err := NewBoard(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Place(NewHex(2, 2), mustPiece(t, 0x08)); err != nil {
		t.Fatal(err)
	}
	cleared, eliminated := b.ClearFullLines()
	if len(cleared) != 0 || eliminated != 0 {
		t.Errorf("cleared = %v (eliminated %d), want none", cleared, eliminated)
	}
	if b.Filled() != 1 {
		t.Errorf("Filled = %d, want 1", b.Filled())
	}
}

func TestBoardCloneIndependent(t *testing.T) {
	b, err := NewBoard(2)
	if err != nil {
		t.Fatal(err)
	}
	clone := b.Clone()
	if err := clone.Place(NewHex(0, 0), mustPiece(t, 0x08)); err != nil {
		t.Fatal(err)
	}
	if b.Occupied(NewHex(0, 0)) {
		t.Error("mutating clone changed the original board")
	}
	if b.Equal(clone) {
		t.Error("boards should differ after clone mutation")
	}
	if !b.Equal(b.Clone()) {
		t.Error("fresh clone should equal the original")
	}
}
