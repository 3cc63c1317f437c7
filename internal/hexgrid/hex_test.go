package hexgrid

import "testing"

func TestHexLineIndices(t *testing.T) {
	h := NewHex(3, 1)
	if h.J() != -2 {
		t.Errorf("J of (3,1) = %d, want -2", h.J())
	}

	sum := h.Add(NewHex(1, 2))
	if sum.I != 4 || sum.K != 3 {
		t.Errorf("Add = %v, want {4, _, 3}", sum)
	}

	diff := sum.Sub(h)
	if diff.I != 1 || diff.K != 2 {
		t.Errorf("Sub = %v, want {1, _, 2}", diff)
	}
}

func TestHexInRange(t *testing.T) {
	cases := []struct {
		hex    Hex
		radius int
		want   bool
	}{
		{NewHex(0, 0), 3, true},
		{NewHex(4, 4), 3, true},
		{NewHex(2, 2), 3, true},
		{NewHex(0, 2), 3, true},
		{NewHex(0, 3), 3, false}, // J too large
		{NewHex(3, 0), 3, false}, // J too small
		{NewHex(5, 4), 3, false}, // I beyond edge
		{NewHex(-1, 0), 3, false},
		{NewHex(0, 0), 1, true},
		{NewHex(1, 1), 1, false},
	}

	for _, tc := range cases {
		if got := tc.hex.InRange(tc.radius); got != tc.want {
			t.Errorf("%v.InRange(%d) = %v, want %v", tc.hex, tc.radius, got, tc.want)
		}
	}
}

func TestPieceByteRoundTrip(t *testing.T) {
	// Single center block
	p, err := PieceFromByte(0x08)
	if err != nil {
		t.Fatalf("PieceFromByte(0x08): %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
	offsets := p.Offsets()
	if len(offsets) != 1 || offsets[0] != (Hex{}) {
		t.Errorf("Offsets = %v, want [{0, 0, 0}]", offsets)
	}
	if p.Byte() != 0x08 {
		t.Errorf("Byte = %#02x, want 0x08", p.Byte())
	}

	// Full 7-cell piece
	full, err := PieceFromByte(0x7F)
	if err != nil {
		t.Fatalf("PieceFromByte(0x7F): %v", err)
	}
	if full.Len() != 7 {
		t.Errorf("full piece Len = %d, want 7", full.Len())
	}
}

func TestPieceInvalidBytes(t *testing.T) {
	if _, err := PieceFromByte(0x00); err == nil {
		t.Error("expected error for empty piece byte")
	}
	if _, err := PieceFromByte(0x88); err == nil {
		t.Error("expected error for high bit set")
	}
}

func TestPieceFromOffsets(t *testing.T) {
	p, err := PieceFromOffsets(NewHex(0, 0), NewHex(1, 0), NewHex(1, 1))
	if err != nil {
		t.Fatalf("PieceFromOffsets: %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len = %d, want 3", p.Len())
	}

	round, err := PieceFromByte(p.Byte())
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if round != p {
		t.Errorf("round trip mismatch: %v vs %v", round, p)
	}

	if _, err := PieceFromOffsets(NewHex(2, 2)); err == nil {
		t.Error("expected error for offset outside neighborhood")
	}
}
