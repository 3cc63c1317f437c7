package hexgrid

import "fmt"

// pieceOffsets is the 7-cell neighborhood a piece may occupy, in the
// fixed order used by the byte codec (most significant bit first).
var pieceOffsets = [7]Hex{
	{I: -1, K: -1},
	{I: -1, K: 0},
	{I: 0, K: -1},
	{I: 0, K: 0},
	{I: 0, K: 1},
	{I: 1, K: 0},
	{I: 1, K: 1},
}

// Piece is a puzzle piece: a non-empty subset of the 7-cell neighborhood
// around its origin. The zero value is an empty (invalid) piece.
// Pieces are value types; copying one is cheap and safe.
type Piece struct {
	mask uint8 // Bit i set means pieceOffsets[i] is occupied.
}

// PieceFromByte decodes a piece from its 7-bit representation.
// Bit 6 corresponds to offset (-1,-1), bit 0 to offset (1,1).
// Returns an error for an empty piece or a set high bit.
func PieceFromByte(data byte) (Piece, error) {
	if data&0x80 != 0 {
		return Piece{}, fmt.Errorf("hexgrid: piece byte %#02x has high bit set", data)
	}
	if data == 0 {
		return Piece{}, fmt.Errorf("hexgrid: piece byte must contain at least one block")
	}
	return Piece{mask: data}, nil
}

// PieceFromOffsets builds a piece from explicit cell offsets.
// Every offset must belong to the 7-cell neighborhood.
func PieceFromOffsets(offsets ...Hex) (Piece, error) {
	var p Piece
	for _, off := range offsets {
		found := false
		for i, candidate := range pieceOffsets {
			if off == candidate {
				p.mask |= 1 << (6 - i)
				found = true
				break
			}
		}
		if !found {
			return Piece{}, fmt.Errorf("hexgrid: offset %v outside piece neighborhood", off)
		}
	}
	if p.mask == 0 {
		return Piece{}, fmt.Errorf("hexgrid: piece must contain at least one block")
	}
	return p, nil
}

// Byte returns the 7-bit codec representation of the piece.
func (p Piece) Byte() byte {
	return p.mask
}

// Len returns the number of cells in the piece.
func (p Piece) Len() int {
	n := 0
	for b := p.mask; b != 0; b >>= 1 {
		n += int(b & 1)
	}
	return n
}

// Empty reports whether the piece has no cells (the zero value).
func (p Piece) Empty() bool {
	return p.mask == 0
}

// Offsets returns the occupied cell offsets relative to the piece origin,
// in codec order.
func (p Piece) Offsets() []Hex {
	out := make([]Hex, 0, 7)
	for i, off := range pieceOffsets {
		if p.mask&(1<<(6-i)) != 0 {
			out = append(out, off)
		}
	}
	return out
}

// String formats the piece as its hexadecimal codec value.
func (p Piece) String() string {
	return fmt.Sprintf("Piece(%#02x)", p.mask)
}
