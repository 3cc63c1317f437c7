// Package hexgrid provides the hexagonal game model used by replays:
// coordinates, pieces, and the board with placement and line elimination.
// It contains no external dependencies to keep the model pure and testable.
package hexgrid

import "fmt"

// Hex is a cell position in axial line coordinates.
// I and K index the diagonal line families of the grid; the third family
// J is derived as K - I, so every cell lies on exactly one line per axis.
type Hex struct {
	I int
	K int
}

// NewHex creates a hex at the given I and K line indices.
func NewHex(i, k int) Hex {
	return Hex{I: i, K: k}
}

// J returns the derived J-line index of this hex.
func (h Hex) J() int {
	return h.K - h.I
}

// Add returns the componentwise sum of two hex coordinates.
// Used to translate piece-relative offsets to board positions.
func (h Hex) Add(other Hex) Hex {
	return Hex{I: h.I + other.I, K: h.K + other.K}
}

// Sub returns the componentwise difference of two hex coordinates.
func (h Hex) Sub(other Hex) Hex {
	return Hex{I: h.I - other.I, K: h.K - other.K}
}

// InRange reports whether the hex lies on a board of the given radius.
// Valid cells satisfy 0 <= I, K <= 2*radius-2 and |J| <= radius-1.
func (h Hex) InRange(radius int) bool {
	if radius < 1 {
		return false
	}
	max := 2*radius - 2
	if h.I < 0 || h.I > max || h.K < 0 || h.K > max {
		return false
	}
	j := h.J()
	return -(radius-1) <= j && j <= radius-1
}

// String formats the hex as {I, J, K} line indices.
func (h Hex) String() string {
	return fmt.Sprintf("{%d, %d, %d}", h.I, h.J(), h.K)
}
