package hexgrid

import "fmt"

// Board is a hexagonal grid of the given radius with per-cell occupancy.
// A board of radius r has 3r²-3r+1 cells, stored sorted by I then K line
// index. Boards are mutable; replay snapshots hold cloned copies.
type Board struct {
	radius int
	cells  []bool
}

// NewBoard creates an empty board of the given radius.
// Radius must be at least 1.
func NewBoard(radius int) (*Board, error) {
	if radius < 1 {
		return nil, fmt.Errorf("hexgrid: board radius must be positive, got %d", radius)
	}
	return &Board{
		radius: radius,
		cells:  make([]bool, 1+3*radius*(radius-1)),
	}, nil
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	return &Board{radius: b.radius, cells: cells}
}

// Radius returns the board radius.
func (b *Board) Radius() int {
	return b.radius
}

// Len returns the total number of cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// lineBounds returns the inclusive K range of cells on I-line i.
func (b *Board) lineBounds(i int) (lo, hi int) {
	lo = i - (b.radius - 1)
	if lo < 0 {
		lo = 0
	}
	hi = i + (b.radius - 1)
	if max := 2*b.radius - 2; hi > max {
		hi = max
	}
	return lo, hi
}

// index maps a hex to its position in the cell slice, or -1 if out of range.
func (b *Board) index(h Hex) int {
	if !h.InRange(b.radius) {
		return -1
	}
	idx := 0
	for i := 0; i < h.I; i++ {
		lo, hi := b.lineBounds(i)
		idx += hi - lo + 1
	}
	lo, _ := b.lineBounds(h.I)
	return idx + h.K - lo
}

// InRange reports whether the hex is a valid cell of this board.
func (b *Board) InRange(h Hex) bool {
	return h.InRange(b.radius)
}

// Occupied reports whether the cell at h is filled.
// Out-of-range coordinates report false.
func (b *Board) Occupied(h Hex) bool {
	idx := b.index(h)
	return idx >= 0 && b.cells[idx]
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for _, occupied := range b.cells {
		if occupied {
			n++
		}
	}
	return n
}

// Cells returns every valid cell coordinate, sorted by I then K.
func (b *Board) Cells() []Hex {
	out := make([]Hex, 0, len(b.cells))
	for i := 0; i <= 2*b.radius-2; i++ {
		lo, hi := b.lineBounds(i)
		for k := lo; k <= hi; k++ {
			out = append(out, Hex{I: i, K: k})
		}
	}
	return out
}

// CanPlace reports whether the piece fits at origin: every cell of the
// piece must land in range and on an empty cell.
func (b *Board) CanPlace(origin Hex, p Piece) bool {
	if p.Empty() {
		return false
	}
	for _, off := range p.Offsets() {
		idx := b.index(origin.Add(off))
		if idx < 0 || b.cells[idx] {
			return false
		}
	}
	return true
}

// Place adds the piece at origin, filling its cells.
// Returns an error without modifying the board if any cell is out of
// range or already occupied.
func (b *Board) Place(origin Hex, p Piece) error {
	if p.Empty() {
		return fmt.Errorf("hexgrid: cannot place empty piece")
	}
	offsets := p.Offsets()
	indices := make([]int, len(offsets))
	for n, off := range offsets {
		target := origin.Add(off)
		idx := b.index(target)
		if idx < 0 {
			return fmt.Errorf("hexgrid: piece cell %v out of range at origin %v", target, origin)
		}
		if b.cells[idx] {
			return fmt.Errorf("hexgrid: piece cell %v overlaps occupied cell", target)
		}
		indices[n] = idx
	}
	for _, idx := range indices {
		b.cells[idx] = true
	}
	return nil
}

// ClearFullLines removes every fully occupied line along the I, J, and K
// axes. It returns the cleared cells, sorted by I then K, and the total
// cell count of the cleared lines. A cell shared by several full lines
// is cleared and reported once, but counted once per line it completes;
// the count is what scoring pays for.
func (b *Board) ClearFullLines() (cleared []Hex, eliminated int) {
	full := make(map[Hex]bool)
	eliminated += b.collectFullLines(full, func(h Hex) int { return h.I })
	eliminated += b.collectFullLines(full, func(h Hex) int { return h.J() })
	eliminated += b.collectFullLines(full, func(h Hex) int { return h.K })

	cleared = make([]Hex, 0, len(full))
	for _, h := range b.Cells() {
		if full[h] {
			b.cells[b.index(h)] = false
			cleared = append(cleared, h)
		}
	}
	return cleared, eliminated
}

// collectFullLines groups cells by the given line function, marks the
// members of every fully occupied group, and returns how many cells
// those groups hold.
func (b *Board) collectFullLines(full map[Hex]bool, line func(Hex) int) int {
	groups := make(map[int][]Hex)
	complete := make(map[int]bool)
	for _, h := range b.Cells() {
		key := line(h)
		groups[key] = append(groups[key], h)
		if _, seen := complete[key]; !seen {
			complete[key] = true
		}
		if !b.cells[b.index(h)] {
			complete[key] = false
		}
	}
	count := 0
	for key, ok := range complete {
		if !ok {
			continue
		}
		for _, h := range groups[key] {
			full[h] = true
			count++
		}
	}
	return count
}

// Equal reports whether two boards have the same radius and occupancy.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.radius != other.radius {
		return false
	}
	for i, occupied := range b.cells {
		if occupied != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders a compact single-line occupancy summary for debugging.
func (b *Board) String() string {
	buf := make([]byte, len(b.cells))
	for i, occupied := range b.cells {
		if occupied {
			buf[i] = 'X'
		} else {
			buf[i] = '-'
		}
	}
	return fmt.Sprintf("Board(r=%d, %s)", b.radius, buf)
}
