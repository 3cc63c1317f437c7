// Package replay reconstructs full game states from per-turn log deltas
// and serves them back with random access. The Tracker owns the
// complete, immutable snapshot history; building it is the one-time
// expensive step that trades memory for O(1) state lookup, unlike the
// log it consumes, which stores only deltas.
package replay

import (
	"fmt"

	"github.com/ashmarty/hexview/internal/hexgrid"
)

// Snapshot is the complete game state of one turn: board occupancy,
// piece queue, cumulative score, and the turn index. Snapshots are
// immutable once constructed; every "update" produces a new one.
// Placed and Cleared carry the cells changed by the move that produced
// this snapshot, for renderers to highlight; both are empty at turn 0.
type Snapshot struct {
	board   *hexgrid.Board
	queue   []hexgrid.Piece
	score   int
	turn    int
	placed  []hexgrid.Hex
	cleared []hexgrid.Hex
}

// NewInitial creates the turn-0 snapshot: an empty board of the given
// radius, the given piece queue, and score 0.
func NewInitial(radius int, queue []hexgrid.Piece) (Snapshot, error) {
	board, err := hexgrid.NewBoard(radius)
	if err != nil {
		return Snapshot{}, fmt.Errorf("replay: %w", err)
	}
	return Snapshot{
		board: board,
		queue: cloneQueue(queue),
	}, nil
}

// Turn returns the turn index, starting at 0 for the initial state.
func (s Snapshot) Turn() int {
	return s.turn
}

// Score returns the cumulative score up to and including this turn.
func (s Snapshot) Score() int {
	return s.score
}

// Radius returns the board radius.
func (s Snapshot) Radius() int {
	return s.board.Radius()
}

// Occupied reports whether the board cell at h is filled.
func (s Snapshot) Occupied(h hexgrid.Hex) bool {
	return s.board.Occupied(h)
}

// Filled returns the number of occupied board cells.
func (s Snapshot) Filled() int {
	return s.board.Filled()
}

// Board returns a copy of the board; mutating it does not affect the
// snapshot.
func (s Snapshot) Board() *hexgrid.Board {
	return s.board.Clone()
}

// Queue returns a copy of the piece queue at this turn.
func (s Snapshot) Queue() []hexgrid.Piece {
	return cloneQueue(s.queue)
}

// Placed returns the cells filled by the move producing this snapshot.
func (s Snapshot) Placed() []hexgrid.Hex {
	return cloneCells(s.placed)
}

// Cleared returns the cells emptied by line elimination in the move
// producing this snapshot.
func (s Snapshot) Cleared() []hexgrid.Hex {
	return cloneCells(s.cleared)
}

// Equal reports whether two snapshots represent the same game state:
// turn, score, board occupancy, and queue all match.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.turn != other.turn || s.score != other.score {
		return false
	}
	if !s.board.Equal(other.board) {
		return false
	}
	if len(s.queue) != len(other.queue) {
		return false
	}
	for i, p := range s.queue {
		if p != other.queue[i] {
			return false
		}
	}
	return true
}

func cloneQueue(queue []hexgrid.Piece) []hexgrid.Piece {
	if queue == nil {
		return nil
	}
	out := make([]hexgrid.Piece, len(queue))
	copy(out, queue)
	return out
}

func cloneCells(cells []hexgrid.Hex) []hexgrid.Hex {
	if cells == nil {
		return nil
	}
	out := make([]hexgrid.Hex, len(cells))
	copy(out, cells)
	return out
}
