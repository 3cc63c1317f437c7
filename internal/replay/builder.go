package replay

import (
	"fmt"

	"github.com/ashmarty/hexview/internal/hexgrid"
	"github.com/ashmarty/hexview/internal/hexlog"
)

// Score weights, matching the recorded game's rules: a placement is
// worth the piece's cell count plus five points for every cell of every
// completed line. A cell at the intersection of two full lines pays
// twice even though it is cleared once.
const clearedCellScore = 5

// Apply produces the next snapshot from prev and one log delta.
// It is a pure function: prev is never modified and no shared state is
// touched, so it is safe to call speculatively for validation.
//
// The delta must be structurally consistent with prev: its queue must
// match prev's queue, the piece index must reference an existing slot,
// and the placement must fit on the board. Violations return a
// *MalformedDeltaError carrying prev's turn index.
func Apply(prev Snapshot, d hexlog.Delta) (Snapshot, error) {
	if len(d.Queue) != len(prev.queue) {
		return Snapshot{}, &MalformedDeltaError{Turn: prev.turn,
			Reason: fmt.Sprintf("delta queue has %d pieces, state has %d", len(d.Queue), len(prev.queue))}
	}
	for i, p := range d.Queue {
		if p != prev.queue[i] {
			return Snapshot{}, &MalformedDeltaError{Turn: prev.turn,
				Reason: fmt.Sprintf("delta queue slot %d disagrees with state: %v vs %v", i, p, prev.queue[i])}
		}
	}
	if d.PieceIndex < 0 || d.PieceIndex >= len(prev.queue) {
		return Snapshot{}, &MalformedDeltaError{Turn: prev.turn,
			Reason: fmt.Sprintf("piece index %d outside queue of %d", d.PieceIndex, len(prev.queue))}
	}
	if len(d.NextQueue) != len(prev.queue) {
		return Snapshot{}, &MalformedDeltaError{Turn: prev.turn,
			Reason: fmt.Sprintf("post-move queue has %d pieces, want %d", len(d.NextQueue), len(prev.queue))}
	}

	piece := prev.queue[d.PieceIndex]
	board := prev.board.Clone()
	if err := board.Place(d.Origin, piece); err != nil {
		return Snapshot{}, &MalformedDeltaError{Turn: prev.turn,
			Reason: "placement does not fit prior board", Err: err}
	}
	cleared, eliminated := board.ClearFullLines()

	placed := make([]hexgrid.Hex, 0, piece.Len())
	for _, off := range piece.Offsets() {
		placed = append(placed, d.Origin.Add(off))
	}

	return Snapshot{
		board:   board,
		queue:   cloneQueue(d.NextQueue),
		score:   prev.score + piece.Len() + clearedCellScore*eliminated,
		turn:    prev.turn + 1,
		placed:  placed,
		cleared: cleared,
	}, nil
}
