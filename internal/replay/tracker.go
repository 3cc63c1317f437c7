package replay

import "github.com/ashmarty/hexview/internal/hexlog"

// Tracker owns the ordered, immutable snapshot history of one recorded
// game plus a read cursor. The history is fixed at construction: it is
// never reordered, truncated, or appended to, and always holds at least
// the initial state. The cursor is always a valid index.
//
// A Tracker assumes a single logical reader; the playback controller
// serializes access to it.
type Tracker struct {
	snapshots []Snapshot
	cursor    int
}

// Build reconstructs the full state history by applying every delta the
// source yields, starting from the initial snapshot. Construction is
// all-or-nothing: any malformed delta or source failure aborts with an
// *IntegrityError and no tracker.
func Build(initial Snapshot, src hexlog.Source) (*Tracker, error) {
	snapshots := []Snapshot{initial}
	current := initial
	for {
		delta, err := src.Next()
		if err == hexlog.ErrEndOfLog {
			break
		}
		if err != nil {
			return nil, &IntegrityError{Turn: current.Turn(), Err: err}
		}
		next, err := Apply(current, delta)
		if err != nil {
			return nil, &IntegrityError{Turn: current.Turn(), Err: err}
		}
		snapshots = append(snapshots, next)
		current = next
	}
	return &Tracker{snapshots: snapshots}, nil
}

// BuildFromLog builds a tracker for a decoded log file.
func BuildFromLog(log *hexlog.Log) (*Tracker, error) {
	initial, err := NewInitial(log.Header.Radius, log.InitialQueue())
	if err != nil {
		return nil, &IntegrityError{Turn: 0, Err: err}
	}
	return Build(initial, log.Source())
}

// Size returns the total number of snapshots, one more than the number
// of recorded moves. Always at least 1.
func (t *Tracker) Size() int {
	return len(t.snapshots)
}

// At returns the snapshot at the given turn index without moving the
// cursor. Returns an *OutOfRangeError for invalid indices.
func (t *Tracker) At(index int) (Snapshot, error) {
	if index < 0 || index >= len(t.snapshots) {
		return Snapshot{}, &OutOfRangeError{Index: index, Size: len(t.snapshots)}
	}
	return t.snapshots[index], nil
}

// Cursor returns the current cursor position.
func (t *Tracker) Cursor() int {
	return t.cursor
}

// Current returns the snapshot at the cursor.
func (t *Tracker) Current() Snapshot {
	return t.snapshots[t.cursor]
}

// Seek moves the cursor to index and returns the snapshot there.
// Out-of-range seeks are rejected with an *OutOfRangeError and leave
// the cursor unchanged; they are never clamped.
func (t *Tracker) Seek(index int) (Snapshot, error) {
	snap, err := t.At(index)
	if err != nil {
		return Snapshot{}, err
	}
	t.cursor = index
	return snap, nil
}

// StepForward advances the cursor by one turn and returns the snapshot
// there. At the last turn it returns ErrEndOfHistory and does not move.
func (t *Tracker) StepForward() (Snapshot, error) {
	if t.cursor >= len(t.snapshots)-1 {
		return Snapshot{}, ErrEndOfHistory
	}
	t.cursor++
	return t.snapshots[t.cursor], nil
}

// StepBackward moves the cursor back by one turn and returns the
// snapshot there. At turn 0 it returns ErrStartOfHistory and does not
// move.
func (t *Tracker) StepBackward() (Snapshot, error) {
	if t.cursor <= 0 {
		return Snapshot{}, ErrStartOfHistory
	}
	t.cursor--
	return t.snapshots[t.cursor], nil
}
