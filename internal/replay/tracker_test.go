package replay

import (
	"errors"
	"testing"

	"github.com/ashmarty/hexview/internal/hexgrid"
	"github.com/ashmarty/hexview/internal/hexlog"
)

// threeMoveLog builds a radius-2 game with three moves: two placements
// completing a line (which clears it), then one more placement.
func threeMoveLog(t *testing.T) *hexlog.Log {
	t.Helper()
	queue := singlePiece(t)
	move := func(i, k int) hexlog.Delta {
		return hexlog.Delta{
			Origin:     hexgrid.NewHex(i, k),
			PieceIndex: 0,
			Queue:      queue,
			NextQueue:  queue,
		}
	}
	return &hexlog.Log{
		Header:     hexlog.Header{Radius: 2, QueueSize: 1, Turns: 3},
		Deltas:     []hexlog.Delta{move(0, 0), move(0, 1), move(2, 2)},
		FinalQueue: queue,
	}
}

func TestBuildSize(t *testing.T) {
	tracker, err := BuildFromLog(threeMoveLog(t))
	if err != nil {
		t.Fatalf("BuildFromLog: %v", err)
	}

	// N deltas produce N+1 states including the initial one.
	if tracker.Size() != 4 {
		t.Fatalf("Size = %d, want 4", tracker.Size())
	}

	first, err := tracker.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if first.Turn() != 0 || first.Score() != 0 || first.Filled() != 0 {
		t.Errorf("initial state: turn %d score %d filled %d", first.Turn(), first.Score(), first.Filled())
	}

	last, err := tracker.At(3)
	if err != nil {
		t.Fatal(err)
	}
	// Move 1: +1. Move 2: +1 and clears two cells (+10). Move 3: +1.
	if last.Score() != 13 {
		t.Errorf("final Score = %d, want 13", last.Score())
	}
	if last.Filled() != 1 || !last.Occupied(hexgrid.NewHex(2, 2)) {
		t.Errorf("final board wrong: filled %d", last.Filled())
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := BuildFromLog(threeMoveLog(t))
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildFromLog(threeMoveLog(t))
	if err != nil {
		t.Fatal(err)
	}

	if a.Size() != b.Size() {
		t.Fatalf("sizes differ: %d vs %d", a.Size(), b.Size())
	}
	for i := 0; i < a.Size(); i++ {
		sa, _ := a.At(i)
		sb, _ := b.At(i)
		if !sa.Equal(sb) {
			t.Errorf("snapshot %d differs between builds", i)
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	tracker, err := BuildFromLog(threeMoveLog(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, index := range []int{-1, 4, 100} {
		_, err := tracker.At(index)
		var oerr *OutOfRangeError
		if !errors.As(err, &oerr) {
			t.Errorf("At(%d) error = %v, want *OutOfRangeError", index, err)
		}
	}
}

func TestSeekConsistency(t *testing.T) {
	tracker, err := BuildFromLog(threeMoveLog(t))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < tracker.Size(); i++ {
		sought, err := tracker.Seek(i)
		if err != nil {
			t.Fatalf("Seek(%d): %v", i, err)
		}
		direct, err := tracker.At(i)
		if err != nil {
			t.Fatal(err)
		}
		if !sought.Equal(direct) {
			t.Errorf("Seek(%d) and At(%d) disagree", i, i)
		}
		if tracker.Cursor() != i {
			t.Errorf("Cursor = %d after Seek(%d)", tracker.Cursor(), i)
		}
	}

	// Rejecting, not clamping: a bad seek fails and leaves the cursor.
	before := tracker.Cursor()
	if _, err := tracker.Seek(99); err == nil {
		t.Error("expected error from out-of-range Seek")
	}
	if tracker.Cursor() != before {
		t.Errorf("Cursor moved to %d after rejected Seek", tracker.Cursor())
	}
}

func TestStepRoundTrip(t *testing.T) {
	tracker, err := BuildFromLog(threeMoveLog(t))
	if err != nil {
		t.Fatal(err)
	}

	start := tracker.Current()
	if _, err := tracker.StepForward(); err != nil {
		t.Fatalf("StepForward: %v", err)
	}
	back, err := tracker.StepBackward()
	if err != nil {
		t.Fatalf("StepBackward: %v", err)
	}

	if tracker.Cursor() != 0 {
		t.Errorf("Cursor = %d after round trip, want 0", tracker.Cursor())
	}
	if !back.Equal(start) {
		t.Error("round trip did not restore the prior snapshot")
	}
}

func TestStepBoundaries(t *testing.T) {
	tracker, err := BuildFromLog(threeMoveLog(t))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tracker.StepBackward(); err != ErrStartOfHistory {
		t.Errorf("StepBackward at 0: err = %v, want ErrStartOfHistory", err)
	}
	if tracker.Cursor() != 0 {
		t.Errorf("Cursor moved to %d at start boundary", tracker.Cursor())
	}

	last := tracker.Size() - 1
	if _, err := tracker.Seek(last); err != nil {
		t.Fatal(err)
	}
	if _, err := tracker.StepForward(); err != ErrEndOfHistory {
		t.Errorf("StepForward at end: err = %v, want ErrEndOfHistory", err)
	}
	if tracker.Cursor() != last {
		t.Errorf("Cursor moved to %d at end boundary", tracker.Cursor())
	}
}

func TestBuildFailsAtomically(t *testing.T) {
	log := threeMoveLog(t)
	// Repeat the first move so the second placement overlaps.
	log.Deltas[1] = log.Deltas[0]

	tracker, err := BuildFromLog(log)
	if tracker != nil {
		t.Fatal("got a tracker from a malformed log")
	}
	var ierr *IntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("error type = %T, want *IntegrityError", err)
	}
	var merr *MalformedDeltaError
	if !errors.As(err, &merr) {
		t.Fatalf("cause type = %T, want *MalformedDeltaError", err)
	}
	if merr.Turn != 1 {
		t.Errorf("failure at turn %d, want 1", merr.Turn)
	}
}

// failingSource yields one valid delta and then an I/O failure.
type failingSource struct {
	log  *hexlog.Log
	pos  int
	fail error
}

func (f *failingSource) Next() (hexlog.Delta, error) {
	if f.pos == 0 {
		f.pos++
		return f.log.Deltas[0], nil
	}
	return hexlog.Delta{}, f.fail
}

func (f *failingSource) Reset() error {
	f.pos = 0
	return nil
}

func TestBuildPropagatesSourceErrors(t *testing.T) {
	log := threeMoveLog(t)
	cause := errors.New("truncated read")
	initial, err := NewInitial(log.Header.Radius, log.InitialQueue())
	if err != nil {
		t.Fatal(err)
	}

	tracker, err := Build(initial, &failingSource{log: log, fail: cause})
	if tracker != nil {
		t.Fatal("got a tracker from a failing source")
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want wrapped %v", err, cause)
	}
}

func TestEmptyLogStillHasInitialState(t *testing.T) {
	queue := singlePiece(t)
	log := &hexlog.Log{
		Header:     hexlog.Header{Radius: 3, QueueSize: 1},
		FinalQueue: queue,
	}

	tracker, err := BuildFromLog(log)
	if err != nil {
		t.Fatal(err)
	}
	if tracker.Size() != 1 {
		t.Errorf("Size = %d, want 1", tracker.Size())
	}
	if len(tracker.Current().Queue()) != 1 {
		t.Errorf("initial queue = %v", tracker.Current().Queue())
	}
}
