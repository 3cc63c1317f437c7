package replay

import (
	"errors"
	"fmt"
)

// Boundary sentinels. Hitting either end of the history is expected
// control flow, not a failure: playback stops, manual steps no-op.
var (
	ErrEndOfHistory   = errors.New("replay: already at last turn")
	ErrStartOfHistory = errors.New("replay: already at first turn")
)

// MalformedDeltaError reports a delta that is structurally inconsistent
// with the snapshot it was applied to. Turn is the index of the
// snapshot the delta was applied to.
type MalformedDeltaError struct {
	Turn   int
	Reason string
	Err    error
}

func (e *MalformedDeltaError) Error() string {
	return fmt.Sprintf("replay: malformed delta at turn %d: %s", e.Turn, e.Reason)
}

func (e *MalformedDeltaError) Unwrap() error {
	return e.Err
}

// IntegrityError reports that a tracker could not be built because the
// log was malformed or truncated. Construction is all-or-nothing: no
// partially built tracker is ever returned alongside this error.
type IntegrityError struct {
	Turn int
	Err  error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("replay: log integrity failure at turn %d: %v", e.Turn, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// OutOfRangeError reports an index outside the tracker's history.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("replay: index %d out of range [0, %d)", e.Index, e.Size)
}
