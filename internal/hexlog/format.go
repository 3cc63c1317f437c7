// Package hexlog reads and writes hex puzzle replay logs.
// A log stores only per-turn deltas (piece placements); reconstructing
// full game states from them is the replay package's job. The on-disk
// format is JSON with the .hexlog extension.
package hexlog

import (
	"errors"
	"fmt"

	"github.com/ashmarty/hexview/internal/hexgrid"
)

// FormatVersion is the current log format version.
const FormatVersion = 1

// Extension is the canonical file extension for replay logs.
const Extension = ".hexlog"

// ErrEndOfLog is returned by Source.Next when the log is exhausted.
var ErrEndOfLog = errors.New("hexlog: end of log")

// Header describes a recorded game without its move data.
type Header struct {
	Version    int    `json:"version"`
	Player     string `json:"player"`
	Radius     int    `json:"radius"`
	QueueSize  int    `json:"queueSize"`
	Turns      int    `json:"turns"`
	FinalScore int    `json:"finalScore"`
	Completed  bool   `json:"completed"`
}

// Delta is one decoded log record: the minimal change between two
// consecutive turns. Queue is the piece queue before the move (the
// placed piece is Queue[PieceIndex]); NextQueue is the queue visible
// after the move, stitched in by the reader from the following record.
type Delta struct {
	Origin     hexgrid.Hex
	PieceIndex int
	Queue      []hexgrid.Piece
	NextQueue  []hexgrid.Piece
}

// Source is a sequential provider of deltas from a log.
type Source interface {
	// Next returns the next delta, or ErrEndOfLog when exhausted.
	Next() (Delta, error)

	// Reset rewinds the source to the first delta.
	Reset() error
}

// FormatError reports a malformed or inconsistent log.
// Turn is the zero-based move the error was found at, or -1 for
// header-level problems.
type FormatError struct {
	Path   string
	Turn   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	where := e.Path
	if where == "" {
		where = "log"
	}
	if e.Turn >= 0 {
		return fmt.Sprintf("hexlog: %s: move %d: %s", where, e.Turn, e.Reason)
	}
	return fmt.Sprintf("hexlog: %s: %s", where, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Log is a fully decoded replay log.
type Log struct {
	Header     Header
	Deltas     []Delta
	FinalQueue []hexgrid.Piece
}

// InitialQueue returns the piece queue of the initial game state:
// the first move's queue, or the final queue for a game with no moves.
func (l *Log) InitialQueue() []hexgrid.Piece {
	if len(l.Deltas) > 0 {
		return l.Deltas[0].Queue
	}
	return l.FinalQueue
}

// Source returns a fresh sequential source over the log's deltas.
func (l *Log) Source() *SliceSource {
	return &SliceSource{deltas: l.Deltas}
}

// SliceSource serves deltas from an in-memory slice.
// It implements Source and is also handy for tests.
type SliceSource struct {
	deltas []Delta
	pos    int
}

// NewSliceSource creates a source over the given deltas.
func NewSliceSource(deltas []Delta) *SliceSource {
	return &SliceSource{deltas: deltas}
}

// Next implements Source.
func (s *SliceSource) Next() (Delta, error) {
	if s.pos >= len(s.deltas) {
		return Delta{}, ErrEndOfLog
	}
	d := s.deltas[s.pos]
	s.pos++
	return d, nil
}

// Reset implements Source.
func (s *SliceSource) Reset() error {
	s.pos = 0
	return nil
}
