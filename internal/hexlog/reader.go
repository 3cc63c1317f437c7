package hexlog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ashmarty/hexview/internal/hexgrid"
)

// Wire representation. Pieces travel as their 7-bit codec bytes and
// coordinates as I/K line indices.
type jsonLog struct {
	Header
	Moves      []jsonMove `json:"moves"`
	FinalQueue []int      `json:"finalQueue"`
}

type jsonMove struct {
	Origin     jsonHex `json:"origin"`
	PieceIndex int     `json:"pieceIndex"`
	Queue      []int   `json:"queue"`
}

type jsonHex struct {
	I int `json:"i"`
	K int `json:"k"`
}

// ReadFile reads and validates a replay log.
// The whole file is decoded and checked up front so that a returned Log
// is always structurally sound: header fields in range, move count
// matching the header, every queue the declared size, and every piece
// byte decodable. Game-state validity (placements fitting the board) is
// not checked here; that is the replay builder's concern.
func ReadFile(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hexlog: cannot read %s: %w", path, err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) (*Log, error) {
	var wire jsonLog
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &FormatError{Path: path, Turn: -1, Reason: "invalid JSON", Err: err}
	}

	if wire.Version != FormatVersion {
		return nil, &FormatError{Path: path, Turn: -1,
			Reason: fmt.Sprintf("unsupported version %d", wire.Version)}
	}
	if wire.Radius < 1 {
		return nil, &FormatError{Path: path, Turn: -1,
			Reason: fmt.Sprintf("radius must be positive, got %d", wire.Radius)}
	}
	if wire.QueueSize < 1 {
		return nil, &FormatError{Path: path, Turn: -1,
			Reason: fmt.Sprintf("queue size must be positive, got %d", wire.QueueSize)}
	}
	if wire.Turns != len(wire.Moves) {
		return nil, &FormatError{Path: path, Turn: -1,
			Reason: fmt.Sprintf("header declares %d turns but log has %d moves", wire.Turns, len(wire.Moves))}
	}

	finalQueue, err := decodeQueue(path, len(wire.Moves), wire.QueueSize, wire.FinalQueue)
	if err != nil {
		return nil, err
	}

	log := &Log{
		Header:     wire.Header,
		Deltas:     make([]Delta, len(wire.Moves)),
		FinalQueue: finalQueue,
	}

	for turn, move := range wire.Moves {
		queue, err := decodeQueue(path, turn, wire.QueueSize, move.Queue)
		if err != nil {
			return nil, err
		}
		if move.PieceIndex < 0 || move.PieceIndex >= len(queue) {
			return nil, &FormatError{Path: path, Turn: turn,
				Reason: fmt.Sprintf("piece index %d outside queue of %d", move.PieceIndex, len(queue))}
		}
		log.Deltas[turn] = Delta{
			Origin:     hexgrid.NewHex(move.Origin.I, move.Origin.K),
			PieceIndex: move.PieceIndex,
			Queue:      queue,
		}
	}

	// Stitch each delta's post-move queue from its successor.
	for turn := range log.Deltas {
		if turn+1 < len(log.Deltas) {
			log.Deltas[turn].NextQueue = log.Deltas[turn+1].Queue
		} else {
			log.Deltas[turn].NextQueue = log.FinalQueue
		}
	}

	return log, nil
}

func decodeQueue(path string, turn, queueSize int, bytes []int) ([]hexgrid.Piece, error) {
	if len(bytes) != queueSize {
		return nil, &FormatError{Path: path, Turn: turn,
			Reason: fmt.Sprintf("queue has %d pieces, header declares %d", len(bytes), queueSize)}
	}
	queue := make([]hexgrid.Piece, len(bytes))
	for i, raw := range bytes {
		if raw < 0 || raw > 0x7F {
			return nil, &FormatError{Path: path, Turn: turn,
				Reason: fmt.Sprintf("queue slot %d: piece byte %d out of range", i, raw)}
		}
		piece, err := hexgrid.PieceFromByte(byte(raw))
		if err != nil {
			return nil, &FormatError{Path: path, Turn: turn,
				Reason: fmt.Sprintf("queue slot %d: invalid piece", i), Err: err}
		}
		queue[i] = piece
	}
	return queue, nil
}
