package hexlog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ashmarty/hexview/internal/hexgrid"
)

// WriteFile encodes the log and writes it to path.
// The header's Version and Turns fields are normalized to match the
// encoded content. The viewer itself never writes logs during playback;
// this exists for recording tools and test fixtures.
func WriteFile(path string, log *Log) error {
	data, err := Encode(log)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("hexlog: cannot write %s: %w", path, err)
	}
	return nil
}

// Encode serializes the log to its JSON wire form.
func Encode(log *Log) ([]byte, error) {
	wire := jsonLog{
		Header:     log.Header,
		Moves:      make([]jsonMove, len(log.Deltas)),
		FinalQueue: encodeQueue(log.FinalQueue),
	}
	wire.Version = FormatVersion
	wire.Turns = len(log.Deltas)

	for turn, d := range log.Deltas {
		wire.Moves[turn] = jsonMove{
			Origin:     jsonHex{I: d.Origin.I, K: d.Origin.K},
			PieceIndex: d.PieceIndex,
			Queue:      encodeQueue(d.Queue),
		}
	}

	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("hexlog: cannot encode log: %w", err)
	}
	return data, nil
}

func encodeQueue(queue []hexgrid.Piece) []int {
	out := make([]int, len(queue))
	for i, p := range queue {
		out[i] = int(p.Byte())
	}
	return out
}
