package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashmarty/hexview/internal/hexlog"
	"github.com/ashmarty/hexview/internal/replay"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check a replay's integrity",
	Long: `Decode a replay file and re-simulate every recorded turn, reporting
the first inconsistency found: malformed moves, overlapping placements,
queue mismatches, or a final score that disagrees with the header.

Exits with status 1 if the replay does not check out.

Examples:
  hexview verify game.hexlog`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) {
	path := args[0]

	logFile, err := hexlog.ReadFile(path)
	if err != nil {
		var ferr *hexlog.FormatError
		if errors.As(err, &ferr) && ferr.Turn >= 0 {
			fmt.Fprintf(os.Stderr, "FAIL: move %d: %v\n", ferr.Turn, err)
		} else {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		}
		os.Exit(1)
	}

	tracker, err := replay.BuildFromLog(logFile)
	if err != nil {
		var ierr *replay.IntegrityError
		if errors.As(err, &ierr) {
			fmt.Fprintf(os.Stderr, "FAIL: turn %d: %v\n", ierr.Turn, err)
		} else {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		}
		os.Exit(1)
	}

	last, err := tracker.At(tracker.Size() - 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	h := logFile.Header
	if h.FinalScore != 0 && last.Score() != h.FinalScore {
		fmt.Fprintf(os.Stderr, "FAIL: final score %d does not match header's %d\n", last.Score(), h.FinalScore)
		os.Exit(1)
	}

	fmt.Printf("OK: %d turns, final score %d\n", tracker.Size()-1, last.Score())
}
