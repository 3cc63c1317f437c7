package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashmarty/hexview/internal/hexlog"
	"github.com/ashmarty/hexview/internal/replay"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print a replay's header and final state",
	Long: `Decode a replay file and print its header fields plus the score and
board occupancy after the last turn.

Examples:
  hexview info game.hexlog`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) {
	path := args[0]

	logFile, err := hexlog.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	h := logFile.Header
	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Version:    %d\n", h.Version)
	if h.Player != "" {
		fmt.Printf("Player:     %s\n", h.Player)
	}
	fmt.Printf("Radius:     %d\n", h.Radius)
	fmt.Printf("Queue size: %d\n", h.QueueSize)
	fmt.Printf("Turns:      %d\n", h.Turns)
	fmt.Printf("Completed:  %v\n", h.Completed)

	tracker, err := replay.BuildFromLog(logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: replay is corrupt: %v\n", err)
		os.Exit(1)
	}

	last, err := tracker.At(tracker.Size() - 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Final score:    %d\n", last.Score())
	fmt.Printf("Occupied cells: %d\n", last.Filled())
	if h.FinalScore != 0 && h.FinalScore != last.Score() {
		fmt.Printf("Note: header claims final score %d; replay yields %d\n", h.FinalScore, last.Score())
	}
}
