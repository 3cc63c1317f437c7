package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashmarty/hexview/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Watch a replay",
	Long: `Open a replay file and step through it turn by turn.
With no file argument, a picker lists the replays in the current
directory.

Controls:
  Space      - Play/pause
  B          - Play backward
  Left/H     - Step back
  Right/L    - Step forward
  +/-        - Faster/slower
  G/Shift+G  - First/last turn
  O          - Open another file
  Q/Ctrl+C   - Quit

Examples:
  hexview play
  hexview play game.hexlog
  hexview play game.hexlog --speed 5
  hexview play game.hexlog --config ./my-viewer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var flagSpeed float64

func init() {
	playCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Playback speed in steps per second (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	cfg := loadViewerConfig()
	if flagSpeed > 0 {
		cfg.Playback.Speed = flagSpeed
	}

	store := openLibrary(cfg)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunViewer(cfg, store, nil, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}
