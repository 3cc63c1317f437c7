package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ashmarty/hexview/internal/platform/tui"
	"github.com/ashmarty/hexview/internal/storage"
)

var flagRecentList bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Browse recently watched replays",
	Long: `Show the viewing history. By default an interactive browser opens;
picking an entry starts the viewer on that replay.

Examples:
  hexview recent
  hexview recent --list`,
	Args: cobra.NoArgs,
	Run:  runRecent,
}

func init() {
	recentCmd.Flags().BoolVar(&flagRecentList, "list", false, "Print the history instead of opening the browser")
}

func runRecent(cmd *cobra.Command, args []string) {
	cfg := loadViewerConfig()

	store := openLibrary(cfg)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Error: viewing history is unavailable")
		os.Exit(1)
	}
	defer store.Close()

	if flagRecentList {
		printRecent(store)
		return
	}

	// Get terminal size for the browser
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	selected, err := tui.RunLibrary(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if selected == "" {
		return
	}

	if err := tui.RunViewer(cfg, store, nil, selected); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

func printRecent(store *storage.Store) {
	entries, err := store.Recent(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing watched yet.")
		fmt.Println()
		fmt.Println("Run 'hexview play <file>' to watch a replay.")
		return
	}

	// Print header
	fmt.Printf("  %-24s  %-8s  %-8s  %-8s  %s\n", "File", "Turns", "Score", "Left at", "Viewed")
	fmt.Printf("  %-24s  %-8s  %-8s  %-8s  %s\n", "----", "-----", "-----", "-------", "------")

	for _, e := range entries {
		fmt.Printf("  %-24s  %-8d  %-8d  %-8s  %s\n",
			filepath.Base(e.Path),
			e.Turns,
			e.FinalScore,
			fmt.Sprintf("%d/%d", e.LastTurn, e.Turns),
			e.ViewedAt.Format("2006-01-02 15:04"),
		)
	}

	// Show overall stats
	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Watched %d times across %d replays, best score %d\n",
			stats.ViewCount, stats.UniqueFiles, stats.BestScore)
	}
}
