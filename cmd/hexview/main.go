// hexview is a terminal viewer for recorded hex puzzle games.
//
// Usage:
//
//	hexview play [file]      - Watch a replay (file picker when omitted)
//	hexview info <file>      - Print a replay's header and final state
//	hexview verify <file>    - Check a replay's integrity
//	hexview recent           - Browse recently watched replays
//	hexview serve            - Start SSH server for remote viewing
//
// Global flags:
//
//	--config <path>  - Path to viewer config YAML
//	--db <path>      - Path to viewing-history database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashmarty/hexview/internal/config"
	"github.com/ashmarty/hexview/internal/storage"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexview",
	Short: "Hexview - Watch hex puzzle replays in your terminal",
	Long: `Hexview replays recorded hex puzzle games turn by turn, forward or
backward, at any speed.

Available commands:
  play     - Watch a replay
  info     - Print a replay's header and final state
  verify   - Check a replay's integrity
  recent   - Browse recently watched replays
  serve    - Start SSH server for remote viewing

Examples:
  hexview play game.hexlog
  hexview info game.hexlog
  hexview verify game.hexlog
  hexview recent
  hexview serve --ssh :2222 --replays ./games`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to viewer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to viewing-history database (default ~/.hexview/library.db)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadViewerConfig loads the config honoring the global flag.
func loadViewerConfig() config.ViewerConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openLibrary opens the viewing-history store, or returns nil when the
// database cannot be opened. Viewing works without it.
func openLibrary(cfg config.ViewerConfig) *storage.Store {
	dbPath := flagDBPath
	if dbPath == "" {
		resolved, err := cfg.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not resolve library path: %v\n", err)
			return nil
		}
		dbPath = resolved
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open library database: %v\n", err)
		return nil
	}
	return store
}
