package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ashmarty/hexview/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagReplayDir   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the replay SSH server",
	Long: `Start an SSH server that lets users connect and watch the replays in
a shared directory.

Each SSH connection gets its own session with a file picker. The
viewing history is stored per-server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hexview/host_key

Examples:
  hexview serve                           # Serve ./ on :23234
  hexview serve --ssh :2222               # Listen on port 2222
  hexview serve --replays ./games         # Serve a specific directory
  hexview serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagReplayDir, "replays", ".", "Directory of replay files to serve")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	viewerCfg := loadViewerConfig()

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = "~/.hexview/library.db"
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		ReplayDir:   flagReplayDir,
		DBPath:      dbPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, viewerCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting hexview SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
