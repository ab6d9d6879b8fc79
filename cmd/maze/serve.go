package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the maze SSH server",
	Long: `Start an SSH server that allows users to connect and walk mazes.

Each SSH connection gets its own session with a level picker menu.
Runs are stored per-server (all users share the same best-run boards).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.maze/host_key

Examples:
  maze serve                           # Listen on :23235 with auto-generated key
  maze serve --ssh :2222               # Listen on port 2222
  maze serve --host-key ./my_host_key  # Use specific host key
  maze serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Controls = controls()
	cfg.Logger = logger.WithPrefix("maze-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting maze SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
