package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdrift/internal/mcpserver"
)

// SetupMCPFlags creates the flag set for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: oasdrift mcp

Run the Model Context Protocol server over stdio.

The server exposes the check and scan tools to MCP clients such as coding
agents. Tool behavior is configured through OASDRIFT_* environment
variables (cache sizing, pagination limits, default severity); the server
instructions list every variable.

Examples:
  # Run the server (typically launched by an MCP client)
  oasdrift mcp

  # Run with a larger findings page size
  OASDRIFT_FINDINGS_LIMIT=500 oasdrift mcp
`)
	}
	return fs
}

// HandleMCP processes the mcp command: it serves MCP over stdio until the
// client disconnects or the process receives SIGINT or SIGTERM.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// Cancel the server context on interrupt so the transport and the cache
	// sweeper shut down cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running MCP server: %w", err)
	}
	return nil
}
