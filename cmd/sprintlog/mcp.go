// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiovanniJ17/tracker-velocista/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "sprintlog": {
        "command": "sprintlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_session          Save a structured training session
  list_sessions        List sessions in a date range
  get_session          Get a session with groups and sets
  delete_session       Delete a session and derived records
  get_stats            KPI summary
  get_progression      Per-distance progression, indices, targets
  get_load             ATL/CTL/TSB load model
  list_records         List performance records
  get_athlete_context  Compact athlete summary for the assistant`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(dbConn)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
