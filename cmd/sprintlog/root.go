// ABOUTME: Root Cobra command for the sprintlog CLI.
// ABOUTME: Handles storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/GiovanniJ17/tracker-velocista/internal/config"
	"github.com/GiovanniJ17/tracker-velocista/internal/engine"
	"github.com/GiovanniJ17/tracker-velocista/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dbConn *storage.DB
	eng    *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "sprintlog",
	Short: "Sprint training log and personal-best tracker",
	Long: `Sprintlog is a CLI tool for logging sprint training and tracking
personal bests, training load and progression.

QUICK START:

  $ sprintlog log race 100 11.20             # Log a 100m in 11.20s
  $ sprintlog log lift squat 120 --reps 3    # Log a squat PB attempt
  $ sprintlog log --type track --rpe 7       # Log a plain track session
  $ sprintlog sessions list                  # See recent sessions
  $ sprintlog records list --best            # Current personal bests

ANALYTICS:

  $ sprintlog stats                # KPI summary: sessions, RPE, PBs, streak
  $ sprintlog progression          # Per-distance bests, trend, consistency
  $ sprintlog load                 # ATL/CTL/TSB training load model
  $ sprintlog injury list          # Injury history

MCP INTEGRATION:

  Run 'sprintlog mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants. Add to your
  Claude config:

  {
    "mcpServers": {
      "sprintlog": { "command": "sprintlog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/sprintlog/sprintlog.db
  (override with data_dir in ~/.config/sprintlog/config.json).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		dbConn, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		eng = engine.New(dbConn)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbConn != nil {
			return dbConn.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
