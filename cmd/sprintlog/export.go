// ABOUTME: CLI commands for exporting and importing training data.
// ABOUTME: Supports JSON, YAML and CSV export formats.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GiovanniJ17/tracker-velocista/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export training data",
	Long: `Export training data in various formats.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML export (human-readable)
  csv    Flat one-row-per-set projection (for spreadsheets)

EXAMPLES:

  sprintlog export json                 # Export all data as JSON
  sprintlog export json -o backup.json  # Save to file
  sprintlog export csv -o sets.csv      # Spreadsheet projection`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "csv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		switch args[0] {
		case "json":
			data, err = dbConn.ExportJSON(cmd.Context())
		case "yaml":
			data, err = dbConn.ExportYAML(cmd.Context())
		case "csv":
			data, err = dbConn.ExportCSV(cmd.Context())
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml or csv)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		fmt.Print(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import training data from a JSON export",
	Long: `Import training data from a JSON export file. Records are restored
as-is, PB flags included, so import only into an empty database.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		var data storage.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parse import file: %w", err)
		}

		if err := dbConn.ImportData(cmd.Context(), &data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d session(s), %d record(s), %d injury(ies)",
			len(data.Sessions), len(data.Records), len(data.Injuries))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
