// ABOUTME: CLI commands for injury history: add, list, resolve.
// ABOUTME: Active injuries also surface in the athlete context.
package main

import (
	"fmt"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	injurySeverity string
	injuryDate     string
	injuryNotes    string
	injuryEndDate  string
)

var injuryCmd = &cobra.Command{
	Use:     "injury",
	Aliases: []string{"injuries"},
	Short:   "Manage injury history",
}

var injuryAddCmd = &cobra.Command{
	Use:   "add <type> <body-part>",
	Short: "Record a new injury",
	Long: `Record a new injury. It stays active until resolved.

Examples:
  sprintlog injury add strain hamstring --severity moderate
  sprintlog injury add "shin splints" tibia --date 2026-08-12`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		severity := models.InjurySeverity(injurySeverity)
		switch severity {
		case models.SeverityMinor, models.SeverityModerate, models.SeveritySevere:
		default:
			return fmt.Errorf("unknown severity: %s (use minor, moderate or severe)", injurySeverity)
		}

		startDate := time.Now()
		if injuryDate != "" {
			t, err := time.Parse("2006-01-02", injuryDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", injuryDate)
			}
			startDate = t
		}

		inj := models.NewInjuryRecord(args[0], args[1], severity, startDate)
		if injuryNotes != "" {
			inj.WithNotes(injuryNotes)
		}

		if err := dbConn.AddInjury(cmd.Context(), inj); err != nil {
			return fmt.Errorf("failed to add injury: %w", err)
		}

		color.Green("✓ Recorded %s injury (%s)", inj.InjuryType, inj.BodyPart)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(inj.ID.String()[:8]))
		return nil
	},
}

var injuryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List injuries",
	RunE: func(cmd *cobra.Command, args []string) error {
		injuries, err := dbConn.ListInjuries(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list injuries: %w", err)
		}
		if len(injuries) == 0 {
			fmt.Println("No injuries recorded.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, inj := range injuries {
			status := color.GreenString("resolved")
			if inj.Active() {
				status = color.RedString("active")
			}
			fmt.Printf("%s %s %s %s %s %s\n",
				faint.Sprint(inj.ID.String()[:8]),
				faint.Sprint(inj.StartDate.Format("2006-01-02")),
				padRight(inj.InjuryType, 16),
				padRight(inj.BodyPart, 12),
				padRight(string(inj.Severity), 8),
				status)
		}
		return nil
	},
}

var injuryResolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Mark an injury as resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endDate := time.Now()
		if injuryEndDate != "" {
			t, err := time.Parse("2006-01-02", injuryEndDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", injuryEndDate)
			}
			endDate = t
		}

		if err := dbConn.ResolveInjury(cmd.Context(), args[0], endDate); err != nil {
			return fmt.Errorf("failed to resolve injury: %w", err)
		}
		color.Green("✓ Resolved injury %s", args[0])
		return nil
	},
}

func init() {
	injuryAddCmd.Flags().StringVarP(&injurySeverity, "severity", "s", "minor", "severity (minor, moderate, severe)")
	injuryAddCmd.Flags().StringVar(&injuryDate, "date", "", "start date (YYYY-MM-DD, default today)")
	injuryAddCmd.Flags().StringVar(&injuryNotes, "notes", "", "notes")
	injuryResolveCmd.Flags().StringVar(&injuryEndDate, "date", "", "end date (YYYY-MM-DD, default today)")

	injuryCmd.AddCommand(injuryAddCmd)
	injuryCmd.AddCommand(injuryListCmd)
	injuryCmd.AddCommand(injuryResolveCmd)
	rootCmd.AddCommand(injuryCmd)
}
