// ABOUTME: CLI command for listing performance records and personal bests.
// ABOUTME: The PB ledger owns the flags; this is a read-only view.
package main

import (
	"fmt"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/GiovanniJ17/tracker-velocista/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	recordsCategory string
	recordsBestOnly bool
)

var recordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"record", "pb"},
	Short:   "List performance records",
	Long: `List performance records, newest first.

Current personal bests are starred. Each key (race distance, exercise name)
has at most one current PB at any time.

EXAMPLES:

  sprintlog records            # All records
  sprintlog records --best     # Current PBs only
  sprintlog records -c race    # Race records only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := storage.RecordFilter{BestOnly: recordsBestOnly}
		if recordsCategory != "" {
			if !models.IsValidRecordCategory(recordsCategory) {
				return fmt.Errorf("unknown record category: %s (use race, strength or training)", recordsCategory)
			}
			filter.Category = models.RecordCategory(recordsCategory)
		}

		records, err := dbConn.ListRecords(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No records found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			star := " "
			if r.IsPersonalBest {
				star = color.HiGreenString("★")
			}
			value := ""
			if v, ok := r.Value(); ok {
				value = formatRecordValue(r, v)
			}
			fmt.Printf("%s %s %s %s %s %s\n",
				star,
				faint.Sprint(r.ID.String()[:8]),
				faint.Sprint(r.Date.Format("2006-01-02")),
				padRight(string(r.Category), 8),
				padRight(r.Key(), 20),
				value)
		}
		return nil
	},
}

func formatRecordValue(r models.PerformanceRecord, v float64) string {
	switch r.Category {
	case models.RecordRace:
		return fmt.Sprintf("%.2fs", v)
	case models.RecordStrength:
		if r.Reps != nil {
			return fmt.Sprintf("%.1fkg x%d", v, *r.Reps)
		}
		return fmt.Sprintf("%.1fkg", v)
	default:
		unit := r.PerformanceUnit
		if unit == "" {
			return fmt.Sprintf("%g", v)
		}
		return fmt.Sprintf("%g %s", v, unit)
	}
}

func init() {
	recordsCmd.Flags().StringVarP(&recordsCategory, "category", "c", "", "filter by category (race, strength, training)")
	recordsCmd.Flags().BoolVar(&recordsBestOnly, "best", false, "only current personal bests")
	rootCmd.AddCommand(recordsCmd)
}
