// ABOUTME: CLI commands for the KPI summary and the progression report.
// ABOUTME: Thin rendering over the engine's computed outputs.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the KPI summary",
	Long: `Show the headline training numbers: total sessions, average RPE,
personal-best count, current streak, session type mix and volume totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := eng.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		bold := color.New(color.Bold)
		fmt.Printf("%s  %d\n", bold.Sprint("Sessions       "), stats.TotalSessions)
		if stats.AvgRPE != nil {
			fmt.Printf("%s  %.1f\n", bold.Sprint("Average RPE    "), *stats.AvgRPE)
		}
		fmt.Printf("%s  %d\n", bold.Sprint("Personal bests "), stats.PBCount)
		fmt.Printf("%s  %d day(s)\n", bold.Sprint("Streak         "), stats.Streak)
		fmt.Printf("%s  %.2f km sprinted, %.0f kg lifted\n",
			bold.Sprint("Volume         "), stats.TotalDistanceKm, stats.TotalWeightKg)

		if len(stats.TypeDistribution) > 0 {
			types := make([]string, 0, len(stats.TypeDistribution))
			for t := range stats.TypeDistribution {
				types = append(types, t)
			}
			sort.Strings(types)
			fmt.Println()
			for _, t := range types {
				fmt.Printf("  %s %d\n", padRight(t, 8), stats.TypeDistribution[t])
			}
		}
		return nil
	},
}

var progressionCmd = &cobra.Command{
	Use:     "progression",
	Aliases: []string{"prog"},
	Short:   "Show per-distance progression and sprint indices",
	Long: `Show the per-distance progression table computed from race records:
all-time best, recent best (last 30 days), change, 28-day trend and
consistency (standard deviation of the last 8 results). Below the table
come the sprint indices and target bands where enough data exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := eng.Progression(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute progression: %w", err)
		}
		if len(report.Rows) == 0 {
			fmt.Println("No race performances recorded yet.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Println(faint.Sprint("distance   best     recent   change    trend     sd       n"))
		for _, row := range report.Rows {
			fmt.Printf("%s %s %s %s %s %s %d\n",
				padRight(fmt.Sprintf("%gm", row.DistanceM), 10),
				padRight(fmt.Sprintf("%.2fs", row.BestTimeS), 8),
				padRight(fmtOpt(row.RecentBestS, "%.2fs"), 8),
				padRight(fmtOpt(row.ChangePercent, "%+.2f%%"), 9),
				padRight(fmtOpt(row.TrendPercent, "%+.2f%%"), 9),
				padRight(fmtOpt(row.ConsistencyS, "%.2f"), 8),
				row.Samples)
		}

		fmt.Println()
		fmt.Printf("Max velocity:    %s\n", fmtOpt(report.Indices.MaxVelocityMps, "%.2f m/s"))
		fmt.Printf("Accel index:     %s\n", fmtOpt(report.Indices.AccelIndex, "%.2f"))
		fmt.Printf("Speed endurance: %s\n", fmtOpt(report.Indices.SpeedEnduranceIndex, "%.2f"))

		for _, band := range report.Targets {
			if band.TargetS == nil {
				continue
			}
			fmt.Printf("Target %gm:      %.2fs (%.2f-%.2f, %d samples)\n",
				band.DistanceM, *band.TargetS, *band.LowS, *band.HighS, band.Samples)
		}
		return nil
	},
}

// fmtOpt renders an optional metric, showing a dash for missing data.
func fmtOpt(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(progressionCmd)
}
