// ABOUTME: CLI command for the ATL/CTL/TSB training load model.
// ABOUTME: Shows current form and the recent daily series.
package main

import (
	"errors"
	"fmt"

	"github.com/GiovanniJ17/tracker-velocista/internal/load"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loadDays int

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Show the training load model",
	Long: `Show the acute/chronic training load model computed from the sprint
session history.

  ATL  acute training load, 7-day exponential average of daily stress
  CTL  chronic training load, 28-day exponential average
  TSB  training stress balance, yesterday's CTL minus ATL

Positive TSB means freshness, strongly negative TSB means accumulated
fatigue. Needs at least 7 days of history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := eng.LoadModel(cmd.Context())
		if err != nil {
			if errors.Is(err, load.ErrInsufficientData) {
				fmt.Println("Not enough training history for the load model (needs 7+ days).")
				return nil
			}
			return fmt.Errorf("failed to compute load: %w", err)
		}

		bold := color.New(color.Bold)
		tsb := fmt.Sprintf("%+.1f", result.Current.TSB)
		switch {
		case result.Current.TSB >= 5:
			tsb = color.GreenString("%s (fresh)", tsb)
		case result.Current.TSB <= -15:
			tsb = color.RedString("%s (fatigued)", tsb)
		}
		fmt.Printf("%s  %.1f\n", bold.Sprint("ATL"), result.Current.ATL)
		fmt.Printf("%s  %.1f\n", bold.Sprint("CTL"), result.Current.CTL)
		fmt.Printf("%s  %s\n", bold.Sprint("TSB"), tsb)

		series := result.Series
		if loadDays > 0 && len(series) > loadDays {
			series = series[len(series)-loadDays:]
		}

		faint := color.New(color.Faint)
		fmt.Println()
		fmt.Println(faint.Sprint("date        stress  atl    ctl    tsb"))
		for _, p := range series {
			fmt.Printf("%s  %6.1f %6.1f %6.1f %6.1f\n",
				faint.Sprint(p.Date.Format("2006-01-02")),
				p.Stress, p.ATL, p.CTL, p.TSB)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().IntVarP(&loadDays, "days", "n", 14, "days of series to display")
	rootCmd.AddCommand(loadCmd)
}
