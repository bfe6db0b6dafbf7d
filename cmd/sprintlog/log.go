// ABOUTME: CLI commands for logging training sessions and quick PB entries.
// ABOUTME: Everything funnels through the engine save pipeline.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/engine"
	"github.com/GiovanniJ17/tracker-velocista/internal/normalize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	logDate  string
	logType  string
	logTitle string
	logRPE   float64
	logNotes string
	logFile  string
	logReps  int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a training session",
	Long: `Log a training session. With no subcommand a plain session is created
from the flags; use --file to submit a full structured session document.

Examples:
  sprintlog log --type track --rpe 7 --title "Speed endurance"
  sprintlog log --file session.json
  sprintlog log --file -                 # read the document from stdin
  sprintlog log race 100 11.20
  sprintlog log lift squat 120 --reps 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logFile != "" {
			return logFromFile(cmd, logFile)
		}

		cand := engine.Candidate{Session: sessionInputFromFlags()}
		return saveAndReport(cmd, cand)
	},
}

var logRaceCmd = &cobra.Command{
	Use:   "race <distance> <time>",
	Short: "Log a race result and claim it as a PB attempt",
	Long: `Log a race result. Distance accepts meters or km ("100", "100m", "5km");
time accepts seconds or mm:ss ("11.20", "4:05.3"). The result is saved as a
race session with a claimed personal best; the PB ledger decides whether it
beats the current best.

Examples:
  sprintlog log race 100 11.20
  sprintlog log race 400 52.41 --date 2026-06-14 --rpe 9`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		distance, ok := normalize.ParseDistance(args[0])
		if !ok {
			return fmt.Errorf("invalid distance: %s", args[0])
		}
		timeS, ok := normalize.ParseTime(args[1])
		if !ok {
			return fmt.Errorf("invalid time: %s", args[1])
		}

		session := sessionInputFromFlags()
		if logType == "" {
			session.Type = "race"
		}
		if session.Title == "" {
			session.Title = fmt.Sprintf("%gm race", distance)
		}
		cand := engine.Candidate{
			Session: session,
			PersonalBests: []engine.RecordInput{
				{Type: "race", DistanceM: &distance, TimeS: &timeS},
			},
		}
		return saveAndReport(cmd, cand)
	},
}

var logLiftCmd = &cobra.Command{
	Use:   "lift <exercise> <weight>",
	Short: "Log a lift and claim it as a PB attempt",
	Long: `Log a strength result. Weight accepts kilograms or pounds ("120",
"120kg", "265lb").

Examples:
  sprintlog log lift squat 120 --reps 3
  sprintlog log lift "power clean" 85`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, ok := normalize.ParseWeight(args[1])
		if !ok {
			return fmt.Errorf("invalid weight: %s", args[1])
		}
		reps := logReps

		session := sessionInputFromFlags()
		if logType == "" {
			session.Type = "gym"
		}
		if session.Title == "" {
			session.Title = args[0]
		}
		cand := engine.Candidate{
			Session: session,
			PersonalBests: []engine.RecordInput{
				{Type: "strength", ExerciseName: args[0], WeightKg: &weight, Reps: &reps},
			},
		}
		return saveAndReport(cmd, cand)
	},
}

func sessionInputFromFlags() engine.SessionInput {
	input := engine.SessionInput{
		Date:  logDate,
		Type:  logType,
		Title: logTitle,
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	}
	if input.Type == "" {
		input.Type = "track"
	}
	if logRPE > 0 {
		rpe := logRPE
		input.RPE = &rpe
	}
	if logNotes != "" {
		notes := logNotes
		input.Notes = &notes
	}
	return input
}

func logFromFile(cmd *cobra.Command, path string) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read session document: %w", err)
	}

	var cand engine.Candidate
	if err := json.Unmarshal(data, &cand); err != nil {
		return fmt.Errorf("parse session document: %w", err)
	}
	return saveAndReport(cmd, cand)
}

func saveAndReport(cmd *cobra.Command, cand engine.Candidate) error {
	result, err := eng.SaveSession(cmd.Context(), cand)

	var partial *engine.PartialSaveError
	if err != nil && !errors.As(err, &partial) {
		return err
	}

	color.Green("✓ Logged %s session on %s", result.Session.Type, result.Session.Date.Format("2006-01-02"))
	fmt.Printf("  %s %s\n",
		color.New(color.Faint).Sprint(result.Session.ID.String()[:8]),
		result.Session.Title)

	for _, pb := range result.NewPBs {
		color.HiGreen("  ★ New personal best: %s", pb)
	}
	for _, w := range result.Warnings {
		color.Yellow("  ! %s", w.Message)
	}
	if partial != nil {
		color.Red("  ✗ %d step(s) failed:", len(partial.Steps))
		for _, s := range partial.Steps {
			fmt.Printf("    %s\n", s.Error())
		}
	}
	return nil
}

func init() {
	logCmd.PersistentFlags().StringVar(&logDate, "date", "", "Session date (YYYY-MM-DD, default today)")
	logCmd.PersistentFlags().StringVarP(&logType, "type", "t", "", "Session type (track, gym, road, race, test, other)")
	logCmd.PersistentFlags().StringVar(&logTitle, "title", "", "Session title")
	logCmd.PersistentFlags().Float64Var(&logRPE, "rpe", 0, "Perceived exertion (1-10)")
	logCmd.PersistentFlags().StringVar(&logNotes, "notes", "", "Session notes")
	logCmd.Flags().StringVarP(&logFile, "file", "f", "", "Structured session document (JSON file, or - for stdin)")
	logLiftCmd.Flags().IntVar(&logReps, "reps", 1, "Rep count for the lift")

	logCmd.AddCommand(logRaceCmd)
	logCmd.AddCommand(logLiftCmd)
	rootCmd.AddCommand(logCmd)
}
