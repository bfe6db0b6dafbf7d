// ABOUTME: CLI commands for listing, showing and deleting sessions.
// ABOUTME: Show prints the full group/set tree; delete cascades derived records.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sessionsSince string
	sessionsUntil string
	sessionsLimit int
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"session", "s"},
	Short:   "Manage training sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List training sessions",
	Long: `List training sessions, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  TYPE  TITLE  RPE

  The ID is an 8-character prefix you can use with show and delete.

EXAMPLES:

  sprintlog sessions list                     # Last 20 sessions
  sprintlog sessions list --since 2026-06-01  # Sessions from June onward
  sprintlog sessions list -n 50               # Last 50 sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := parseRange(sessionsSince, sessionsUntil)
		if err != nil {
			return err
		}

		sessions, err := dbConn.ListSessions(cmd.Context(), start, end)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		// Newest first, capped at the limit.
		for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
			sessions[i], sessions[j] = sessions[j], sessions[i]
		}
		if sessionsLimit > 0 && len(sessions) > sessionsLimit {
			sessions = sessions[:sessionsLimit]
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			rpe := ""
			if s.RPE != nil {
				rpe = fmt.Sprintf("RPE %.0f", *s.RPE)
			}
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(s.ID.String()[:8]),
				faint.Sprint(s.Date.Format("2006-01-02")),
				padRight(string(s.Type), 6),
				padRight(truncate(s.Title, 40), 40),
				rpe)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session with all groups and sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := dbConn.GetSession(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s  %s  %s\n", session.Date.Format("2006-01-02"),
			color.New(color.Bold).Sprint(session.Title), faint.Sprintf("(%s)", session.Type))
		fmt.Printf("%s\n", faint.Sprint(session.ID.String()))
		if session.RPE != nil {
			fmt.Printf("RPE: %.1f\n", *session.RPE)
		}
		if session.Notes != nil {
			fmt.Printf("Notes: %s\n", *session.Notes)
		}

		for _, g := range session.Groups {
			fmt.Printf("\n%s\n", color.New(color.Bold).Sprint(g.Name))
			for _, ws := range g.Sets {
				fmt.Printf("  %s %s\n", padRight(ws.ExerciseName, 24), describeSet(ws))
			}
		}
		return nil
	},
}

var (
	editTitle string
	editType  string
	editRPE   float64
	editNotes string
)

var sessionsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit session metadata",
	Long: `Edit the title, type, RPE or notes of a session. Groups and sets are
immutable; delete and re-log the session to change them.

Examples:
  sprintlog sessions edit a1b2c3d4 --title "Block starts"
  sprintlog sessions edit a1b2c3d4 --rpe 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch models.SessionPatch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("type") {
			if !models.IsValidSessionType(editType) {
				return fmt.Errorf("unknown session type: %s", editType)
			}
			st := models.SessionType(editType)
			patch.Type = &st
		}
		if cmd.Flags().Changed("rpe") {
			if editRPE < 1 || editRPE > 10 {
				return fmt.Errorf("rpe must be between 1 and 10")
			}
			patch.RPE = &editRPE
		}
		if cmd.Flags().Changed("notes") {
			patch.Notes = &editNotes
		}

		if err := dbConn.UpdateSession(cmd.Context(), args[0], patch); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		color.Green("✓ Updated session %s", args[0])
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session and its derived records",
	Long: `Delete a session by ID or ID prefix. Its workout groups, sets and any
performance or injury records derived from it are deleted as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dbConn.DeleteSession(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		color.Green("✓ Deleted session %s", args[0])
		return nil
	},
}

// describeSet renders the measurements a set actually carries.
func describeSet(ws models.WorkoutSet) string {
	var parts []string
	if ws.Sets != nil {
		parts = append(parts, fmt.Sprintf("%dx", *ws.Sets))
	}
	if ws.DistanceM != nil {
		parts = append(parts, fmt.Sprintf("%gm", *ws.DistanceM))
	}
	if ws.TimeS != nil {
		parts = append(parts, fmt.Sprintf("%.2fs", *ws.TimeS))
	}
	if ws.WeightKg != nil {
		parts = append(parts, fmt.Sprintf("%.1fkg", *ws.WeightKg))
	}
	if ws.Reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *ws.Reps))
	}
	if ws.RecoveryS != nil {
		parts = append(parts, fmt.Sprintf("r%.0fs", *ws.RecoveryS))
	}
	return strings.Join(parts, " ")
}

func parseRange(since, until string) (time.Time, time.Time, error) {
	var start, end time.Time
	if since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return start, end, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", since)
		}
		start = t
	}
	if until != "" {
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return start, end, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", until)
		}
		end = t
	}
	return start, end, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	sessionsListCmd.Flags().StringVar(&sessionsSince, "since", "", "only sessions on or after this date (YYYY-MM-DD)")
	sessionsListCmd.Flags().StringVar(&sessionsUntil, "until", "", "only sessions on or before this date (YYYY-MM-DD)")
	sessionsListCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "max number of results")

	sessionsEditCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	sessionsEditCmd.Flags().StringVar(&editType, "type", "", "new session type")
	sessionsEditCmd.Flags().Float64Var(&editRPE, "rpe", 0, "new RPE (1-10)")
	sessionsEditCmd.Flags().StringVar(&editNotes, "notes", "", "new notes")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsEditCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
