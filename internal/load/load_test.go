// ABOUTME: Tests for the training load model: stress scoring, the daily
// ABOUTME: series, the EMA recurrence and the TSB one-day lag.
package load

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
)

func day(offset int) time.Time {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func sprintSession(date time.Time, distance float64, sets int, rpe float64) models.Session {
	s := models.NewSession(date, models.SessionTrack)
	s.RPE = &rpe
	g := models.NewWorkoutGroup(s.ID, "sprints", 0)
	ws := models.NewWorkoutSet(g.ID, "sprint", models.CategorySprint)
	ws.WithDistance(distance).WithSets(sets)
	g.Sets = append(g.Sets, *ws)
	s.Groups = append(s.Groups, *g)
	return *s
}

func TestSprintRelevant(t *testing.T) {
	track := models.NewSession(day(0), models.SessionTrack)
	if !SprintRelevant(*track) {
		t.Error("track sessions are always sprint-relevant")
	}

	gym := models.NewSession(day(0), models.SessionGym)
	if SprintRelevant(*gym) {
		t.Error("a plain gym session is not sprint-relevant")
	}

	// A gym session with a jump set counts.
	g := models.NewWorkoutGroup(gym.ID, "plyos", 0)
	ws := models.NewWorkoutSet(g.ID, "broad jump", models.CategoryJump)
	g.Sets = append(g.Sets, *ws)
	gym.Groups = append(gym.Groups, *g)
	if !SprintRelevant(*gym) {
		t.Error("a jump set makes the session sprint-relevant")
	}
}

func TestStress(t *testing.T) {
	// 6 x 100m at RPE 8: 600/100 * 8 = 48.
	s := sprintSession(day(0), 100, 6, 8)
	if got := Stress(s); got != 48 {
		t.Errorf("Stress = %v, want 48", got)
	}

	// Without an RPE the default of 5 applies.
	s2 := sprintSession(day(0), 100, 6, 8)
	s2.RPE = nil
	if got := Stress(s2); got != 30 {
		t.Errorf("Stress without RPE = %v, want 30", got)
	}

	// Lift sets contribute no sprint volume.
	gym := models.NewSession(day(0), models.SessionGym)
	g := models.NewWorkoutGroup(gym.ID, "lifts", 0)
	ws := models.NewWorkoutSet(g.ID, "squat", models.CategoryLift)
	ws.WithWeight(120).WithReps(3)
	g.Sets = append(g.Sets, *ws)
	gym.Groups = append(gym.Groups, *g)
	if got := Stress(*gym); got != 0 {
		t.Errorf("gym-only stress = %v, want 0", got)
	}
}

func TestComputeInsufficientData(t *testing.T) {
	if _, err := Compute(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("empty history: err = %v", err)
	}

	// Three days of data span less than seven calendar days.
	sessions := []models.Session{
		sprintSession(day(0), 100, 4, 6),
		sprintSession(day(1), 100, 4, 6),
		sprintSession(day(2), 100, 4, 6),
	}
	if _, err := Compute(sessions); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("short span: err = %v", err)
	}
}

func TestComputeSeries(t *testing.T) {
	sessions := []models.Session{
		sprintSession(day(0), 100, 5, 8), // stress 40
		sprintSession(day(3), 150, 4, 7), // stress 42
		sprintSession(day(9), 100, 6, 9), // stress 54
	}

	result, err := Compute(sessions)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// Continuous daily series from first to last relevant date.
	if len(result.Series) != 10 {
		t.Fatalf("series length = %d, want 10", len(result.Series))
	}
	if result.Series[1].Stress != 0 || result.Series[4].Stress != 0 {
		t.Error("gap days must carry zero stress")
	}
	if result.Series[3].Stress != 42 {
		t.Errorf("day 3 stress = %v, want 42", result.Series[3].Stress)
	}

	// Seed: ema[0] = stress[0] for both filters.
	if result.Series[0].ATL != 40 || result.Series[0].CTL != 40 {
		t.Errorf("seed point = ATL %v CTL %v, want 40/40", result.Series[0].ATL, result.Series[0].CTL)
	}

	// Day 1 follows the recurrence with alpha = 1 - exp(-1/tau).
	alphaA := 1 - math.Exp(-1.0/7)
	wantATL := math.Round((0*alphaA+40*(1-alphaA))*10) / 10
	if result.Series[1].ATL != wantATL {
		t.Errorf("day 1 ATL = %v, want %v", result.Series[1].ATL, wantATL)
	}

	// TSB is yesterday's CTL minus yesterday's ATL.
	if result.Series[0].TSB != 0 {
		t.Errorf("first TSB = %v, want 0", result.Series[0].TSB)
	}
	for i := 1; i < len(result.Series); i++ {
		want := math.Round((result.Series[i-1].CTL-result.Series[i-1].ATL)*10) / 10
		if result.Series[i].TSB != want {
			t.Errorf("day %d TSB = %v, want %v", i, result.Series[i].TSB, want)
		}
	}

	last := result.Series[len(result.Series)-1]
	if result.Current.ATL != last.ATL || result.Current.CTL != last.CTL || result.Current.TSB != last.TSB {
		t.Error("current summary must mirror the last series point")
	}
}

func TestComputeMergesSameDay(t *testing.T) {
	sessions := []models.Session{
		sprintSession(day(0), 100, 4, 5), // stress 20
		sprintSession(day(0), 100, 4, 5), // same day, stress adds up
		sprintSession(day(8), 100, 4, 5),
	}
	result, err := Compute(sessions)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Series[0].Stress != 40 {
		t.Errorf("same-day stress = %v, want 40", result.Series[0].Stress)
	}
}
