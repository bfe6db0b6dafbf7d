// ABOUTME: Tests for the KPI summary and the training streak.
// ABOUTME: Streak counts consecutive unique days back from the latest session.
package progression

import (
	"testing"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

func session(daysAgo int, sessionType models.SessionType, rpe *float64) models.Session {
	s := models.NewSession(now.AddDate(0, 0, -daysAgo), sessionType)
	s.RPE = rpe
	return *s
}

func rpe(v float64) *float64 { return &v }

func TestKPIs(t *testing.T) {
	sessions := []models.Session{
		session(0, models.SessionTrack, rpe(8)),
		session(1, models.SessionGym, rpe(6)),
		session(2, models.SessionTrack, nil), // no RPE, excluded from the average
	}

	// One session carries sprint volume and a lift.
	g := models.NewWorkoutGroup(sessions[0].ID, "main", 0)
	sprint := models.NewWorkoutSet(g.ID, "sprint", models.CategorySprint)
	sprint.WithDistance(150).WithSets(4) // 600m
	lift := models.NewWorkoutSet(g.ID, "squat", models.CategoryLift)
	lift.WithWeight(100).WithReps(5).WithSets(3) // 1500kg
	g.Sets = append(g.Sets, *sprint, *lift)
	sessions[0].Groups = append(sessions[0].Groups, *g)

	pb := *models.NewRaceRecord(uuid.New(), now, 100, 11.2)
	pb.IsPersonalBest = true
	notPB := *models.NewRaceRecord(uuid.New(), now, 100, 11.5)
	records := []models.PerformanceRecord{pb, notPB}

	kpis := KPIs(sessions, records)
	if kpis.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", kpis.TotalSessions)
	}
	if kpis.AvgRPE == nil || *kpis.AvgRPE != 7 {
		t.Errorf("AvgRPE = %v, want 7", kpis.AvgRPE)
	}
	if kpis.PBCount != 1 {
		t.Errorf("PBCount = %d, want 1", kpis.PBCount)
	}
	if kpis.TypeDistribution["track"] != 2 || kpis.TypeDistribution["gym"] != 1 {
		t.Errorf("TypeDistribution = %v", kpis.TypeDistribution)
	}
	if kpis.TotalDistanceKm != 0.6 {
		t.Errorf("TotalDistanceKm = %v, want 0.6", kpis.TotalDistanceKm)
	}
	if kpis.TotalWeightKg != 1500 {
		t.Errorf("TotalWeightKg = %v, want 1500", kpis.TotalWeightKg)
	}
	if kpis.Streak != 3 {
		t.Errorf("Streak = %d, want 3", kpis.Streak)
	}
}

func TestKPIsEmpty(t *testing.T) {
	kpis := KPIs(nil, nil)
	if kpis.TotalSessions != 0 || kpis.AvgRPE != nil || kpis.Streak != 0 {
		t.Errorf("empty KPIs = %+v", kpis)
	}
}

func TestStreakBreaksOnGap(t *testing.T) {
	sessions := []models.Session{
		session(0, models.SessionTrack, nil),
		session(1, models.SessionTrack, nil),
		session(3, models.SessionTrack, nil), // gap at day 2
		session(4, models.SessionTrack, nil),
	}
	if got := Streak(sessions); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}

func TestStreakSameDayCountsOnce(t *testing.T) {
	sessions := []models.Session{
		session(0, models.SessionTrack, nil),
		session(0, models.SessionGym, nil),
	}
	if got := Streak(sessions); got != 1 {
		t.Errorf("Streak = %d, want 1", got)
	}
}
