// ABOUTME: Tests for the plausibility checks: world-record floors and
// ABOUTME: deviation from the athlete's own strength PBs.
package anomaly

import (
	"strings"
	"testing"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

func set(name string, category models.SetCategory) models.WorkoutSet {
	return *models.NewWorkoutSet(uuid.New(), name, category)
}

func testDate() time.Time {
	return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
}

func TestImpossibleTime(t *testing.T) {
	ws := set("100m", models.CategorySprint)
	ws.WithDistance(100).WithTime(9.2)

	warnings := CheckSet(ws, Snapshot{})
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	w := warnings[0]
	if w.Type != "impossible_time" || w.Field != "time_s" || w.Value != 9.2 {
		t.Errorf("warning shape wrong: %+v", w)
	}
	if !strings.Contains(w.Message, "9.58") {
		t.Errorf("message should reference the record time: %q", w.Message)
	}
}

func TestPlausibleTimeNotFlagged(t *testing.T) {
	ws := set("100m", models.CategorySprint)
	ws.WithDistance(100).WithTime(10.8)
	if warnings := CheckSet(ws, Snapshot{}); len(warnings) != 0 {
		t.Errorf("plausible time flagged: %+v", warnings)
	}

	// Just inside the margin under the record is still allowed.
	ws.WithTime(9.55)
	if warnings := CheckSet(ws, Snapshot{}); len(warnings) != 0 {
		t.Errorf("time inside the margin flagged: %+v", warnings)
	}
}

func TestUnknownDistanceNotFlagged(t *testing.T) {
	ws := set("flying 120", models.CategorySprint)
	ws.WithDistance(120).WithTime(3.0)
	if warnings := CheckSet(ws, Snapshot{}); len(warnings) != 0 {
		t.Errorf("distance without a record floor flagged: %+v", warnings)
	}
}

func TestUnusualLoad(t *testing.T) {
	snap := Snapshot{StrengthBests: map[string]float64{"squat": 120}}

	ws := set("squat", models.CategoryLift)
	ws.WithWeight(200) // +67% over the PB

	warnings := CheckSet(ws, snap)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	w := warnings[0]
	if w.Type != "unusual_load" || w.Field != "weight_kg" {
		t.Errorf("warning shape wrong: %+v", w)
	}
	if !strings.Contains(w.Message, "+67%") {
		t.Errorf("message should carry the deviation percentage: %q", w.Message)
	}
}

func TestLoadWithinThresholdNotFlagged(t *testing.T) {
	snap := Snapshot{StrengthBests: map[string]float64{"squat": 120}}

	ws := set("squat", models.CategoryLift)
	ws.WithWeight(130) // a PB attempt, but believable
	if warnings := CheckSet(ws, snap); len(warnings) != 0 {
		t.Errorf("believable PB attempt flagged: %+v", warnings)
	}

	// No PB on file means nothing to compare against.
	unknown := set("deadlift", models.CategoryLift)
	unknown.WithWeight(300)
	if warnings := CheckSet(unknown, snap); len(warnings) != 0 {
		t.Errorf("exercise without a PB flagged: %+v", warnings)
	}
}

func TestCheckSetNilSafety(t *testing.T) {
	ws := set("drill", models.CategoryDrill)
	if warnings := CheckSet(ws, Snapshot{}); len(warnings) != 0 {
		t.Errorf("set without measurements flagged: %+v", warnings)
	}
}

func TestCheckSessionCollectsAllWarnings(t *testing.T) {
	s := models.NewSession(testDate(), models.SessionTrack)
	g := models.NewWorkoutGroup(s.ID, "main", 0)

	fast := set("100m", models.CategorySprint)
	fast.WithDistance(100).WithTime(9.0)
	heavy := set("squat", models.CategoryLift)
	heavy.WithWeight(250)
	g.Sets = append(g.Sets, fast, heavy)
	s.Groups = append(s.Groups, *g)

	snap := Snapshot{StrengthBests: map[string]float64{"squat": 120}}
	warnings := CheckSession(*s, snap)
	if len(warnings) != 2 {
		t.Errorf("warnings = %d, want 2", len(warnings))
	}
}
