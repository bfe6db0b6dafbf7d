// ABOUTME: Tests for name, unit and value normalization.
// ABOUTME: Covers idempotence and the missing-is-not-zero rule.
package normalize

import (
	"math"
	"testing"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

func TestExerciseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Back Squat ", "back squat"},
		{"Sprint (blocks)", "sprint"},
		{"Power   Clean", "power clean"},
		{"100m (wind +1.2)", "100m"},
		{"back squat", "back squat"},
	}
	for _, tt := range tests {
		if got := ExerciseName(tt.in); got != tt.want {
			t.Errorf("ExerciseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExerciseNameIdempotent(t *testing.T) {
	once := ExerciseName("Back Squat (belt)")
	twice := ExerciseName(once)
	if once != twice {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
}

func TestValueRejectsBadNumbers(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	neg := -5.0
	zero := 0.0
	good := 11.2

	if Value(&nan) != nil {
		t.Error("NaN should be treated as absent")
	}
	if Value(&inf) != nil {
		t.Error("Inf should be treated as absent")
	}
	if Value(&neg) != nil {
		t.Error("negative should be treated as absent")
	}
	if Value(&zero) != nil {
		t.Error("zero should be treated as absent")
	}
	if Value(nil) != nil {
		t.Error("nil should stay nil")
	}
	if v := Value(&good); v == nil || *v != 11.2 {
		t.Errorf("valid value mangled: %v", v)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"11.20", 11.20, true},
		{"4:05.3", 245.3, true},
		{"0:52", 52, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseTime(tt.in)
		if ok != tt.ok || (ok && math.Abs(got-tt.want) > 1e-9) {
			t.Errorf("ParseTime(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"60m", 60, true},
		{"5km", 5000, true},
		{"1.5km", 1500, true},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDistance(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseDistance(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseWeight(t *testing.T) {
	got, ok := ParseWeight("225lb")
	if !ok || math.Abs(got-102.058) > 0.01 {
		t.Errorf("ParseWeight(225lb) = %v, %v", got, ok)
	}
	got, ok = ParseWeight("120kg")
	if !ok || got != 120 {
		t.Errorf("ParseWeight(120kg) = %v, %v", got, ok)
	}
}

func TestSetIdempotent(t *testing.T) {
	badTime := math.NaN()
	dist := 100.0
	ws := models.WorkoutSet{
		ID:           uuid.New(),
		ExerciseName: "Sprint (blocks)",
		Category:     models.CategorySprint,
		DistanceM:    &dist,
		TimeS:        &badTime,
	}

	once := Set(ws)
	if once.ExerciseName != "sprint" {
		t.Errorf("name not normalized: %q", once.ExerciseName)
	}
	if once.TimeS != nil {
		t.Error("NaN time should become nil")
	}
	if once.DistanceM == nil || *once.DistanceM != 100 {
		t.Error("valid distance should survive")
	}

	twice := Set(once)
	if twice.ExerciseName != once.ExerciseName || twice.TimeS != nil ||
		*twice.DistanceM != *once.DistanceM {
		t.Error("normalize(normalize(x)) != normalize(x)")
	}
}

func TestSetDefaultsCategory(t *testing.T) {
	ws := Set(models.WorkoutSet{ExerciseName: "tempo run"})
	if ws.Category != models.CategoryOther {
		t.Errorf("empty category should default to other, got %q", ws.Category)
	}
}
