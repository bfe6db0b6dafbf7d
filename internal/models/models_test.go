// ABOUTME: Tests for model constructors, record keys and comparable values.
// ABOUTME: Key/Value feed the PB ledger's ordering, so their shape matters.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRecordKey(t *testing.T) {
	sessionID := uuid.New()
	date := time.Now()

	race := NewRaceRecord(sessionID, date, 100, 11.2)
	if race.Key() != "100m" {
		t.Errorf("race key = %q, want 100m", race.Key())
	}
	race60 := NewRaceRecord(sessionID, date, 60.5, 7.1)
	if race60.Key() != "60.5m" {
		t.Errorf("fractional distance key = %q, want 60.5m", race60.Key())
	}

	strength := NewStrengthRecord(sessionID, date, "squat", 120, 3)
	if strength.Key() != "squat" {
		t.Errorf("strength key = %q, want squat", strength.Key())
	}

	training := NewTrainingRecord(sessionID, date, "broad jump", "jump", 3.1, "meters")
	if training.Key() != "broad jump" {
		t.Errorf("training key = %q, want broad jump", training.Key())
	}
}

func TestRecordValue(t *testing.T) {
	sessionID := uuid.New()
	date := time.Now()

	if v, ok := NewRaceRecord(sessionID, date, 100, 11.2).Value(); !ok || v != 11.2 {
		t.Errorf("race value = %v, %v", v, ok)
	}
	if v, ok := NewStrengthRecord(sessionID, date, "squat", 120, 3).Value(); !ok || v != 120 {
		t.Errorf("strength value = %v, %v", v, ok)
	}
	if v, ok := NewTrainingRecord(sessionID, date, "jump", "jump", 3.1, "meters").Value(); !ok || v != 3.1 {
		t.Errorf("training value = %v, %v", v, ok)
	}

	empty := &PerformanceRecord{Category: RecordRace}
	if _, ok := empty.Value(); ok {
		t.Error("record without a measurement must report no value")
	}
}

func TestSessionBuilders(t *testing.T) {
	s := NewSession(time.Now(), SessionTrack)
	s.WithTitle("speed").WithRPE(8).WithNotes("windy")

	if s.Title != "speed" || s.RPE == nil || *s.RPE != 8 || s.Notes == nil || *s.Notes != "windy" {
		t.Errorf("builders did not apply: %+v", s)
	}
	if s.ID == uuid.Nil {
		t.Error("session must get an ID")
	}
}

func TestIsValidSessionType(t *testing.T) {
	for _, valid := range []string{"track", "gym", "road", "race", "test", "other"} {
		if !IsValidSessionType(valid) {
			t.Errorf("%q should be valid", valid)
		}
	}
	if IsValidSessionType("swim") {
		t.Error("swim is not a session type")
	}
}

func TestInjuryLifecycle(t *testing.T) {
	inj := NewInjuryRecord("strain", "hamstring", SeverityModerate, time.Now())
	if !inj.Active() {
		t.Error("new injury must be active")
	}
	inj.Resolve(time.Now())
	if inj.Active() {
		t.Error("resolved injury must be inactive")
	}
}
