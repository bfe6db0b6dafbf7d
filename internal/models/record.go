// ABOUTME: PerformanceRecord model shared by race, strength and training PBs.
// ABOUTME: The PB ledger owns the is_personal_best flag lifecycle.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordCategory separates the three PB families.
type RecordCategory string

const (
	RecordRace     RecordCategory = "race"
	RecordStrength RecordCategory = "strength"
	RecordTraining RecordCategory = "training"
)

// IsValidRecordCategory checks if a string is a valid record category.
func IsValidRecordCategory(s string) bool {
	switch RecordCategory(s) {
	case RecordRace, RecordStrength, RecordTraining:
		return true
	}
	return false
}

// PerformanceRecord is one recorded performance in a PB category. The three
// categories share the shape; category-specific fields stay nil for the
// others. Key and Value feed the ledger's ordering.
type PerformanceRecord struct {
	ID        uuid.UUID      `json:"id" yaml:"id"`
	SessionID uuid.UUID      `json:"session_id" yaml:"session_id"`
	Category  RecordCategory `json:"category" yaml:"category"`
	Date      time.Time      `json:"date" yaml:"date"`

	// race
	DistanceM *float64 `json:"distance_m,omitempty" yaml:"distance_m,omitempty"`
	TimeS     *float64 `json:"time_s,omitempty" yaml:"time_s,omitempty"`

	// strength
	ExerciseName     string   `json:"exercise_name,omitempty" yaml:"exercise_name,omitempty"`
	ExerciseCategory string   `json:"exercise_category,omitempty" yaml:"exercise_category,omitempty"`
	WeightKg         *float64 `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	Reps             *int     `json:"reps,omitempty" yaml:"reps,omitempty"`

	// training
	ExerciseType     string   `json:"exercise_type,omitempty" yaml:"exercise_type,omitempty"`
	PerformanceValue *float64 `json:"performance_value,omitempty" yaml:"performance_value,omitempty"`
	PerformanceUnit  string   `json:"performance_unit,omitempty" yaml:"performance_unit,omitempty"`

	IsPersonalBest bool      `json:"is_personal_best" yaml:"is_personal_best"`
	Notes          *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// NewRaceRecord creates a race performance (time over a distance).
func NewRaceRecord(sessionID uuid.UUID, date time.Time, distanceM, timeS float64) *PerformanceRecord {
	return &PerformanceRecord{
		ID:        uuid.New(),
		SessionID: sessionID,
		Category:  RecordRace,
		Date:      date,
		DistanceM: &distanceM,
		TimeS:     &timeS,
		CreatedAt: time.Now(),
	}
}

// NewStrengthRecord creates a strength performance (load for an exercise).
func NewStrengthRecord(sessionID uuid.UUID, date time.Time, exerciseName string, weightKg float64, reps int) *PerformanceRecord {
	return &PerformanceRecord{
		ID:           uuid.New(),
		SessionID:    sessionID,
		Category:     RecordStrength,
		Date:         date,
		ExerciseName: exerciseName,
		WeightKg:     &weightKg,
		Reps:         &reps,
		CreatedAt:    time.Now(),
	}
}

// NewTrainingRecord creates a training performance (timed drill, jump, etc.).
func NewTrainingRecord(sessionID uuid.UUID, date time.Time, exerciseName, exerciseType string, value float64, unit string) *PerformanceRecord {
	return &PerformanceRecord{
		ID:               uuid.New(),
		SessionID:        sessionID,
		Category:         RecordTraining,
		Date:             date,
		ExerciseName:     exerciseName,
		ExerciseType:     exerciseType,
		PerformanceValue: &value,
		PerformanceUnit:  unit,
		CreatedAt:        time.Now(),
	}
}

// WithNotes sets notes on the record.
func (r *PerformanceRecord) WithNotes(notes string) *PerformanceRecord {
	r.Notes = &notes
	return r
}

// Key returns the identity under which PBs for this record are grouped:
// the distance for race records, the exercise name otherwise. The caller is
// expected to have normalized the exercise name first.
func (r *PerformanceRecord) Key() string {
	if r.Category == RecordRace && r.DistanceM != nil {
		return fmt.Sprintf("%gm", *r.DistanceM)
	}
	return r.ExerciseName
}

// Value returns the comparable performance value, or false when the record
// carries no measurement for its category.
func (r *PerformanceRecord) Value() (float64, bool) {
	switch r.Category {
	case RecordRace:
		if r.TimeS == nil {
			return 0, false
		}
		return *r.TimeS, true
	case RecordStrength:
		if r.WeightKg == nil {
			return 0, false
		}
		return *r.WeightKg, true
	case RecordTraining:
		if r.PerformanceValue == nil {
			return 0, false
		}
		return *r.PerformanceValue, true
	}
	return 0, false
}
