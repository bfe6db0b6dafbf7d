// ABOUTME: Candidate input types: the structured session document produced
// ABOUTME: upstream (LLM extraction, CLI flags) before validation and saving.
package engine

// Candidate is a parsed session submission: the session itself, its workout
// groups, any claimed personal bests and any reported injuries.
type Candidate struct {
	Session       SessionInput   `json:"session"`
	Groups        []GroupInput   `json:"groups,omitempty"`
	PersonalBests []RecordInput  `json:"personal_bests,omitempty"`
	Injuries      []InjuryInput  `json:"injuries,omitempty"`
}

// SessionInput is the session header of a candidate.
type SessionInput struct {
	Date  string   `json:"date"` // YYYY-MM-DD
	Type  string   `json:"type"`
	Title string   `json:"title,omitempty"`
	RPE   *float64 `json:"rpe,omitempty"`
	Notes *string  `json:"notes,omitempty"`
}

// GroupInput is one workout group of a candidate.
type GroupInput struct {
	Name       string     `json:"name"`
	OrderIndex int        `json:"order_index"`
	Notes      *string    `json:"notes,omitempty"`
	Sets       []SetInput `json:"sets,omitempty"`
}

// SetInput is one workout set of a candidate. Optional measurements stay nil.
type SetInput struct {
	ExerciseName string   `json:"exercise_name"`
	Category     string   `json:"category"`
	Sets         *int     `json:"sets,omitempty"`
	Reps         *int     `json:"reps,omitempty"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	DistanceM    *float64 `json:"distance_m,omitempty"`
	TimeS        *float64 `json:"time_s,omitempty"`
	RecoveryS    *float64 `json:"recovery_s,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// RecordInput is a claimed personal best attached to a candidate. Type picks
// the category; the other fields that apply depend on it.
type RecordInput struct {
	Type string `json:"type"` // race, strength or training

	// race
	DistanceM *float64 `json:"distance_m,omitempty"`
	TimeS     *float64 `json:"time_s,omitempty"`

	// strength
	ExerciseName     string   `json:"exercise_name,omitempty"`
	ExerciseCategory string   `json:"exercise_category,omitempty"`
	WeightKg         *float64 `json:"weight_kg,omitempty"`
	Reps             *int     `json:"reps,omitempty"`

	// training
	ExerciseType     string   `json:"exercise_type,omitempty"`
	PerformanceValue *float64 `json:"performance_value,omitempty"`
	PerformanceUnit  string   `json:"performance_unit,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// InjuryInput is a reported injury attached to a candidate.
type InjuryInput struct {
	InjuryType string  `json:"injury_type"`
	BodyPart   string  `json:"body_part"`
	Severity   string  `json:"severity"`
	Notes      *string `json:"notes,omitempty"`
}
