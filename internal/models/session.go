// ABOUTME: Session, WorkoutGroup and WorkoutSet models for training data.
// ABOUTME: A session owns its groups and sets; all analytics read from sets.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionType classifies a training session.
type SessionType string

const (
	SessionTrack SessionType = "track"
	SessionGym   SessionType = "gym"
	SessionRoad  SessionType = "road"
	SessionRace  SessionType = "race"
	SessionTest  SessionType = "test"
	SessionOther SessionType = "other"
)

// AllSessionTypes returns all valid session types.
var AllSessionTypes = []SessionType{
	SessionTrack, SessionGym, SessionRoad, SessionRace, SessionTest, SessionOther,
}

// IsValidSessionType checks if a string is a valid session type.
func IsValidSessionType(s string) bool {
	for _, st := range AllSessionTypes {
		if string(st) == s {
			return true
		}
	}
	return false
}

// SetCategory classifies the atomic performance unit inside a group.
type SetCategory string

const (
	CategorySprint    SetCategory = "sprint"
	CategoryJump      SetCategory = "jump"
	CategoryLift      SetCategory = "lift"
	CategoryEndurance SetCategory = "endurance"
	CategoryDrill     SetCategory = "drill"
	CategoryMobility  SetCategory = "mobility"
	CategoryOther     SetCategory = "other"
)

// Session represents one logged workout.
type Session struct {
	ID        uuid.UUID      `json:"id" yaml:"id"`
	Date      time.Time      `json:"date" yaml:"date"`
	Type      SessionType    `json:"type" yaml:"type"`
	Title     string         `json:"title" yaml:"title"`
	RPE       *float64       `json:"rpe,omitempty" yaml:"rpe,omitempty"` // 1-10 perceived exertion
	Notes     *string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"updated_at"`
	Groups    []WorkoutGroup `json:"groups,omitempty" yaml:"groups,omitempty"` // Populated when fetching full session
}

// NewSession creates a new Session with generated UUID and current timestamps.
func NewSession(date time.Time, sessionType SessionType) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Date:      date,
		Type:      sessionType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithTitle sets the session title.
func (s *Session) WithTitle(title string) *Session {
	s.Title = title
	return s
}

// WithRPE sets the perceived exertion.
func (s *Session) WithRPE(rpe float64) *Session {
	s.RPE = &rpe
	return s
}

// WithNotes sets notes on the session.
func (s *Session) WithNotes(notes string) *Session {
	s.Notes = &notes
	return s
}

// SessionPatch carries optional metadata updates. Nil fields are untouched.
type SessionPatch struct {
	Title *string
	Type  *SessionType
	RPE   *float64
	Notes *string
}

// WorkoutGroup is a named block of sets within a session.
type WorkoutGroup struct {
	ID         uuid.UUID    `json:"id" yaml:"id"`
	SessionID  uuid.UUID    `json:"session_id" yaml:"session_id"`
	Name       string       `json:"name" yaml:"name"`
	OrderIndex int          `json:"order_index" yaml:"order_index"`
	Notes      *string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Sets       []WorkoutSet `json:"sets,omitempty" yaml:"sets,omitempty"`
}

// NewWorkoutGroup creates a new WorkoutGroup belonging to a session.
func NewWorkoutGroup(sessionID uuid.UUID, name string, orderIndex int) *WorkoutGroup {
	return &WorkoutGroup{
		ID:         uuid.New(),
		SessionID:  sessionID,
		Name:       name,
		OrderIndex: orderIndex,
	}
}

// WorkoutSet is the atomic performance unit. Absent measurements stay nil,
// never zero, so comparisons cannot mistake missing data for a result.
type WorkoutSet struct {
	ID           uuid.UUID   `json:"id" yaml:"id"`
	GroupID      uuid.UUID   `json:"group_id" yaml:"group_id"`
	ExerciseName string      `json:"exercise_name" yaml:"exercise_name"`
	Category     SetCategory `json:"category" yaml:"category"`
	Sets         *int        `json:"sets,omitempty" yaml:"sets,omitempty"`
	Reps         *int        `json:"reps,omitempty" yaml:"reps,omitempty"`
	WeightKg     *float64    `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	DistanceM    *float64    `json:"distance_m,omitempty" yaml:"distance_m,omitempty"`
	TimeS        *float64    `json:"time_s,omitempty" yaml:"time_s,omitempty"`
	RecoveryS    *float64    `json:"recovery_s,omitempty" yaml:"recovery_s,omitempty"`
	Notes        *string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewWorkoutSet creates a new WorkoutSet within a group.
func NewWorkoutSet(groupID uuid.UUID, exerciseName string, category SetCategory) *WorkoutSet {
	return &WorkoutSet{
		ID:           uuid.New(),
		GroupID:      groupID,
		ExerciseName: exerciseName,
		Category:     category,
	}
}

// WithDistance sets distance in meters.
func (ws *WorkoutSet) WithDistance(m float64) *WorkoutSet {
	ws.DistanceM = &m
	return ws
}

// WithTime sets time in seconds.
func (ws *WorkoutSet) WithTime(s float64) *WorkoutSet {
	ws.TimeS = &s
	return ws
}

// WithWeight sets load in kilograms.
func (ws *WorkoutSet) WithWeight(kg float64) *WorkoutSet {
	ws.WeightKg = &kg
	return ws
}

// WithReps sets the rep count.
func (ws *WorkoutSet) WithReps(reps int) *WorkoutSet {
	ws.Reps = &reps
	return ws
}

// WithSets sets the set count.
func (ws *WorkoutSet) WithSets(sets int) *WorkoutSet {
	ws.Sets = &sets
	return ws
}
