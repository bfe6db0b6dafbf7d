// ABOUTME: InjuryRecord model for the injury history table.
// ABOUTME: Created on detection, resolved by setting an end date.
package models

import (
	"time"

	"github.com/google/uuid"
)

// InjurySeverity grades an injury.
type InjurySeverity string

const (
	SeverityMinor    InjurySeverity = "minor"
	SeverityModerate InjurySeverity = "moderate"
	SeveritySevere   InjurySeverity = "severe"
)

// InjuryRecord tracks one injury from onset until resolution.
type InjuryRecord struct {
	ID             uuid.UUID      `json:"id" yaml:"id"`
	InjuryType     string         `json:"injury_type" yaml:"injury_type"`
	BodyPart       string         `json:"body_part" yaml:"body_part"`
	StartDate      time.Time      `json:"start_date" yaml:"start_date"`
	EndDate        *time.Time     `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Severity       InjurySeverity `json:"severity" yaml:"severity"`
	CauseSessionID *uuid.UUID     `json:"cause_session_id,omitempty" yaml:"cause_session_id,omitempty"`
	Notes          *string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" yaml:"updated_at"`
}

// NewInjuryRecord creates an injury starting at the given date.
func NewInjuryRecord(injuryType, bodyPart string, severity InjurySeverity, startDate time.Time) *InjuryRecord {
	now := time.Now()
	return &InjuryRecord{
		ID:         uuid.New(),
		InjuryType: injuryType,
		BodyPart:   bodyPart,
		Severity:   severity,
		StartDate:  startDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// WithCauseSession links the session during which the injury occurred.
func (i *InjuryRecord) WithCauseSession(sessionID uuid.UUID) *InjuryRecord {
	i.CauseSessionID = &sessionID
	return i
}

// WithNotes sets notes on the injury.
func (i *InjuryRecord) WithNotes(notes string) *InjuryRecord {
	i.Notes = &notes
	return i
}

// Active reports whether the injury has no end date yet.
func (i *InjuryRecord) Active() bool {
	return i.EndDate == nil
}

// Resolve closes the injury at the given date.
func (i *InjuryRecord) Resolve(endDate time.Time) {
	i.EndDate = &endDate
	i.UpdatedAt = time.Now()
}
