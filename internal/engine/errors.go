// ABOUTME: Error taxonomy for session saves: validation, conflict,
// ABOUTME: store-unavailable and partial-save failures.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GiovanniJ17/tracker-velocista/internal/ledger"
	"github.com/GiovanniJ17/tracker-velocista/internal/storage"
)

// ValidationError rejects a malformed candidate before any write begins.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StepError records a failure of one step of the save pipeline.
type StepError struct {
	Step string `json:"step"` // e.g. "record race/100m", "injury hamstring"
	Err  error  `json:"-"`
}

func (e StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// PartialSaveError means the session itself persisted but one or more derived
// writes (PB records, injuries) failed. The session is not rolled back;
// callers inspect Steps to decide what to retry.
type PartialSaveError struct {
	SessionID string
	Steps     []StepError
}

func (e *PartialSaveError) Error() string {
	parts := make([]string, len(e.Steps))
	for i, s := range e.Steps {
		parts[i] = s.Error()
	}
	return fmt.Sprintf("session %s saved with %d failed step(s): %s",
		e.SessionID, len(e.Steps), strings.Join(parts, "; "))
}

// IsConflict reports whether err is a lost PB-ledger race.
func IsConflict(err error) bool {
	return errors.Is(err, ledger.ErrConflict)
}

// IsStoreUnavailable reports whether err is a store outage rather than bad data.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, storage.ErrUnavailable)
}
