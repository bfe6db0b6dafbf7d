// ABOUTME: Plausibility checks on incoming performances: world-record floors
// ABOUTME: and deviation from the athlete's own PBs. Advisory only.
package anomaly

import (
	"fmt"
	"math"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
)

// Warning flags a suspicious value. Warnings never block a save: capturing
// the data plus a flag beats silently rejecting user input.
type Warning struct {
	Type     string  `json:"type"`
	Field    string  `json:"field"`
	Value    float64 `json:"value"`
	Exercise string  `json:"exercise"`
	Message  string  `json:"message"`
}

// worldRecords maps sprint distances to the reference record time. A logged
// time under the plausibility floor (record minus a small margin) is almost
// certainly a typo or a mis-heard distance.
var worldRecords = map[float64]float64{
	60:  6.34,
	100: 9.58,
	150: 14.35,
	200: 19.19,
	300: 30.81,
	400: 43.03,
}

const (
	recordMargin  = 0.08 // seconds under the record still flagged
	loadThreshold = 1.5  // multiple of the strength PB that flags a lift
)

// Snapshot is the athlete's current bests, fetched once per operation and
// passed in explicitly so the detector carries no hidden cross-request state.
type Snapshot struct {
	// StrengthBests maps normalized exercise name to current PB weight (kg).
	StrengthBests map[string]float64
}

// CheckSet validates one normalized workout set against the snapshot.
func CheckSet(ws models.WorkoutSet, snap Snapshot) []Warning {
	var warnings []Warning

	if ws.DistanceM != nil && ws.TimeS != nil {
		if record, ok := worldRecords[*ws.DistanceM]; ok && *ws.TimeS < record-recordMargin {
			warnings = append(warnings, Warning{
				Type:     "impossible_time",
				Field:    "time_s",
				Value:    *ws.TimeS,
				Exercise: ws.ExerciseName,
				Message: fmt.Sprintf(
					"%.0fm in %.2fs is under the world record (%.2fs). Did you mean %.0fm or %.2fs?",
					*ws.DistanceM, *ws.TimeS, record, *ws.DistanceM/2, *ws.TimeS+10),
			})
		}
	}

	if ws.WeightKg != nil {
		if best, ok := snap.StrengthBests[ws.ExerciseName]; ok && best > 0 && *ws.WeightKg > best*loadThreshold {
			pct := math.Round((*ws.WeightKg/best - 1) * 100)
			warnings = append(warnings, Warning{
				Type:     "unusual_load",
				Field:    "weight_kg",
				Value:    *ws.WeightKg,
				Exercise: ws.ExerciseName,
				Message: fmt.Sprintf(
					"%s at %.1fkg is +%.0f%% over your PB (%.1fkg). Double-check the value.",
					ws.ExerciseName, *ws.WeightKg, pct, best),
			})
		}
	}

	return warnings
}

// CheckSession runs CheckSet over every set of a session.
func CheckSession(s models.Session, snap Snapshot) []Warning {
	var warnings []Warning
	for _, g := range s.Groups {
		for _, ws := range g.Sets {
			warnings = append(warnings, CheckSet(ws, snap)...)
		}
	}
	return warnings
}
