// ABOUTME: Save pipeline and analytics facades over the store: validate,
// ABOUTME: normalize, persist, run the PB ledger, then compute statistics.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/anomaly"
	"github.com/GiovanniJ17/tracker-velocista/internal/ledger"
	"github.com/GiovanniJ17/tracker-velocista/internal/load"
	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/GiovanniJ17/tracker-velocista/internal/normalize"
	"github.com/GiovanniJ17/tracker-velocista/internal/progression"
	"github.com/GiovanniJ17/tracker-velocista/internal/storage"
)

const dayFormat = "2006-01-02"

// Store is the persistence surface the engine needs.
type Store interface {
	ledger.Store
	CreateSession(ctx context.Context, s *models.Session) error
	ListSessions(ctx context.Context, start, end time.Time) ([]models.Session, error)
	ListRecords(ctx context.Context, filter storage.RecordFilter) ([]models.PerformanceRecord, error)
	StrengthBests(ctx context.Context) (map[string]float64, error)
	AddInjury(ctx context.Context, inj *models.InjuryRecord) error
	ActiveInjuries(ctx context.Context) ([]models.InjuryRecord, error)
}

// Engine runs the save pipeline and the analytics computations.
type Engine struct {
	store  Store
	ledger *ledger.Ledger
}

// New creates an Engine over the given store.
func New(store Store) *Engine {
	return &Engine{
		store:  store,
		ledger: ledger.New(store),
	}
}

// SaveResult reports the outcome of a session save: what persisted, which
// claimed PBs were confirmed and any advisory warnings.
type SaveResult struct {
	Session  *models.Session   `json:"session"`
	NewPBs   []string          `json:"new_pbs,omitempty"` // category/key of confirmed PBs
	Warnings []anomaly.Warning `json:"warnings,omitempty"`
}

// SaveSession validates a candidate, persists the session with its groups and
// sets, commits claimed PBs through the ledger and stores reported injuries.
//
// Order is fixed: session first, then records, then injuries. A failure after
// the session insert does not roll the session back; it surfaces as a
// PartialSaveError listing the failed steps. Anomaly warnings never block.
func (e *Engine) SaveSession(ctx context.Context, cand Candidate) (*SaveResult, error) {
	session, err := buildSession(cand)
	if err != nil {
		return nil, err
	}

	// Snapshot current strength bests before writing anything so the anomaly
	// checks compare against the pre-save state.
	bests, err := e.store.StrengthBests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load strength bests: %w", err)
	}
	warnings := anomaly.CheckSession(*session, anomaly.Snapshot{StrengthBests: bests})

	if err := e.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	result := &SaveResult{Session: session, Warnings: warnings}
	var steps []StepError

	for _, input := range cand.PersonalBests {
		rec, err := buildRecord(session, input)
		if err != nil {
			steps = append(steps, StepError{Step: "record " + input.Type, Err: err})
			continue
		}
		isBest, err := e.ledger.Commit(ctx, rec)
		if err != nil {
			steps = append(steps, StepError{
				Step: fmt.Sprintf("record %s/%s", rec.Category, rec.Key()),
				Err:  err,
			})
			continue
		}
		if isBest {
			result.NewPBs = append(result.NewPBs, fmt.Sprintf("%s/%s", rec.Category, rec.Key()))
		}
	}

	for _, input := range cand.Injuries {
		inj, err := buildInjury(session, input)
		if err != nil {
			steps = append(steps, StepError{Step: "injury " + input.InjuryType, Err: err})
			continue
		}
		if err := e.store.AddInjury(ctx, inj); err != nil {
			steps = append(steps, StepError{Step: "injury " + inj.InjuryType, Err: err})
		}
	}

	if len(steps) > 0 {
		return result, &PartialSaveError{SessionID: session.ID.String(), Steps: steps}
	}
	return result, nil
}

// buildSession validates the candidate header and assembles a normalized
// session tree. Rejection here happens before any write.
func buildSession(cand Candidate) (*models.Session, error) {
	date, err := time.Parse(dayFormat, cand.Session.Date)
	if err != nil {
		return nil, &ValidationError{Field: "session.date", Message: "expected YYYY-MM-DD"}
	}
	if !models.IsValidSessionType(cand.Session.Type) {
		return nil, &ValidationError{Field: "session.type", Message: "unknown session type " + cand.Session.Type}
	}
	if cand.Session.RPE != nil && (*cand.Session.RPE < 1 || *cand.Session.RPE > 10) {
		return nil, &ValidationError{Field: "session.rpe", Message: "must be between 1 and 10"}
	}

	session := models.NewSession(date, models.SessionType(cand.Session.Type))
	session.Title = cand.Session.Title
	session.RPE = cand.Session.RPE
	session.Notes = cand.Session.Notes

	for _, g := range cand.Groups {
		group := models.NewWorkoutGroup(session.ID, g.Name, g.OrderIndex)
		group.Notes = g.Notes
		for _, s := range g.Sets {
			if s.ExerciseName == "" {
				return nil, &ValidationError{Field: "set.exercise_name", Message: "required"}
			}
			ws := models.NewWorkoutSet(group.ID, s.ExerciseName, models.SetCategory(s.Category))
			ws.Sets = s.Sets
			ws.Reps = s.Reps
			ws.WeightKg = s.WeightKg
			ws.DistanceM = s.DistanceM
			ws.TimeS = s.TimeS
			ws.RecoveryS = s.RecoveryS
			ws.Notes = s.Notes
			group.Sets = append(group.Sets, normalize.Set(*ws))
		}
		session.Groups = append(session.Groups, *group)
	}
	return session, nil
}

// buildRecord turns a claimed PB into a normalized performance record.
func buildRecord(session *models.Session, input RecordInput) (*models.PerformanceRecord, error) {
	var rec *models.PerformanceRecord
	switch models.RecordCategory(input.Type) {
	case models.RecordRace:
		if input.DistanceM == nil || input.TimeS == nil {
			return nil, &ValidationError{Field: "personal_bests", Message: "race record needs distance_m and time_s"}
		}
		rec = models.NewRaceRecord(session.ID, session.Date, *input.DistanceM, *input.TimeS)
	case models.RecordStrength:
		if input.ExerciseName == "" || input.WeightKg == nil {
			return nil, &ValidationError{Field: "personal_bests", Message: "strength record needs exercise_name and weight_kg"}
		}
		reps := 1
		if input.Reps != nil {
			reps = *input.Reps
		}
		rec = models.NewStrengthRecord(session.ID, session.Date, input.ExerciseName, *input.WeightKg, reps)
		rec.ExerciseCategory = input.ExerciseCategory
	case models.RecordTraining:
		if input.ExerciseName == "" || input.PerformanceValue == nil {
			return nil, &ValidationError{Field: "personal_bests", Message: "training record needs exercise_name and performance_value"}
		}
		rec = models.NewTrainingRecord(session.ID, session.Date, input.ExerciseName, input.ExerciseType, *input.PerformanceValue, input.PerformanceUnit)
	default:
		return nil, &ValidationError{Field: "personal_bests", Message: "unknown record type " + input.Type}
	}
	rec.Notes = input.Notes

	normalized := normalize.Record(*rec)
	if _, ok := normalized.Value(); !ok {
		return nil, &ValidationError{Field: "personal_bests", Message: "record value is not a usable number"}
	}
	return &normalized, nil
}

func buildInjury(session *models.Session, input InjuryInput) (*models.InjuryRecord, error) {
	if input.InjuryType == "" || input.BodyPart == "" {
		return nil, &ValidationError{Field: "injuries", Message: "injury_type and body_part are required"}
	}
	severity := models.InjurySeverity(input.Severity)
	switch severity {
	case models.SeverityMinor, models.SeverityModerate, models.SeveritySevere:
	case "":
		severity = models.SeverityMinor
	default:
		return nil, &ValidationError{Field: "injuries", Message: "unknown severity " + input.Severity}
	}
	inj := models.NewInjuryRecord(input.InjuryType, input.BodyPart, severity, session.Date)
	inj.WithCauseSession(session.ID)
	inj.Notes = input.Notes
	return inj, nil
}

// Stats computes the KPI summary over all sessions and records.
func (e *Engine) Stats(ctx context.Context) (*progression.KPISummary, error) {
	sessions, err := e.store.ListSessions(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	records, err := e.store.ListRecords(ctx, storage.RecordFilter{})
	if err != nil {
		return nil, err
	}
	kpis := progression.KPIs(sessions, records)
	return &kpis, nil
}

// ProgressionReport bundles the per-distance rows, the derived sprint indices
// and the target bands.
type ProgressionReport struct {
	Rows    []progression.Row        `json:"rows"`
	Indices progression.Indices      `json:"indices"`
	Targets []progression.TargetBand `json:"targets,omitempty"`
}

// Progression computes the per-distance progression report from race records.
func (e *Engine) Progression(ctx context.Context) (*ProgressionReport, error) {
	records, err := e.store.ListRecords(ctx, storage.RecordFilter{Category: models.RecordRace})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &ProgressionReport{
		Rows:    progression.Rows(records, now),
		Indices: progression.ComputeIndices(records),
		Targets: progression.TargetBands(records, now),
	}, nil
}

// LoadModel computes the ATL/CTL/TSB series over the full session history.
func (e *Engine) LoadModel(ctx context.Context) (*load.Result, error) {
	sessions, err := e.store.ListSessions(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	return load.Compute(sessions)
}

// AthleteContext is a compact summary of the athlete's current state, built
// for an assistant that needs background before interpreting a new session.
type AthleteContext struct {
	KPIs         progression.KPISummary     `json:"kpis"`
	CurrentBests []models.PerformanceRecord `json:"current_bests,omitempty"`
	Load         *load.Summary              `json:"load,omitempty"`
	Injuries     []models.InjuryRecord      `json:"active_injuries,omitempty"`
}

// Context assembles the athlete context. The load summary is omitted, not an
// error, when the history is too short for the model.
func (e *Engine) Context(ctx context.Context) (*AthleteContext, error) {
	sessions, err := e.store.ListSessions(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	records, err := e.store.ListRecords(ctx, storage.RecordFilter{})
	if err != nil {
		return nil, err
	}
	injuries, err := e.store.ActiveInjuries(ctx)
	if err != nil {
		return nil, err
	}

	out := &AthleteContext{
		KPIs:     progression.KPIs(sessions, records),
		Injuries: injuries,
	}
	for _, r := range records {
		if r.IsPersonalBest {
			out.CurrentBests = append(out.CurrentBests, r)
		}
	}
	if result, err := load.Compute(sessions); err == nil {
		out.Load = &result.Current
	}
	return out, nil
}
