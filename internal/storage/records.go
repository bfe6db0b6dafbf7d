// ABOUTME: Performance record persistence implementing the ledger store.
// ABOUTME: PromoteRecord swaps the current-best flag atomically in one tx.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/ledger"
	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

const recordColumns = `id, session_id, category, record_key, date,
	distance_m, time_s, exercise_name, exercise_category, weight_kg, reps,
	exercise_type, performance_value, performance_unit, is_personal_best, notes, created_at`

// GetCurrentBest returns the record currently flagged best for a key, or nil
// when the key has no records yet.
func (d *DB) GetCurrentBest(ctx context.Context, category models.RecordCategory, key string) (*models.PerformanceRecord, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM performance_records
		WHERE category = ? AND record_key = ? AND is_personal_best = 1`,
		string(category), key)
	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get current best", err)
	}
	return rec, nil
}

// InsertRecord stores a performance record. A unique-index violation on the
// current-best flag means another writer claimed the key first; it surfaces
// as a conflict so the ledger can retry with fresh data.
func (d *DB) InsertRecord(ctx context.Context, rec *models.PerformanceRecord) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO performance_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordArgs(rec)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert record: %w", ledger.ErrConflict)
		}
		return wrapStoreErr("insert record", err)
	}
	return nil
}

// PromoteRecord inserts rec flagged best and demotes the previous holder in
// one transaction. If the holder row no longer carries the flag the pointer
// moved underneath us and the commit fails with a conflict.
func (d *DB) PromoteRecord(ctx context.Context, rec *models.PerformanceRecord, demote uuid.UUID) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStoreErr("promote record", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE performance_records SET is_personal_best = 0
		WHERE id = ? AND is_personal_best = 1`, demote.String())
	if err != nil {
		return wrapStoreErr("demote record", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return wrapStoreErr("demote record", err)
	}
	if affected == 0 {
		return fmt.Errorf("demote %s: %w", demote, ledger.ErrConflict)
	}

	rec.IsPersonalBest = true
	_, err = tx.ExecContext(ctx, `
		INSERT INTO performance_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordArgs(rec)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("promote record: %w", ledger.ErrConflict)
		}
		return wrapStoreErr("promote record", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapStoreErr("promote record", err)
	}
	return nil
}

// RecordFilter narrows ListRecords. Zero values mean no constraint.
type RecordFilter struct {
	Category models.RecordCategory
	Key      string
	Since    time.Time
	BestOnly bool
}

// ListRecords retrieves records matching the filter, newest first.
func (d *DB) ListRecords(ctx context.Context, filter RecordFilter) ([]models.PerformanceRecord, error) {
	query := "SELECT " + recordColumns + " FROM performance_records"
	var conds []string
	var args []interface{}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Key != "" {
		conds = append(conds, "record_key = ?")
		args = append(args, filter.Key)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, filter.Since.Format(dayFormat))
	}
	if filter.BestOnly {
		conds = append(conds, "is_personal_best = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list records", err)
	}
	defer rows.Close()

	var records []models.PerformanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list records", err)
	}
	return records, nil
}

// StrengthBests returns current strength PBs keyed by normalized exercise
// name, for anomaly checks.
func (d *DB) StrengthBests(ctx context.Context) (map[string]float64, error) {
	records, err := d.ListRecords(ctx, RecordFilter{Category: models.RecordStrength, BestOnly: true})
	if err != nil {
		return nil, err
	}
	bests := make(map[string]float64, len(records))
	for _, r := range records {
		if r.WeightKg != nil {
			bests[r.ExerciseName] = *r.WeightKg
		}
	}
	return bests, nil
}

func recordArgs(rec *models.PerformanceRecord) []interface{} {
	return []interface{}{
		rec.ID.String(),
		rec.SessionID.String(),
		string(rec.Category),
		rec.Key(),
		rec.Date.Format(dayFormat),
		rec.DistanceM,
		rec.TimeS,
		rec.ExerciseName,
		rec.ExerciseCategory,
		rec.WeightKg,
		rec.Reps,
		rec.ExerciseType,
		rec.PerformanceValue,
		rec.PerformanceUnit,
		rec.IsPersonalBest,
		rec.Notes,
		rec.CreatedAt.Format(time.RFC3339),
	}
}

func scanRecord(scan func(dest ...interface{}) error) (*models.PerformanceRecord, error) {
	var rec models.PerformanceRecord
	var idStr, sessionIDStr, category, recordKey, date, createdAt string
	var distance, timeS, weight, perfValue sql.NullFloat64
	var reps sql.NullInt64
	var notes sql.NullString
	var isBest bool

	err := scan(&idStr, &sessionIDStr, &category, &recordKey, &date,
		&distance, &timeS, &rec.ExerciseName, &rec.ExerciseCategory, &weight, &reps,
		&rec.ExerciseType, &perfValue, &rec.PerformanceUnit, &isBest, &notes, &createdAt)
	if err != nil {
		return nil, err
	}

	rec.ID, _ = uuid.Parse(idStr)
	rec.SessionID, _ = uuid.Parse(sessionIDStr)
	rec.Category = models.RecordCategory(category)
	rec.Date, _ = time.Parse(dayFormat, date)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.DistanceM = nullFloat(distance)
	rec.TimeS = nullFloat(timeS)
	rec.WeightKg = nullFloat(weight)
	rec.Reps = nullInt(reps)
	rec.PerformanceValue = nullFloat(perfValue)
	rec.IsPersonalBest = isBest
	if notes.Valid {
		rec.Notes = &notes.String
	}
	return &rec, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLITE_CONSTRAINT_UNIQUE") ||
		strings.Contains(msg, "constraint failed: performance_records")
}
