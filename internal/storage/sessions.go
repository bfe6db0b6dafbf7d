// ABOUTME: Session, group and set CRUD operations for SQLite storage.
// ABOUTME: Deleting a session cascades to groups, sets and derived records.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

// CreateSession stores a session with all its groups and sets in one batch.
func (d *DB) CreateSession(ctx context.Context, s *models.Session) error {
	ops := make([]BatchOp, 0, 1+len(s.Groups)*4)
	ops = append(ops, BatchOp{
		Query: `INSERT INTO training_sessions (id, date, type, title, rpe, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		Args: []interface{}{
			s.ID.String(),
			s.Date.Format(dayFormat),
			string(s.Type),
			s.Title,
			s.RPE,
			s.Notes,
			s.CreatedAt.Format(time.RFC3339),
			s.UpdatedAt.Format(time.RFC3339),
		},
	})
	for gi := range s.Groups {
		g := &s.Groups[gi]
		g.SessionID = s.ID
		ops = append(ops, BatchOp{
			Query: `INSERT INTO workout_groups (id, session_id, name, order_index, notes)
				VALUES (?, ?, ?, ?, ?)`,
			Args: []interface{}{g.ID.String(), g.SessionID.String(), g.Name, g.OrderIndex, g.Notes},
		})
		for si := range g.Sets {
			ws := &g.Sets[si]
			ws.GroupID = g.ID
			ops = append(ops, BatchOp{
				Query: `INSERT INTO workout_sets (id, group_id, exercise_name, category, sets, reps, weight_kg, distance_m, time_s, recovery_s, notes)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				Args: []interface{}{
					ws.ID.String(), ws.GroupID.String(), ws.ExerciseName, string(ws.Category),
					ws.Sets, ws.Reps, ws.WeightKg, ws.DistanceM, ws.TimeS, ws.RecoveryS, ws.Notes,
				},
			})
		}
	}
	if err := d.CommitBatch(ctx, ops); err != nil {
		return wrapStoreErr("create session", err)
	}
	return nil
}

// GetSession retrieves a session by ID or ID prefix, with groups and sets.
func (d *DB) GetSession(ctx context.Context, idOrPrefix string) (*models.Session, error) {
	id, err := d.resolveID(ctx, "training_sessions", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRowContext(ctx, `
		SELECT id, date, type, title, rpe, notes, created_at, updated_at
		FROM training_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	if err := d.loadGroups(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSessions retrieves sessions in a date range (inclusive), oldest first,
// with nested groups and sets. Zero times mean an open bound.
func (d *DB) ListSessions(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	query := `SELECT id, date, type, title, rpe, notes, created_at, updated_at FROM training_sessions`
	var conds []string
	var args []interface{}
	if !start.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, start.Format(dayFormat))
	}
	if !end.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, end.Format(dayFormat))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date ASC, created_at ASC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list sessions", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSessionRows(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list sessions", err)
	}
	for i := range sessions {
		if err := d.loadGroups(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// UpdateSession patches session metadata (title, type, rpe, notes).
func (d *DB) UpdateSession(ctx context.Context, idOrPrefix string, patch models.SessionPatch) error {
	id, err := d.resolveID(ctx, "training_sessions", idOrPrefix)
	if err != nil {
		return err
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().Format(time.RFC3339)}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, string(*patch.Type))
	}
	if patch.RPE != nil {
		sets = append(sets, "rpe = ?")
		args = append(args, *patch.RPE)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	args = append(args, id)

	_, err = d.db.ExecContext(ctx,
		"UPDATE training_sessions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return wrapStoreErr("update session", err)
	}
	return nil
}

// DeleteSession removes a session, its groups/sets (FK cascade) and any
// derived performance or injury records referencing it.
func (d *DB) DeleteSession(ctx context.Context, idOrPrefix string) error {
	id, err := d.resolveID(ctx, "training_sessions", idOrPrefix)
	if err != nil {
		return err
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStoreErr("delete session", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM training_sessions WHERE id = ?", id)
	if err != nil {
		return wrapStoreErr("delete session", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return wrapStoreErr("delete session", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM performance_records WHERE session_id = ?", id); err != nil {
		return wrapStoreErr("delete derived records", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM injury_history WHERE cause_session_id = ?", id); err != nil {
		return wrapStoreErr("delete derived injuries", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapStoreErr("delete session", err)
	}
	return nil
}

// loadGroups populates a session's groups and sets, ordered by order_index.
func (d *DB) loadGroups(ctx context.Context, s *models.Session) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, session_id, name, order_index, notes
		FROM workout_groups WHERE session_id = ? ORDER BY order_index ASC`, s.ID.String())
	if err != nil {
		return wrapStoreErr("list groups", err)
	}
	defer rows.Close()

	s.Groups = nil
	for rows.Next() {
		var g models.WorkoutGroup
		var idStr, sessionIDStr string
		var notes sql.NullString
		if err := rows.Scan(&idStr, &sessionIDStr, &g.Name, &g.OrderIndex, &notes); err != nil {
			return fmt.Errorf("scan group: %w", err)
		}
		g.ID, _ = uuid.Parse(idStr)
		g.SessionID, _ = uuid.Parse(sessionIDStr)
		if notes.Valid {
			g.Notes = &notes.String
		}
		s.Groups = append(s.Groups, g)
	}
	if err := rows.Err(); err != nil {
		return wrapStoreErr("list groups", err)
	}

	for i := range s.Groups {
		if err := d.loadSets(ctx, &s.Groups[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) loadSets(ctx context.Context, g *models.WorkoutGroup) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, group_id, exercise_name, category, sets, reps, weight_kg, distance_m, time_s, recovery_s, notes
		FROM workout_sets WHERE group_id = ?`, g.ID.String())
	if err != nil {
		return wrapStoreErr("list sets", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ws models.WorkoutSet
		var idStr, groupIDStr, category string
		var sets, reps sql.NullInt64
		var weight, distance, timeS, recovery sql.NullFloat64
		var notes sql.NullString
		err := rows.Scan(&idStr, &groupIDStr, &ws.ExerciseName, &category,
			&sets, &reps, &weight, &distance, &timeS, &recovery, &notes)
		if err != nil {
			return fmt.Errorf("scan set: %w", err)
		}
		ws.ID, _ = uuid.Parse(idStr)
		ws.GroupID, _ = uuid.Parse(groupIDStr)
		ws.Category = models.SetCategory(category)
		ws.Sets = nullInt(sets)
		ws.Reps = nullInt(reps)
		ws.WeightKg = nullFloat(weight)
		ws.DistanceM = nullFloat(distance)
		ws.TimeS = nullFloat(timeS)
		ws.RecoveryS = nullFloat(recovery)
		if notes.Valid {
			ws.Notes = &notes.String
		}
		g.Sets = append(g.Sets, ws)
	}
	return rows.Err()
}

// resolveID finds the full ID from a prefix in the given table.
func (d *DB) resolveID(ctx context.Context, table, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.QueryContext(ctx,
		"SELECT id FROM "+table+" WHERE id LIKE ? || '%'", idOrPrefix)
	if err != nil {
		return "", wrapStoreErr("resolve ID", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", wrapStoreErr("resolve ID", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var s models.Session
	var idStr, date, sessionType, createdAt, updatedAt string
	var rpe sql.NullFloat64
	var notes sql.NullString

	err := row.Scan(&idStr, &date, &sessionType, &s.Title, &rpe, &notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	fillSession(&s, idStr, date, sessionType, rpe, notes, createdAt, updatedAt)
	return &s, nil
}

func scanSessionRows(rows *sql.Rows) (*models.Session, error) {
	var s models.Session
	var idStr, date, sessionType, createdAt, updatedAt string
	var rpe sql.NullFloat64
	var notes sql.NullString

	err := rows.Scan(&idStr, &date, &sessionType, &s.Title, &rpe, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	fillSession(&s, idStr, date, sessionType, rpe, notes, createdAt, updatedAt)
	return &s, nil
}

func fillSession(s *models.Session, idStr, date, sessionType string, rpe sql.NullFloat64, notes sql.NullString, createdAt, updatedAt string) {
	s.ID, _ = uuid.Parse(idStr)
	s.Date, _ = time.Parse(dayFormat, date)
	s.Type = models.SessionType(sessionType)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if rpe.Valid {
		s.RPE = &rpe.Float64
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
