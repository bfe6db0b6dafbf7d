// ABOUTME: Injury history persistence: add, list, resolve.
// ABOUTME: Active injuries feed the athlete-context summary.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

// AddInjury stores a new injury record.
func (d *DB) AddInjury(ctx context.Context, inj *models.InjuryRecord) error {
	var causeID, endDate *string
	if inj.CauseSessionID != nil {
		s := inj.CauseSessionID.String()
		causeID = &s
	}
	if inj.EndDate != nil {
		s := inj.EndDate.Format(dayFormat)
		endDate = &s
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO injury_history (id, injury_type, body_part, start_date, end_date, severity, cause_session_id, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inj.ID.String(), inj.InjuryType, inj.BodyPart,
		inj.StartDate.Format(dayFormat), endDate, string(inj.Severity),
		causeID, inj.Notes,
		inj.CreatedAt.Format(time.RFC3339), inj.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return wrapStoreErr("add injury", err)
	}
	return nil
}

// ListInjuries retrieves all injuries, most recent start first.
func (d *DB) ListInjuries(ctx context.Context) ([]models.InjuryRecord, error) {
	return d.queryInjuries(ctx, `
		SELECT id, injury_type, body_part, start_date, end_date, severity, cause_session_id, notes, created_at, updated_at
		FROM injury_history ORDER BY start_date DESC`)
}

// ActiveInjuries retrieves injuries without an end date.
func (d *DB) ActiveInjuries(ctx context.Context) ([]models.InjuryRecord, error) {
	return d.queryInjuries(ctx, `
		SELECT id, injury_type, body_part, start_date, end_date, severity, cause_session_id, notes, created_at, updated_at
		FROM injury_history WHERE end_date IS NULL ORDER BY start_date DESC`)
}

// ResolveInjury sets the end date on an injury, closing it.
func (d *DB) ResolveInjury(ctx context.Context, idOrPrefix string, endDate time.Time) error {
	id, err := d.resolveID(ctx, "injury_history", idOrPrefix)
	if err != nil {
		return err
	}
	result, err := d.db.ExecContext(ctx, `
		UPDATE injury_history SET end_date = ?, updated_at = ? WHERE id = ?`,
		endDate.Format(dayFormat), time.Now().Format(time.RFC3339), id)
	if err != nil {
		return wrapStoreErr("resolve injury", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return wrapStoreErr("resolve injury", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

func (d *DB) queryInjuries(ctx context.Context, query string, args ...interface{}) ([]models.InjuryRecord, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list injuries", err)
	}
	defer rows.Close()

	var injuries []models.InjuryRecord
	for rows.Next() {
		var inj models.InjuryRecord
		var idStr, startDate, severity, createdAt, updatedAt string
		var endDate, causeID, notes sql.NullString
		err := rows.Scan(&idStr, &inj.InjuryType, &inj.BodyPart, &startDate, &endDate,
			&severity, &causeID, &notes, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan injury: %w", err)
		}
		inj.ID, _ = uuid.Parse(idStr)
		inj.StartDate, _ = time.Parse(dayFormat, startDate)
		inj.Severity = models.InjurySeverity(severity)
		inj.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		inj.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		if endDate.Valid {
			t, parseErr := time.Parse(dayFormat, endDate.String)
			if parseErr == nil {
				inj.EndDate = &t
			}
		}
		if causeID.Valid {
			if cause, parseErr := uuid.Parse(causeID.String); parseErr == nil {
				inj.CauseSessionID = &cause
			}
		}
		if notes.Valid {
			inj.Notes = &notes.String
		}
		injuries = append(injuries, inj)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list injuries", err)
	}
	return injuries, nil
}
