// ABOUTME: Export and import functionality for training data.
// ABOUTME: Supports JSON, YAML and CSV export formats.
package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for training data.
type ExportData struct {
	Version    string                     `json:"version" yaml:"version"`
	ExportedAt time.Time                  `json:"exported_at" yaml:"exported_at"`
	Tool       string                     `json:"tool" yaml:"tool"`
	Sessions   []models.Session           `json:"sessions" yaml:"sessions"`
	Records    []models.PerformanceRecord `json:"records" yaml:"records"`
	Injuries   []models.InjuryRecord      `json:"injuries" yaml:"injuries"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	sessions, err := d.ListSessions(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	records, err := d.ListRecords(ctx, RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	injuries, err := d.ListInjuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list injuries: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "sprintlog",
		Sessions:   sessions,
		Records:    records,
		Injuries:   injuries,
	}, nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportCSV exports a flat projection of all workout sets, one row per set,
// for spreadsheet analysis. Nested structure does not survive; use JSON or
// YAML for round-tripping.
func (d *DB) ExportCSV(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "session_type", "session_title", "rpe", "group",
		"exercise", "category", "sets", "reps", "weight_kg", "distance_m", "time_s", "recovery_s"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range data.Sessions {
		rpe := ""
		if s.RPE != nil {
			rpe = strconv.FormatFloat(*s.RPE, 'f', -1, 64)
		}
		for _, g := range s.Groups {
			for _, ws := range g.Sets {
				row := []string{
					s.Date.Format(dayFormat),
					string(s.Type),
					s.Title,
					rpe,
					g.Name,
					ws.ExerciseName,
					string(ws.Category),
					csvInt(ws.Sets),
					csvInt(ws.Reps),
					csvFloat(ws.WeightKg),
					csvFloat(ws.DistanceM),
					csvFloat(ws.TimeS),
					csvFloat(ws.RecoveryS),
				}
				if err := w.Write(row); err != nil {
					return nil, fmt.Errorf("write csv row: %w", err)
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportData imports data from an export file. Records are inserted as-is,
// PB flags included, so only import into an empty database.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	for i := range data.Sessions {
		if err := d.CreateSession(ctx, &data.Sessions[i]); err != nil {
			return fmt.Errorf("import session: %w", err)
		}
	}
	for i := range data.Records {
		if err := d.InsertRecord(ctx, &data.Records[i]); err != nil {
			return fmt.Errorf("import record: %w", err)
		}
	}
	for i := range data.Injuries {
		if err := d.AddInjury(ctx, &data.Injuries[i]); err != nil {
			return fmt.Errorf("import injury: %w", err)
		}
	}
	return nil
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
