// ABOUTME: Tests for progression rows, sprint indices and target bands.
// ABOUTME: Exercises the null-safety rules around sparse histories.
package progression

import (
	"math"
	"testing"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

var now = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func race(daysAgo int, distance, timeS float64) models.PerformanceRecord {
	return *models.NewRaceRecord(uuid.New(), now.AddDate(0, 0, -daysAgo), distance, timeS)
}

func TestRowsBestAndRecent(t *testing.T) {
	records := []models.PerformanceRecord{
		race(200, 100, 11.05), // all-time best, long ago
		race(20, 100, 11.42),
		race(10, 100, 11.30), // recent best
	}

	rows := Rows(records, now)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.DistanceM != 100 || row.Samples != 3 {
		t.Errorf("row header wrong: %+v", row)
	}
	if row.BestTimeS != 11.05 {
		t.Errorf("best = %v, want 11.05", row.BestTimeS)
	}
	if row.RecentBestS == nil || *row.RecentBestS != 11.30 {
		t.Errorf("recent best = %v, want 11.30", row.RecentBestS)
	}
	// (11.30 - 11.05) / 11.05 * 100, positive means slower than the best.
	if row.ChangePercent == nil || math.Abs(*row.ChangePercent-2.26) > 0.01 {
		t.Errorf("change = %v, want ~2.26", row.ChangePercent)
	}
}

func TestRowsRecentStaysNilOutsideWindow(t *testing.T) {
	records := []models.PerformanceRecord{
		race(90, 200, 22.80),
		race(60, 200, 22.65),
	}
	rows := Rows(records, now)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].RecentBestS != nil {
		t.Error("recent best must stay nil when nothing falls in the last 30 days")
	}
	if rows[0].ChangePercent != nil {
		t.Error("change must stay nil without a recent best")
	}
}

func TestRowsConsistencyNeedsTwoSamples(t *testing.T) {
	rows := Rows([]models.PerformanceRecord{race(5, 60, 7.12)}, now)
	if rows[0].ConsistencyS != nil {
		t.Error("one sample must not claim perfect consistency")
	}

	rows = Rows([]models.PerformanceRecord{race(5, 60, 7.12), race(3, 60, 7.20)}, now)
	if rows[0].ConsistencyS == nil {
		t.Error("two samples unlock consistency")
	}
}

func TestTrendNeedsTwoRecentSamples(t *testing.T) {
	// Only one result inside the 28-day trend window.
	records := []models.PerformanceRecord{
		race(100, 100, 11.40),
		race(5, 100, 11.20),
	}
	rows := Rows(records, now)
	if rows[0].TrendPercent != nil {
		t.Error("one in-window sample must not produce a trend")
	}

	// Two results 10 days apart, improving by 0.2s.
	records = []models.PerformanceRecord{
		race(15, 100, 11.40),
		race(5, 100, 11.20),
	}
	rows = Rows(records, now)
	if rows[0].TrendPercent == nil {
		t.Fatal("two in-window samples should produce a trend")
	}
	if *rows[0].TrendPercent >= 0 {
		t.Errorf("improving times should trend negative, got %v", *rows[0].TrendPercent)
	}
}

func TestComputeIndices(t *testing.T) {
	records := []models.PerformanceRecord{
		race(5, 100, 10.80),
		race(5, 200, 22.10),
	}
	idx := ComputeIndices(records)

	if idx.MaxVelocityMps == nil || math.Abs(*idx.MaxVelocityMps-9.26) > 0.01 {
		t.Errorf("max velocity = %v, want ~9.26", idx.MaxVelocityMps)
	}
	if idx.SpeedEnduranceIndex == nil || math.Abs(*idx.SpeedEnduranceIndex-2.05) > 0.01 {
		t.Errorf("speed endurance = %v, want ~2.05", idx.SpeedEnduranceIndex)
	}
	// No 30m or 60m on file.
	if idx.AccelIndex != nil {
		t.Error("accel index must stay nil without 30m and 60m results")
	}
}

func TestComputeIndicesEmpty(t *testing.T) {
	idx := ComputeIndices(nil)
	if idx.MaxVelocityMps != nil || idx.AccelIndex != nil || idx.SpeedEnduranceIndex != nil {
		t.Error("indices over an empty history must all be nil")
	}
}

func TestTargetBands(t *testing.T) {
	records := []models.PerformanceRecord{
		race(10, 100, 11.20),
		race(30, 100, 11.35),
		race(60, 100, 11.10),
		race(90, 100, 11.50),
		race(10, 200, 22.90), // only one 200m sample
	}
	bands := TargetBands(records, now)
	if len(bands) != 3 {
		t.Fatalf("bands = %d, want 3 (100/200/400)", len(bands))
	}

	b100 := bands[0]
	if b100.Samples != 4 {
		t.Errorf("100m samples = %d, want 4", b100.Samples)
	}
	// Mean of the best three: (11.10 + 11.20 + 11.35) / 3.
	if b100.TargetS == nil || math.Abs(*b100.TargetS-11.22) > 0.01 {
		t.Errorf("100m target = %v, want ~11.22", b100.TargetS)
	}
	if b100.LowS == nil || b100.HighS == nil || !(*b100.LowS < *b100.TargetS && *b100.TargetS < *b100.HighS) {
		t.Errorf("band must bracket the target: %+v", b100)
	}

	b200 := bands[1]
	if b200.TargetS != nil {
		t.Error("200m with one sample must not produce a target")
	}
	if b200.Samples != 1 {
		t.Errorf("200m samples = %d, want 1", b200.Samples)
	}
}

func TestRowsIgnoreNonRaceRecords(t *testing.T) {
	strength := *models.NewStrengthRecord(uuid.New(), now, "squat", 120, 3)
	rows := Rows([]models.PerformanceRecord{strength}, now)
	if len(rows) != 0 {
		t.Errorf("strength records must not appear in progression rows")
	}
}
