// ABOUTME: Per-distance progression, consistency and sprint index analytics
// ABOUTME: computed from the race performance history.
package progression

import (
	"math"
	"sort"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
)

const (
	recentWindowDays = 30
	trendWindowDays  = 28
	consistencyLast  = 8
)

// Row is the per-distance progression summary.
type Row struct {
	DistanceM     float64  `json:"distance_m"`
	BestTimeS     float64  `json:"best_time_s"`
	RecentBestS   *float64 `json:"recent_time_s"`
	ChangePercent *float64 `json:"change_percent"`
	TrendPercent  *float64 `json:"trend_percent"`
	ConsistencyS  *float64 `json:"consistency_s"`
	Samples       int      `json:"samples"`
}

type result struct {
	date  time.Time
	timeS float64
}

// Rows computes one progression row per distance from race records, sorted by
// distance. "Recent" is the last 30 days relative to now; when nothing falls
// in the window the recent best stays nil rather than borrowing the all-time
// best.
func Rows(records []models.PerformanceRecord, now time.Time) []Row {
	byDistance := groupByDistance(records)

	distances := make([]float64, 0, len(byDistance))
	for d := range byDistance {
		distances = append(distances, d)
	}
	sort.Float64s(distances)

	rows := make([]Row, 0, len(distances))
	for _, d := range distances {
		results := byDistance[d]
		sort.Slice(results, func(i, j int) bool { return results[i].date.Before(results[j].date) })

		row := Row{DistanceM: d, Samples: len(results)}
		row.BestTimeS = results[0].timeS
		for _, r := range results {
			if r.timeS < row.BestTimeS {
				row.BestTimeS = r.timeS
			}
		}

		recentCutoff := now.AddDate(0, 0, -recentWindowDays)
		for _, r := range results {
			if r.date.Before(recentCutoff) {
				continue
			}
			if row.RecentBestS == nil || r.timeS < *row.RecentBestS {
				t := r.timeS
				row.RecentBestS = &t
			}
		}

		if row.RecentBestS != nil && row.BestTimeS > 0 {
			// Positive means the recent best is slower than the all-time best.
			change := (*row.RecentBestS - row.BestTimeS) / row.BestTimeS * 100
			change = round2(change)
			row.ChangePercent = &change
		}

		row.TrendPercent = trendPercent(results, now, row.BestTimeS)
		row.ConsistencyS = consistency(results)
		rows = append(rows, row)
	}
	return rows
}

// trendPercent fits a least-squares slope (seconds per day) over the results
// of the last 28 days and normalizes it against the best time so it reads as
// percent change across the window. Negative means improving. Needs at least
// two samples in the window.
func trendPercent(results []result, now time.Time, best float64) *float64 {
	cutoff := now.AddDate(0, 0, -trendWindowDays)
	var xs, ys []float64
	for _, r := range results {
		if r.date.Before(cutoff) {
			continue
		}
		xs = append(xs, r.date.Sub(cutoff).Hours()/24)
		ys = append(ys, r.timeS)
	}
	if len(xs) < 2 || best <= 0 {
		return nil
	}

	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (n*sumXY - sumX*sumY) / denom
	trend := round2(slope * trendWindowDays / best * 100)
	return &trend
}

// consistency is the standard deviation of the last 8 results. With a single
// sample it stays nil: zero would falsely claim perfect consistency.
func consistency(results []result) *float64 {
	if len(results) < 2 {
		return nil
	}
	tail := results
	if len(tail) > consistencyLast {
		tail = tail[len(tail)-consistencyLast:]
	}
	mean := 0.0
	for _, r := range tail {
		mean += r.timeS
	}
	mean /= float64(len(tail))

	variance := 0.0
	for _, r := range tail {
		variance += (r.timeS - mean) * (r.timeS - mean)
	}
	variance /= float64(len(tail))
	sd := round2(math.Sqrt(variance))
	return &sd
}

// Indices are the sprint-specific derived metrics. Each stays nil when an
// input distance is missing from the history: a fabricated number is worse
// than no number.
type Indices struct {
	MaxVelocityMps      *float64 `json:"max_velocity_mps"`
	AccelIndex          *float64 `json:"accel_index"`
	SpeedEnduranceIndex *float64 `json:"speed_endurance_index"`
}

// ComputeIndices derives max velocity (best 100m), acceleration index
// (best 30m over best 60m) and speed endurance (best 200m over best 100m).
func ComputeIndices(records []models.PerformanceRecord) Indices {
	best := bestByDistance(records)

	var out Indices
	if b100, ok := best[100]; ok && b100 > 0 {
		v := round2(100 / b100)
		out.MaxVelocityMps = &v
	}
	if b30, ok30 := best[30]; ok30 {
		if b60, ok60 := best[60]; ok60 && b60 > 0 {
			v := round2(b30 / b60)
			out.AccelIndex = &v
		}
	}
	if b200, ok200 := best[200]; ok200 {
		if b100, ok100 := best[100]; ok100 && b100 > 0 {
			v := round2(b200 / b100)
			out.SpeedEnduranceIndex = &v
		}
	}
	return out
}

// TargetBand estimates a target time for a key distance from recent history.
type TargetBand struct {
	DistanceM float64  `json:"distance_m"`
	TargetS   *float64 `json:"target_s"`
	LowS      *float64 `json:"low_s"`
	HighS     *float64 `json:"high_s"`
	Samples   int      `json:"samples"`
}

// TargetBands estimates 100/200/400m target times from the last 120 days.
// A distance needs at least 3 samples in the window to unlock the estimate:
// target is the mean of the best 3, band is one standard deviation around it.
func TargetBands(records []models.PerformanceRecord, now time.Time) []TargetBand {
	cutoff := now.AddDate(0, 0, -120)
	byDistance := groupByDistance(records)

	bands := make([]TargetBand, 0, 3)
	for _, d := range []float64{100, 200, 400} {
		band := TargetBand{DistanceM: d}
		var times []float64
		for _, r := range byDistance[d] {
			if r.date.Before(cutoff) {
				continue
			}
			times = append(times, r.timeS)
		}
		band.Samples = len(times)
		if len(times) >= 3 {
			sort.Float64s(times)
			target := round2((times[0] + times[1] + times[2]) / 3)

			mean := 0.0
			for _, t := range times {
				mean += t
			}
			mean /= float64(len(times))
			variance := 0.0
			for _, t := range times {
				variance += (t - mean) * (t - mean)
			}
			sd := math.Sqrt(variance / float64(len(times)))

			low := round2(target - sd)
			high := round2(target + sd)
			band.TargetS = &target
			band.LowS = &low
			band.HighS = &high
		}
		bands = append(bands, band)
	}
	return bands
}

func groupByDistance(records []models.PerformanceRecord) map[float64][]result {
	byDistance := make(map[float64][]result)
	for _, r := range records {
		if r.Category != models.RecordRace || r.DistanceM == nil || r.TimeS == nil {
			continue
		}
		byDistance[*r.DistanceM] = append(byDistance[*r.DistanceM], result{date: r.Date, timeS: *r.TimeS})
	}
	return byDistance
}

func bestByDistance(records []models.PerformanceRecord) map[float64]float64 {
	best := make(map[float64]float64)
	for d, results := range groupByDistance(records) {
		for _, r := range results {
			if b, ok := best[d]; !ok || r.timeS < b {
				best[d] = r.timeS
			}
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
