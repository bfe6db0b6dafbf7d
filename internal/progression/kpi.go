// ABOUTME: KPI summary and training-streak computation over session history.
// ABOUTME: Volume totals count distance x sets and weight x reps x sets.
package progression

import (
	"sort"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
)

// KPISummary is the dashboard headline block.
type KPISummary struct {
	TotalSessions    int            `json:"total_sessions"`
	AvgRPE           *float64       `json:"avg_rpe"`
	PBCount          int            `json:"pb_count"`
	Streak           int            `json:"streak"`
	TypeDistribution map[string]int `json:"type_distribution"`
	TotalDistanceKm  float64        `json:"total_distance_km"`
	TotalWeightKg    float64        `json:"total_weight_kg"`
}

// KPIs aggregates sessions and current PB records into the summary block.
// Average RPE only counts sessions that recorded one.
func KPIs(sessions []models.Session, records []models.PerformanceRecord) KPISummary {
	out := KPISummary{
		TotalSessions:    len(sessions),
		TypeDistribution: make(map[string]int),
	}

	rpeSum, rpeCount := 0.0, 0
	var totalDistance, totalWeight float64
	for _, s := range sessions {
		out.TypeDistribution[string(s.Type)]++
		if s.RPE != nil {
			rpeSum += *s.RPE
			rpeCount++
		}
		for _, g := range s.Groups {
			for _, ws := range g.Sets {
				sets := 1.0
				if ws.Sets != nil {
					sets = float64(*ws.Sets)
				}
				if ws.DistanceM != nil {
					totalDistance += *ws.DistanceM * sets
				}
				if ws.WeightKg != nil && ws.Reps != nil {
					totalWeight += *ws.WeightKg * float64(*ws.Reps) * sets
				}
			}
		}
	}
	if rpeCount > 0 {
		avg := round2(rpeSum / float64(rpeCount))
		out.AvgRPE = &avg
	}
	out.TotalDistanceKm = round2(totalDistance / 1000)
	out.TotalWeightKg = round2(totalWeight)

	for _, r := range records {
		if r.IsPersonalBest {
			out.PBCount++
		}
	}

	out.Streak = Streak(sessions)
	return out
}

// Streak counts consecutive training days ending at the most recent session
// date. Multiple sessions on the same day count once.
func Streak(sessions []models.Session) int {
	if len(sessions) == 0 {
		return 0
	}
	seen := make(map[string]bool)
	var days []time.Time
	for _, s := range sessions {
		day := s.Date.Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	current := days[0]
	for _, day := range days[1:] {
		expected := current.AddDate(0, 0, -1)
		if !day.Equal(expected) {
			break
		}
		streak++
		current = day
	}
	return streak
}
