// ABOUTME: Sprint training-load model: daily stress, ATL/CTL exponential
// ABOUTME: moving averages and the TSB form signal.
package load

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
)

// ErrInsufficientData is returned when the history spans fewer than 7 days.
// A handful of points makes the filters pure noise, so the model refuses to
// produce numbers instead of producing misleading ones.
var ErrInsufficientData = errors.New("load model: fewer than 7 days of data")

const (
	acuteTau   = 7.0  // days
	chronicTau = 28.0 // days
	defaultRPE = 5.0  // assumed effort when a sprint session has no RPE
	minDays    = 7
)

// Point is one day of the load series.
type Point struct {
	Date   time.Time `json:"date"`
	Stress float64   `json:"stress"`
	ATL    float64   `json:"atl"`
	CTL    float64   `json:"ctl"`
	TSB    float64   `json:"tsb"`
}

// Summary is the latest point rounded for presentation.
type Summary struct {
	ATL float64 `json:"atl"`
	CTL float64 `json:"ctl"`
	TSB float64 `json:"tsb"`
}

// Result holds the full daily series and the latest summary.
type Result struct {
	Series  []Point `json:"series"`
	Current Summary `json:"current"`
}

// SprintRelevant reports whether a session counts toward sprint load: type
// track/race/test, or any sprint/jump set. Heuristic union kept in one place
// so it can become configurable later.
func SprintRelevant(s models.Session) bool {
	switch s.Type {
	case models.SessionTrack, models.SessionRace, models.SessionTest:
		return true
	}
	for _, g := range s.Groups {
		for _, ws := range g.Sets {
			if ws.Category == models.CategorySprint || ws.Category == models.CategoryJump {
				return true
			}
		}
	}
	return false
}

// Stress computes the daily stress score for one session: total sprint/jump
// distance (meters x sets) scaled to hundreds, weighted by RPE. Sessions that
// are not sprint-relevant score zero.
func Stress(s models.Session) float64 {
	if !SprintRelevant(s) {
		return 0
	}
	volume := 0.0
	for _, g := range s.Groups {
		for _, ws := range g.Sets {
			if ws.Category != models.CategorySprint && ws.Category != models.CategoryJump {
				continue
			}
			if ws.DistanceM == nil {
				continue
			}
			sets := 1.0
			if ws.Sets != nil {
				sets = float64(*ws.Sets)
			}
			volume += *ws.DistanceM * sets
		}
	}
	rpe := defaultRPE
	if s.RPE != nil {
		rpe = *s.RPE
	}
	return volume / 100.0 * rpe
}

// Compute builds the continuous daily series from the session history and
// runs the acute/chronic filters over it.
//
// The recurrence is ema[t] = stress[t]*alpha + ema[t-1]*(1-alpha) with
// alpha = 1 - exp(-1/tau), seeded ema[0] = stress[0]. TSB[t] is yesterday's
// CTL minus yesterday's ATL: today's acute value is still accumulating, and
// dropping the one-day lag turns the form signal into noise.
func Compute(sessions []models.Session) (*Result, error) {
	daily := make(map[string]float64)
	for _, s := range sessions {
		stress := Stress(s)
		if stress == 0 {
			continue
		}
		daily[dayKey(s.Date)] += stress
	}
	if len(daily) == 0 {
		return nil, ErrInsufficientData
	}

	days := make([]string, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Strings(days)

	first, _ := time.Parse("2006-01-02", days[0])
	last, _ := time.Parse("2006-01-02", days[len(days)-1])

	// The exponential filters need a value for every calendar day, not just
	// days with data: gap days carry zero stress.
	var series []Point
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		series = append(series, Point{Date: d, Stress: daily[dayKey(d)]})
	}
	if len(series) < minDays {
		return nil, ErrInsufficientData
	}

	alphaA := 1 - math.Exp(-1/acuteTau)
	alphaC := 1 - math.Exp(-1/chronicTau)

	atl, ctl := series[0].Stress, series[0].Stress
	for i := range series {
		if i > 0 {
			atl = series[i].Stress*alphaA + atl*(1-alphaA)
			ctl = series[i].Stress*alphaC + ctl*(1-alphaC)
			series[i].TSB = round1(series[i-1].CTL - series[i-1].ATL)
		}
		series[i].ATL = round1(atl)
		series[i].CTL = round1(ctl)
	}

	latest := series[len(series)-1]
	return &Result{
		Series: series,
		Current: Summary{
			ATL: latest.ATL,
			CTL: latest.CTL,
			TSB: latest.TSB,
		},
	}, nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
