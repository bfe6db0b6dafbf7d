// ABOUTME: Canonicalization of exercise names, units and numeric values.
// ABOUTME: All downstream PB/load/progression comparisons use these keys.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// ExerciseName lowercases and trims a raw exercise name, stripping
// parenthetical annotations, for use as a lookup key. Idempotent.
func ExerciseName(raw string) string {
	name := parenthetical.ReplaceAllString(raw, " ")
	name = strings.ToLower(strings.TrimSpace(name))
	return whitespace.ReplaceAllString(name, " ")
}

// Value sanitizes a numeric measurement: non-finite or negative inputs are
// treated as absent, never as zero. A missing value must not silently become
// a comparison-losing zero.
func Value(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	if f == 0 {
		return nil
	}
	return &f
}

// Count sanitizes an integer count the same way.
func Count(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	n := *v
	return &n
}

// ParseTime converts "mm:ss.cc" or plain seconds into seconds.
func ParseTime(raw string) (float64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}
	if mins, secs, ok := strings.Cut(text, ":"); ok {
		m, err1 := strconv.ParseFloat(mins, 64)
		s, err2 := strconv.ParseFloat(secs, 64)
		if err1 != nil || err2 != nil || m < 0 || s < 0 {
			return 0, false
		}
		return m*60 + s, true
	}
	s, err := strconv.ParseFloat(text, 64)
	if err != nil || s < 0 {
		return 0, false
	}
	return s, true
}

// ParseDistance converts "60", "60m" or "5km" into meters.
func ParseDistance(raw string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return 0, false
	}
	factor := 1.0
	switch {
	case strings.HasSuffix(text, "km"):
		factor = 1000
		text = strings.TrimSuffix(text, "km")
	case strings.HasSuffix(text, "m"):
		text = strings.TrimSuffix(text, "m")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v * factor, true
}

// ParseWeight converts "100", "100kg" or "225lb" into kilograms.
func ParseWeight(raw string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return 0, false
	}
	factor := 1.0
	switch {
	case strings.HasSuffix(text, "lbs"):
		factor = 0.45359237
		text = strings.TrimSuffix(text, "lbs")
	case strings.HasSuffix(text, "lb"):
		factor = 0.45359237
		text = strings.TrimSuffix(text, "lb")
	case strings.HasSuffix(text, "kg"):
		text = strings.TrimSuffix(text, "kg")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v * factor, true
}

// Set returns a copy of the workout set with its exercise name canonicalized
// and its measurements sanitized. Pure and idempotent: normalizing an
// already-normalized set yields an equal set.
func Set(ws models.WorkoutSet) models.WorkoutSet {
	out := ws
	out.ExerciseName = ExerciseName(ws.ExerciseName)
	if out.Category == "" {
		out.Category = models.CategoryOther
	}
	out.DistanceM = Value(ws.DistanceM)
	out.TimeS = Value(ws.TimeS)
	out.WeightKg = Value(ws.WeightKg)
	out.RecoveryS = Value(ws.RecoveryS)
	out.Reps = Count(ws.Reps)
	out.Sets = Count(ws.Sets)
	return out
}

// Record canonicalizes a performance record the same way: exercise key
// normalized, measurements sanitized.
func Record(rec models.PerformanceRecord) models.PerformanceRecord {
	out := rec
	out.ExerciseName = ExerciseName(rec.ExerciseName)
	out.DistanceM = Value(rec.DistanceM)
	out.TimeS = Value(rec.TimeS)
	out.WeightKg = Value(rec.WeightKg)
	out.PerformanceValue = Value(rec.PerformanceValue)
	out.Reps = Count(rec.Reps)
	return out
}
