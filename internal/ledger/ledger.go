// ABOUTME: Personal-best ledger: ordering rules plus the single-holder state
// ABOUTME: transition (challenger vs holder -> replace or reject) per key.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

// ErrConflict is returned when the current-best pointer moved underneath a
// commit and the bounded retry lost again.
var ErrConflict = errors.New("personal best conflict")

// Direction is the improvement ordering for a record category.
type Direction int

const (
	LowerIsBetter Direction = iota
	HigherIsBetter
)

// DirectionFor returns the improvement ordering for a record. Race times and
// time-based training performances improve downward; strength loads and
// distance/jump performances improve upward.
func DirectionFor(category models.RecordCategory, performanceUnit string) Direction {
	switch category {
	case models.RecordRace:
		return LowerIsBetter
	case models.RecordStrength:
		return HigherIsBetter
	case models.RecordTraining:
		if performanceUnit == "seconds" {
			return LowerIsBetter
		}
		return HigherIsBetter
	}
	return HigherIsBetter
}

// Evaluate decides whether a candidate value beats the current best under the
// given ordering. Ties are not a new PB: strict improvement is required. A nil
// current best means the first-ever record for the key is automatically best.
func Evaluate(dir Direction, candidate float64, currentBest *float64) bool {
	if currentBest == nil {
		return true
	}
	if dir == LowerIsBetter {
		return candidate < *currentBest
	}
	return candidate > *currentBest
}

// Store is the slice of the repository the ledger needs. PromoteRecord must
// insert the record flagged best and demote the previous holder in one
// transaction, returning ErrConflict when the holder moved.
type Store interface {
	GetCurrentBest(ctx context.Context, category models.RecordCategory, key string) (*models.PerformanceRecord, error)
	InsertRecord(ctx context.Context, rec *models.PerformanceRecord) error
	PromoteRecord(ctx context.Context, rec *models.PerformanceRecord, demote uuid.UUID) error
}

// Ledger serializes PB commits per key so two near-simultaneous submissions
// for the same exercise cannot both end up flagged best.
type Ledger struct {
	store Store

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// New creates a Ledger over the given store.
func New(store Store) *Ledger {
	return &Ledger{
		store: store,
		keys:  make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) keyLock(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.keys[key]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.keys[key] = m
	return m
}

// Commit decides whether rec is a personal best and persists it with the flag
// set accordingly, demoting the previous holder when beaten. The record is
// expected to be normalized already. If the existing-best lookup fails the
// whole save fails: the single-holder invariant outranks availability.
func (l *Ledger) Commit(ctx context.Context, rec *models.PerformanceRecord) (bool, error) {
	value, ok := rec.Value()
	if !ok {
		return false, fmt.Errorf("record %s/%s has no comparable value", rec.Category, rec.Key())
	}

	lockKey := string(rec.Category) + ":" + rec.Key()
	mu := l.keyLock(lockKey)
	mu.Lock()
	defer mu.Unlock()

	if err := l.commitOnce(ctx, rec, value); err != nil {
		if !errors.Is(err, ErrConflict) {
			return false, err
		}
		// The holder moved between lookup and commit (another writer on the
		// same key). Retry once with fresh data, then surface the conflict.
		if err := l.commitOnce(ctx, rec, value); err != nil {
			return false, err
		}
	}
	return rec.IsPersonalBest, nil
}

func (l *Ledger) commitOnce(ctx context.Context, rec *models.PerformanceRecord, value float64) error {
	current, err := l.store.GetCurrentBest(ctx, rec.Category, rec.Key())
	if err != nil {
		return fmt.Errorf("lookup current best for %s/%s: %w", rec.Category, rec.Key(), err)
	}

	var currentValue *float64
	if current != nil {
		if v, ok := current.Value(); ok {
			currentValue = &v
		}
	}

	dir := DirectionFor(rec.Category, rec.PerformanceUnit)
	rec.IsPersonalBest = Evaluate(dir, value, currentValue)

	if !rec.IsPersonalBest {
		return l.store.InsertRecord(ctx, rec)
	}
	if current == nil {
		return l.store.InsertRecord(ctx, rec)
	}
	return l.store.PromoteRecord(ctx, rec, current.ID)
}
