// ABOUTME: Tests for the PB ledger: ordering rules, the single-holder
// ABOUTME: invariant and the bounded conflict retry.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/google/uuid"
)

// fakeStore keeps records in memory and can inject failures.
type fakeStore struct {
	records      map[uuid.UUID]*models.PerformanceRecord
	failLookup   error
	conflictOnce bool
	promotes     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[uuid.UUID]*models.PerformanceRecord)}
}

func (s *fakeStore) GetCurrentBest(_ context.Context, category models.RecordCategory, key string) (*models.PerformanceRecord, error) {
	if s.failLookup != nil {
		return nil, s.failLookup
	}
	for _, r := range s.records {
		if r.Category == category && r.Key() == key && r.IsPersonalBest {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) InsertRecord(_ context.Context, rec *models.PerformanceRecord) error {
	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

func (s *fakeStore) PromoteRecord(_ context.Context, rec *models.PerformanceRecord, demote uuid.UUID) error {
	if s.conflictOnce {
		s.conflictOnce = false
		return fmt.Errorf("promote: %w", ErrConflict)
	}
	holder, ok := s.records[demote]
	if !ok || !holder.IsPersonalBest {
		return fmt.Errorf("demote %s: %w", demote, ErrConflict)
	}
	holder.IsPersonalBest = false
	rec.IsPersonalBest = true
	cp := *rec
	s.records[rec.ID] = &cp
	s.promotes++
	return nil
}

func (s *fakeStore) currentBests(category models.RecordCategory, key string) int {
	n := 0
	for _, r := range s.records {
		if r.Category == category && r.Key() == key && r.IsPersonalBest {
			n++
		}
	}
	return n
}

func raceRecord(distance, timeS float64) *models.PerformanceRecord {
	return models.NewRaceRecord(uuid.New(), time.Now(), distance, timeS)
}

func TestEvaluate(t *testing.T) {
	best := 11.20
	if Evaluate(LowerIsBetter, 11.20, &best) {
		t.Error("a tie must not count as a new PB")
	}
	if Evaluate(LowerIsBetter, 11.50, &best) {
		t.Error("a slower time must not count as a new PB")
	}
	if !Evaluate(LowerIsBetter, 10.95, &best) {
		t.Error("a faster time must count as a new PB")
	}
	if !Evaluate(LowerIsBetter, 99.0, nil) {
		t.Error("first-ever record must be the PB")
	}

	weight := 120.0
	if Evaluate(HigherIsBetter, 120.0, &weight) {
		t.Error("equal weight must not count as a new PB")
	}
	if !Evaluate(HigherIsBetter, 122.5, &weight) {
		t.Error("heavier lift must count as a new PB")
	}
}

func TestDirectionFor(t *testing.T) {
	if DirectionFor(models.RecordRace, "") != LowerIsBetter {
		t.Error("race times improve downward")
	}
	if DirectionFor(models.RecordStrength, "") != HigherIsBetter {
		t.Error("strength loads improve upward")
	}
	if DirectionFor(models.RecordTraining, "seconds") != LowerIsBetter {
		t.Error("timed drills improve downward")
	}
	if DirectionFor(models.RecordTraining, "meters") != HigherIsBetter {
		t.Error("jump distances improve upward")
	}
}

func TestCommitSequenceKeepsOneHolder(t *testing.T) {
	store := newFakeStore()
	l := New(store)
	ctx := context.Background()

	// 11.20 is the first record, so the PB.
	isBest, err := l.Commit(ctx, raceRecord(100, 11.20))
	if err != nil || !isBest {
		t.Fatalf("first record: isBest=%v err=%v", isBest, err)
	}

	// 11.50 is slower, no new PB.
	isBest, err = l.Commit(ctx, raceRecord(100, 11.50))
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if isBest {
		t.Error("slower time flagged as PB")
	}

	// 10.95 beats the holder.
	isBest, err = l.Commit(ctx, raceRecord(100, 10.95))
	if err != nil || !isBest {
		t.Fatalf("third record: isBest=%v err=%v", isBest, err)
	}

	if n := store.currentBests(models.RecordRace, "100m"); n != 1 {
		t.Errorf("expected exactly one current PB, found %d", n)
	}
	best, _ := store.GetCurrentBest(ctx, models.RecordRace, "100m")
	if best == nil || *best.TimeS != 10.95 {
		t.Errorf("wrong holder: %+v", best)
	}
}

func TestCommitTieIsNotPB(t *testing.T) {
	store := newFakeStore()
	l := New(store)
	ctx := context.Background()

	rec := models.NewStrengthRecord(uuid.New(), time.Now(), "squat", 120, 3)
	if isBest, err := l.Commit(ctx, rec); err != nil || !isBest {
		t.Fatalf("first squat: isBest=%v err=%v", isBest, err)
	}

	tie := models.NewStrengthRecord(uuid.New(), time.Now(), "squat", 120, 3)
	isBest, err := l.Commit(ctx, tie)
	if err != nil {
		t.Fatalf("tie commit: %v", err)
	}
	if isBest {
		t.Error("equal weight must not demote the holder")
	}
	if n := store.currentBests(models.RecordStrength, "squat"); n != 1 {
		t.Errorf("expected one holder after tie, found %d", n)
	}
}

func TestCommitRetriesOnConflictOnce(t *testing.T) {
	store := newFakeStore()
	l := New(store)
	ctx := context.Background()

	if _, err := l.Commit(ctx, raceRecord(60, 7.10)); err != nil {
		t.Fatal(err)
	}

	// First promote attempt loses the race, the retry succeeds.
	store.conflictOnce = true
	isBest, err := l.Commit(ctx, raceRecord(60, 6.95))
	if err != nil {
		t.Fatalf("commit after conflict: %v", err)
	}
	if !isBest {
		t.Error("retried commit should still win")
	}
	if store.promotes != 1 {
		t.Errorf("expected exactly one successful promote, got %d", store.promotes)
	}
}

func TestCommitFailsWhenLookupFails(t *testing.T) {
	store := newFakeStore()
	store.failLookup = errors.New("store down")
	l := New(store)

	_, err := l.Commit(context.Background(), raceRecord(100, 11.0))
	if err == nil {
		t.Fatal("lookup failure must fail the whole save, never guess the flag")
	}
	if len(store.records) != 0 {
		t.Error("nothing should persist when the best lookup fails")
	}
}

func TestCommitRejectsValuelessRecord(t *testing.T) {
	store := newFakeStore()
	l := New(store)

	rec := &models.PerformanceRecord{
		ID:       uuid.New(),
		Category: models.RecordRace,
		Date:     time.Now(),
	}
	if _, err := l.Commit(context.Background(), rec); err == nil {
		t.Error("record without a comparable value must be rejected")
	}
}
