// ABOUTME: Chunked batch writes with a time ceiling and a sequential fallback.
// ABOUTME: Large session payloads commit in chunks so one bad row cannot stall everything.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// batchChunkSize keeps each transaction comfortably under statement limits.
	batchChunkSize = 450
	// batchTimeout bounds the whole batch commit.
	batchTimeout = 20 * time.Second
)

// BatchOp is one parameterized statement in a batch.
type BatchOp struct {
	Query string
	Args  []interface{}
}

// CommitBatch executes ops in chunked transactions under a deadline. When a
// chunk transaction fails for a reason other than store unavailability, the
// chunk is retried statement by statement so one bad row only loses itself.
func (d *DB) CommitBatch(ctx context.Context, ops []BatchOp) error {
	if len(ops) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	for start := 0; start < len(ops); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(ops) {
			end = len(ops)
		}
		chunk := ops[start:end]

		if err := d.commitChunk(ctx, chunk); err != nil {
			if ctx.Err() != nil {
				return wrapStoreErr("batch commit", ctx.Err())
			}
			// Fall back to sequential writes for this chunk.
			if err := d.commitSequential(ctx, chunk); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *DB) commitChunk(ctx context.Context, chunk []BatchOp) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStoreErr("begin batch", err)
	}
	defer tx.Rollback()

	for _, op := range chunk {
		if _, err := tx.ExecContext(ctx, op.Query, op.Args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// commitSequential retries a failed chunk one statement at a time, keeping
// every row that can still be written and reporting the ones that could not.
func (d *DB) commitSequential(ctx context.Context, chunk []BatchOp) error {
	var errs []error
	for i, op := range chunk {
		if _, err := d.db.ExecContext(ctx, op.Query, op.Args...); err != nil {
			errs = append(errs, wrapStoreErr(fmt.Sprintf("batch statement %d", i), err))
		}
	}
	return errors.Join(errs...)
}
