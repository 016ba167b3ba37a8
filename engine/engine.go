// Package engine drives a ledger over a record source. It offers two
// ingestion policies: Stream skips anything wrong with an individual
// record and keeps going, Batch aborts the run on the first record the
// source cannot deliver cleanly. Business-rule rejections never abort
// either policy; a rejected record leaves the ledger unchanged.
package engine

import (
	"context"
	"errors"
	"io"

	"github.com/finlog-io/finlog/ledger"
	"github.com/finlog-io/finlog/record"
	"github.com/finlog-io/finlog/telemetry"
)

// Stats counts the outcome of every record seen by a run.
type Stats struct {
	Accepted          int
	SkippedRows       int
	SkippedConversion int
	SkippedBusiness   int
}

// Skipped returns the total number of records that did not reach the
// ledger or were rejected by it.
func (s Stats) Skipped() int {
	return s.SkippedRows + s.SkippedConversion + s.SkippedBusiness
}

// Stream replays records onto the ledger with the streaming policy:
// unreadable rows, invalid records, and business rejections are counted
// and skipped. The run ends on source exhaustion, source failure, or
// context cancellation. stats may be nil.
func Stream(ctx context.Context, l *ledger.Ledger, src *record.Reader, stats *Stats) error {
	if stats == nil {
		stats = &Stats{}
	}

	timer := telemetry.FromContext(ctx).Start("engine.stream")
	defer timer.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var rowErr *record.RowError
		if errors.As(err, &rowErr) {
			stats.SkippedRows++
			continue
		}
		if err != nil {
			return err
		}

		txn, err := record.Convert(raw)
		if err != nil {
			stats.SkippedConversion++
			continue
		}

		if err := l.Apply(txn); err != nil {
			stats.SkippedBusiness++
			continue
		}
		stats.Accepted++
	}
}

// Batch replays records with the batch policy: the first unreadable or
// invalid record aborts the whole run. Business rejections are still
// skipped; they are data outcomes, not source failures. Records applied
// before an abort remain applied.
func Batch(ctx context.Context, l *ledger.Ledger, src *record.Reader) error {
	timer := telemetry.FromContext(ctx).Start("engine.batch")
	defer timer.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		txn, err := record.Convert(raw)
		if err != nil {
			return err
		}

		_ = l.Apply(txn)
	}
}
