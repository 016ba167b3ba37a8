// Package finlog replays an ordered log of financial transaction
// records against a set of per-client accounts, producing the final
// account balances. The heavy lifting lives in the subpackages; this
// package offers a convenience entry point over them.
package finlog

import (
	"context"
	"io"

	"github.com/finlog-io/finlog/engine"
	"github.com/finlog-io/finlog/ledger"
	"github.com/finlog-io/finlog/record"
)

// Replay streams transaction records from r onto a fresh ledger and
// returns the resulting accounts in first-touch order. Malformed and
// rejected records are skipped; the input is expected to start with a
// column header.
func Replay(ctx context.Context, r io.Reader) ([]ledger.Account, error) {
	l := ledger.New()
	src := record.NewReader(r)
	if err := engine.Stream(ctx, l, src, nil); err != nil {
		return nil, err
	}
	return l.Accounts(), nil
}
