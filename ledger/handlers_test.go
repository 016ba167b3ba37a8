package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func depositOf(txnID uint32, clientID uint16, amount string) *Entry {
	return NewDeposit(txnID, clientID, MustParseAmount(amount))
}

func withdrawalOf(txnID uint32, clientID uint16, amount string) *Entry {
	return NewWithdrawal(txnID, clientID, MustParseAmount(amount))
}

// balances asserts an account's state in one line.
func balances(t *testing.T, l *Ledger, clientID uint16, available, held string, frozen bool) {
	t.Helper()
	acct, ok := l.Account(clientID)
	assert.True(t, ok, "account %d should exist", clientID)
	assert.Equal(t, available, FormatAmount(acct.Available))
	assert.Equal(t, held, FormatAmount(acct.Held))
	assert.Equal(t, frozen, acct.Frozen)
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Ledger)
		txn       *Entry
		wantErr   error
		checkFunc func(*testing.T, *Ledger)
	}{
		{
			name: "creates account on first deposit",
			txn:  depositOf(1, 1, "10.0"),
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "10.0000", "0.0000", false)
				assert.Equal(t, 1, len(l.Accounts()))
				assert.Equal(t, 1, len(l.History()))
			},
		},
		{
			name: "credits existing account",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
			},
			txn: depositOf(2, 1, "2.5"),
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "12.5000", "0.0000", false)
				assert.Equal(t, 1, len(l.Accounts()))
				assert.Equal(t, 2, len(l.History()))
			},
		},
		{
			name: "rejects duplicate transaction id",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
			},
			txn:     depositOf(1, 1, "10.0"),
			wantErr: &TxnIDExistsError{TxnID: 1},
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "10.0000", "0.0000", false)
			},
		},
		{
			name: "rejects deposit to frozen account",
			setup: func(l *Ledger) {
				freezeAccount(t, l, 1, 1)
			},
			txn:     depositOf(10, 1, "1.0"),
			wantErr: &AccountFrozenError{ClientID: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			if tt.setup != nil {
				tt.setup(l)
			}

			err := l.Apply(tt.txn)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}

			if tt.checkFunc != nil {
				tt.checkFunc(t, l)
			}
		})
	}
}

func TestWithdrawal(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Ledger)
		txn       *Entry
		wantErr   error
		checkFunc func(*testing.T, *Ledger)
	}{
		{
			name:    "rejects unknown account",
			txn:     withdrawalOf(1, 1, "10.0"),
			wantErr: &AccountNotFoundError{ClientID: 1},
		},
		{
			name: "rejects duplicate transaction id",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
			},
			txn:     withdrawalOf(1, 1, "5.0"),
			wantErr: &TxnIDExistsError{TxnID: 1},
		},
		{
			name: "rejects insufficient funds",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
			},
			txn: withdrawalOf(2, 1, "20.0"),
			wantErr: &InsufficientFundsError{
				ClientID:  1,
				Requested: MustParseAmount("20.0"),
				Available: MustParseAmount("10.0"),
			},
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "10.0000", "0.0000", false)
			},
		},
		{
			name: "debits available funds",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
			},
			txn: withdrawalOf(2, 1, "5.0"),
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "5.0000", "0.0000", false)
				assert.Equal(t, 2, len(l.History()))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			if tt.setup != nil {
				tt.setup(l)
			}

			err := l.Apply(tt.txn)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}

			if tt.checkFunc != nil {
				tt.checkFunc(t, l)
			}
		})
	}
}

func TestWithdrawalChecksFundsBeforeFrozen(t *testing.T) {
	// A frozen account with insufficient funds reports the funds error;
	// the check order is part of the engine's observable behavior.
	l := New()
	freezeAccount(t, l, 1, 1)

	err := l.Apply(withdrawalOf(10, 1, "100.0"))
	var fundsErr *InsufficientFundsError
	assert.True(t, errors.As(err, &fundsErr), "expected InsufficientFundsError, got %T", err)

	// With enough available the frozen state is reported instead.
	l2 := New()
	assert.NoError(t, l2.Apply(depositOf(1, 1, "50.0")))
	assert.NoError(t, l2.Apply(depositOf(2, 1, "50.0")))
	assert.NoError(t, l2.Apply(NewDispute(2, 1)))
	assert.NoError(t, l2.Apply(NewChargeback(2, 1)))

	err = l2.Apply(withdrawalOf(10, 1, "25.0"))
	var frozenErr *AccountFrozenError
	assert.True(t, errors.As(err, &frozenErr), "expected AccountFrozenError, got %T", err)
}

func TestDispute(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Ledger)
		txn       *Reference
		wantErr   error
		checkFunc func(*testing.T, *Ledger)
	}{
		{
			name:    "rejects unknown account",
			txn:     NewDispute(1, 9),
			wantErr: &AccountNotFoundError{ClientID: 9},
		},
		{
			name: "rejects unknown transaction id",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
			},
			txn:     NewDispute(7, 1),
			wantErr: &TxnNotFoundError{TxnID: 7},
		},
		{
			name: "rejects frozen account before transaction lookup",
			setup: func(l *Ledger) {
				freezeAccount(t, l, 1, 1)
			},
			txn:     NewDispute(42, 1),
			wantErr: &AccountFrozenError{ClientID: 1},
		},
		{
			name: "moves amount from available to held",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
			},
			txn: NewDispute(1, 1),
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "0.0000", "10.0000", false)
				entry := l.History()[0].(*Entry)
				assert.True(t, entry.Disputed, "original entry should be flagged")
				assert.Equal(t, 2, len(l.History()), "dispute should append to history")
			},
		},
		{
			name: "drives available negative when funds already withdrawn",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
				assert.NoError(t, l.Apply(withdrawalOf(2, 1, "8.0")))
			},
			txn: NewDispute(1, 1),
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "-8.0000", "10.0000", false)
			},
		},
		{
			name: "rejects a second dispute on the same entry",
			setup: func(l *Ledger) {
				assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
				assert.NoError(t, l.Apply(NewDispute(1, 1)))
			},
			txn:     NewDispute(1, 1),
			wantErr: &AlreadyDisputedError{TxnID: 1},
			checkFunc: func(t *testing.T, l *Ledger) {
				balances(t, l, 1, "0.0000", "10.0000", false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			if tt.setup != nil {
				tt.setup(l)
			}

			err := l.Apply(tt.txn)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}

			if tt.checkFunc != nil {
				tt.checkFunc(t, l)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	l := New()
	assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))

	err := l.Apply(NewResolve(1, 1))
	var notDisputed *NotDisputedError
	assert.True(t, errors.As(err, &notDisputed), "resolve requires an open dispute")

	assert.NoError(t, l.Apply(NewDispute(1, 1)))
	assert.NoError(t, l.Apply(NewResolve(1, 1)))

	balances(t, l, 1, "10.0000", "0.0000", false)
	entry := l.History()[0].(*Entry)
	assert.False(t, entry.Disputed, "resolve should clear the flag")
	assert.Equal(t, 3, len(l.History()))

	// A resolved entry can be disputed again.
	assert.NoError(t, l.Apply(NewDispute(1, 1)))
	balances(t, l, 1, "0.0000", "10.0000", false)
}

func TestChargeback(t *testing.T) {
	l := New()
	assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))

	err := l.Apply(NewChargeback(1, 1))
	var notDisputed *NotDisputedError
	assert.True(t, errors.As(err, &notDisputed), "chargeback requires an open dispute")

	assert.NoError(t, l.Apply(NewDispute(1, 1)))
	assert.NoError(t, l.Apply(NewChargeback(1, 1)))

	// Held is drained and the account frozen; available is not credited.
	balances(t, l, 1, "0.0000", "0.0000", true)
	entry := l.History()[0].(*Entry)
	assert.False(t, entry.Disputed)
	assert.Equal(t, 3, len(l.History()))

	// Everything after a chargeback is rejected.
	err = l.Apply(depositOf(5, 1, "1.0"))
	var frozen *AccountFrozenError
	assert.True(t, errors.As(err, &frozen))
	err = l.Apply(NewDispute(1, 1))
	assert.True(t, errors.As(err, &frozen))
}

func TestRejectionLeavesStateUnchanged(t *testing.T) {
	l := New()
	assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
	assert.NoError(t, l.Apply(NewDispute(1, 1)))

	before, ok := l.Account(1)
	assert.True(t, ok)
	historyLen := len(l.History())

	// Applying the same invalid transaction repeatedly never changes
	// state after the first rejection.
	for i := 0; i < 3; i++ {
		assert.Error(t, l.Apply(NewDispute(1, 1)))
		assert.Error(t, l.Apply(withdrawalOf(9, 1, "99.0")))
		assert.Error(t, l.Apply(depositOf(1, 1, "10.0")))

		after, ok := l.Account(1)
		assert.True(t, ok)
		assert.Equal(t, before, after)
		assert.Equal(t, historyLen, len(l.History()))
	}
}

func TestCorruptTxnIndexPanics(t *testing.T) {
	l := New()
	assert.NoError(t, l.Apply(depositOf(1, 1, "10.0")))
	assert.NoError(t, l.Apply(NewDispute(1, 1)))

	// Point the entry index at the dispute reference in history. This
	// cannot happen through Apply; it simulates corrupted internal state.
	l.txnIndex[1] = 1

	assert.Panics(t, func() {
		_ = l.Apply(NewResolve(1, 1))
	})
}

// freezeAccount runs a full dispute lifecycle so the client's account
// ends up frozen with the given deposit charged back.
func freezeAccount(t *testing.T, l *Ledger, clientID uint16, txnID uint32) {
	t.Helper()
	assert.NoError(t, l.Apply(depositOf(txnID, clientID, "10.0")))
	assert.NoError(t, l.Apply(NewDispute(txnID, clientID)))
	assert.NoError(t, l.Apply(NewChargeback(txnID, clientID)))
}
