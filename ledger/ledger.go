// Package ledger implements the transaction replay state machine behind
// the finlog processor. It maintains per-client accounts, an append-only
// history of every accepted transaction, and the id indices that make
// lookups by client and by transaction id O(1).
//
// The ledger validates that:
//   - Deposit and withdrawal ids are unique across the whole input
//   - Withdrawals never exceed the available balance
//   - Frozen accounts reject all further transactions
//   - Disputes, resolves, and chargebacks follow the dispute lifecycle
//
// All monetary arithmetic uses decimal values; amounts are truncated to
// four fractional digits once at ingestion and never re-rounded.
//
// Example usage:
//
//	l := ledger.New()
//	err := l.Apply(ledger.NewDeposit(1, 1, ledger.MustParseAmount("10.0")))
//	if err != nil {
//	    // Business rejection; ledger state is unchanged.
//	}
//	for _, acct := range l.Accounts() {
//	    fmt.Println(acct.ID, ledger.FormatAmount(acct.Total()))
//	}
package ledger

// Ledger owns the full replay state: the account set in first-touch
// order, the accepted transaction history in processing order, and the
// id indices over both. It is a single explicit value with exactly one
// logical writer; there is no hidden global state.
type Ledger struct {
	accounts     []*Account
	accountIndex map[uint16]int // client id -> position in accounts

	history  []Transaction  // accepted transactions, append-only
	txnIndex map[uint32]int // entry id -> position in history; entries only
}

// New creates a new empty ledger.
func New() *Ledger {
	return &Ledger{
		accountIndex: make(map[uint16]int),
		txnIndex:     make(map[uint32]int),
	}
}

// Apply dispatches a transaction to its handler. It is the only place
// that maps variants to handlers. On any returned error the ledger is
// exactly as it was before the call.
func (l *Ledger) Apply(txn Transaction) error {
	switch t := txn.(type) {
	case *Entry:
		switch t.kind {
		case KindDeposit:
			return l.applyDeposit(t)
		case KindWithdrawal:
			return l.applyWithdrawal(t)
		}
	case *Reference:
		switch t.kind {
		case KindDispute:
			return l.applyDispute(t)
		case KindResolve:
			return l.applyResolve(t)
		case KindChargeback:
			return l.applyChargeback(t)
		}
	}
	panic("ledger: unhandled transaction variant")
}

// Accounts returns a snapshot of every account in first-touch order.
// The copies are safe to hold across further Apply calls.
func (l *Ledger) Accounts() []Account {
	accounts := make([]Account, len(l.accounts))
	for i, a := range l.accounts {
		accounts[i] = *a
	}
	return accounts
}

// Account returns a snapshot of the account for the given client id.
func (l *Ledger) Account(clientID uint16) (Account, bool) {
	i, ok := l.accountIndex[clientID]
	if !ok {
		return Account{}, false
	}
	return *l.accounts[i], true
}

// History returns the accepted transaction history in processing order.
// Callers must not modify the returned slice or its elements.
func (l *Ledger) History() []Transaction {
	return l.history
}

// record appends an accepted transaction to the history. Entries are
// additionally indexed by their transaction id; references never are.
func (l *Ledger) record(txn Transaction) {
	l.history = append(l.history, txn)
	if e, ok := txn.(*Entry); ok {
		l.txnIndex[e.TxnID] = len(l.history) - 1
	}
}
