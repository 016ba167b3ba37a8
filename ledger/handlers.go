package ledger

import "fmt"

// applyDeposit credits an account, creating it if this is the client's
// first accepted deposit.
func (l *Ledger) applyDeposit(e *Entry) error {
	if _, ok := l.txnIndex[e.TxnID]; ok {
		return &TxnIDExistsError{TxnID: e.TxnID}
	}

	if i, ok := l.accountIndex[e.ClientID]; ok {
		acct := l.accounts[i]
		if acct.Frozen {
			return &AccountFrozenError{ClientID: e.ClientID}
		}
		acct.Available = acct.Available.Add(e.Amount)
	} else {
		l.accountIndex[e.ClientID] = len(l.accounts)
		l.accounts = append(l.accounts, &Account{ID: e.ClientID, Available: e.Amount})
	}

	l.record(e)
	return nil
}

// applyWithdrawal debits an existing account. Insufficient funds are
// checked before the frozen state; the ordering is observable through
// the returned error type.
func (l *Ledger) applyWithdrawal(e *Entry) error {
	if _, ok := l.txnIndex[e.TxnID]; ok {
		return &TxnIDExistsError{TxnID: e.TxnID}
	}

	i, ok := l.accountIndex[e.ClientID]
	if !ok {
		return &AccountNotFoundError{ClientID: e.ClientID}
	}
	acct := l.accounts[i]
	if acct.Available.LessThan(e.Amount) {
		return &InsufficientFundsError{ClientID: e.ClientID, Requested: e.Amount, Available: acct.Available}
	}
	if acct.Frozen {
		return &AccountFrozenError{ClientID: e.ClientID}
	}

	acct.Available = acct.Available.Sub(e.Amount)
	l.record(e)
	return nil
}

// lookupReference resolves the account and referenced entry shared by
// the dispute, resolve, and chargeback handlers. The transaction index
// only ever points at entries; anything else there means corrupted
// internal state and fails loudly.
func (l *Ledger) lookupReference(r *Reference) (*Account, *Entry, error) {
	i, ok := l.accountIndex[r.ClientID]
	if !ok {
		return nil, nil, &AccountNotFoundError{ClientID: r.ClientID}
	}
	acct := l.accounts[i]
	if acct.Frozen {
		return nil, nil, &AccountFrozenError{ClientID: r.ClientID}
	}

	j, ok := l.txnIndex[r.RefID]
	if !ok {
		return nil, nil, &TxnNotFoundError{TxnID: r.RefID}
	}
	entry, ok := l.history[j].(*Entry)
	if !ok {
		panic(fmt.Sprintf("ledger: transaction index %d points at a non-entry history element", r.RefID))
	}
	return acct, entry, nil
}

// applyDispute moves the referenced entry's amount from available to
// held. The move may drive available negative when the disputed funds
// were already withdrawn; that is accepted behavior.
func (l *Ledger) applyDispute(r *Reference) error {
	acct, entry, err := l.lookupReference(r)
	if err != nil {
		return err
	}
	if entry.Disputed {
		return &AlreadyDisputedError{TxnID: entry.TxnID}
	}

	acct.Available = acct.Available.Sub(entry.Amount)
	acct.Held = acct.Held.Add(entry.Amount)
	entry.Disputed = true

	l.record(r)
	return nil
}

// applyResolve releases a disputed entry's amount back to available.
func (l *Ledger) applyResolve(r *Reference) error {
	acct, entry, err := l.lookupReference(r)
	if err != nil {
		return err
	}
	if !entry.Disputed {
		return &NotDisputedError{TxnID: entry.TxnID}
	}

	acct.Held = acct.Held.Sub(entry.Amount)
	acct.Available = acct.Available.Add(entry.Amount)
	entry.Disputed = false

	l.record(r)
	return nil
}

// applyChargeback withdraws a disputed entry's amount from held and
// freezes the account. Available is left untouched; the charged-back
// funds are not returned to the client.
func (l *Ledger) applyChargeback(r *Reference) error {
	acct, entry, err := l.lookupReference(r)
	if err != nil {
		return err
	}
	if !entry.Disputed {
		return &NotDisputedError{TxnID: entry.TxnID}
	}

	acct.Held = acct.Held.Sub(entry.Amount)
	acct.Frozen = true
	entry.Disputed = false

	l.record(r)
	return nil
}
