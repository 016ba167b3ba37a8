package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Error types for business-rule rejections. Every rejection leaves the
// ledger exactly as it was before the attempted transition; callers in
// streaming pipelines drop the record and continue.

// TxnIDExistsError is returned when a deposit or withdrawal reuses a
// transaction id that was already accepted.
type TxnIDExistsError struct {
	TxnID uint32
}

func (e *TxnIDExistsError) Error() string {
	return fmt.Sprintf("transaction id %d already exists", e.TxnID)
}

// TxnNotFoundError is returned when a reference names a transaction id
// that was never accepted as a deposit or withdrawal.
type TxnNotFoundError struct {
	TxnID uint32
}

func (e *TxnNotFoundError) Error() string {
	return fmt.Sprintf("transaction id %d does not exist", e.TxnID)
}

// AccountNotFoundError is returned when a transaction targets a client
// with no account.
type AccountNotFoundError struct {
	ClientID uint16
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %d does not exist", e.ClientID)
}

// AccountFrozenError is returned when a transaction targets an account
// that underwent a chargeback.
type AccountFrozenError struct {
	ClientID uint16
}

func (e *AccountFrozenError) Error() string {
	return fmt.Sprintf("account %d is frozen", e.ClientID)
}

// InsufficientFundsError is returned when a withdrawal exceeds the
// available balance at the time of application.
type InsufficientFundsError struct {
	ClientID  uint16
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %d lacks funds: requested %s, available %s",
		e.ClientID, FormatAmount(e.Requested), FormatAmount(e.Available))
}

// AlreadyDisputedError is returned when a dispute targets an entry whose
// disputed flag is already set.
type AlreadyDisputedError struct {
	TxnID uint32
}

func (e *AlreadyDisputedError) Error() string {
	return fmt.Sprintf("transaction %d is already under dispute", e.TxnID)
}

// NotDisputedError is returned when a resolve or chargeback targets an
// entry that is not under dispute.
type NotDisputedError struct {
	TxnID uint32
}

func (e *NotDisputedError) Error() string {
	return fmt.Sprintf("transaction %d is not under dispute", e.TxnID)
}
