// Package record parses raw transaction records and validates them into
// ledger transactions. The Reader lazily yields one raw record per input
// row; Convert is the pure validation step that enforces the per-type
// amount rules. Neither touches ledger state.
package record

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finlog-io/finlog/ledger"
)

// Raw is one unvalidated input record as read from the source.
// Amount is nil when the field is absent or empty.
type Raw struct {
	Type   string
	Client uint16
	TX     uint32
	Amount *decimal.Decimal
}

// MissingAmountError is returned when a deposit or withdrawal record
// carries no amount.
type MissingAmountError struct {
	Type string
	TX   uint32
}

func (e *MissingAmountError) Error() string {
	return fmt.Sprintf("%s %d: amount is required", e.Type, e.TX)
}

// UnexpectedAmountError is returned when a dispute, resolve, or
// chargeback record carries an amount.
type UnexpectedAmountError struct {
	Type string
	TX   uint32
}

func (e *UnexpectedAmountError) Error() string {
	return fmt.Sprintf("%s %d: amount must be absent", e.Type, e.TX)
}

// UnsupportedTypeError is returned for any transaction type outside the
// five known variants.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported transaction type %q", e.Type)
}

// Convert validates a raw record into a ledger transaction. It is a
// pure function with no side effects; amount-bearing types are
// truncated to the ledger precision here, exactly once.
func Convert(r Raw) (ledger.Transaction, error) {
	switch r.Type {
	case "deposit", "withdrawal":
		if r.Amount == nil {
			return nil, &MissingAmountError{Type: r.Type, TX: r.TX}
		}
		amount := ledger.Truncate(*r.Amount)
		if r.Type == "deposit" {
			return ledger.NewDeposit(r.TX, r.Client, amount), nil
		}
		return ledger.NewWithdrawal(r.TX, r.Client, amount), nil

	case "dispute", "resolve", "chargeback":
		if r.Amount != nil {
			return nil, &UnexpectedAmountError{Type: r.Type, TX: r.TX}
		}
		switch r.Type {
		case "dispute":
			return ledger.NewDispute(r.TX, r.Client), nil
		case "resolve":
			return ledger.NewResolve(r.TX, r.Client), nil
		default:
			return ledger.NewChargeback(r.TX, r.Client), nil
		}

	default:
		return nil, &UnsupportedTypeError{Type: r.Type}
	}
}
