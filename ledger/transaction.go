package ledger

import "github.com/shopspring/decimal"

// Kind identifies a transaction variant.
type Kind int

const (
	KindDeposit Kind = iota
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

// String returns the string representation of the transaction kind.
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Transaction is the closed set of record variants the engine accepts.
// An Entry carries its own amount and unique id; a Reference points at
// a previously accepted Entry. The interface is sealed so the dispatch
// in Ledger.Apply covers every variant.
type Transaction interface {
	Kind() Kind
	Client() uint16

	transaction()
}

// Entry is a deposit or withdrawal. Its TxnID is unique across the
// whole input; the Disputed flag is mutated in place on the history
// element when the entry enters or leaves a dispute.
type Entry struct {
	TxnID    uint32
	ClientID uint16
	Amount   decimal.Decimal
	Disputed bool

	kind Kind
}

// NewDeposit creates a deposit entry. The amount must already be
// truncated to Precision.
func NewDeposit(txnID uint32, clientID uint16, amount decimal.Decimal) *Entry {
	return &Entry{kind: KindDeposit, TxnID: txnID, ClientID: clientID, Amount: amount}
}

// NewWithdrawal creates a withdrawal entry. The amount must already be
// truncated to Precision.
func NewWithdrawal(txnID uint32, clientID uint16, amount decimal.Decimal) *Entry {
	return &Entry{kind: KindWithdrawal, TxnID: txnID, ClientID: clientID, Amount: amount}
}

func (e *Entry) Kind() Kind     { return e.kind }
func (e *Entry) Client() uint16 { return e.ClientID }
func (*Entry) transaction()     {}

// Reference is a dispute, resolve, or chargeback. It carries no id of
// its own; RefID names the entry it acts on. References are recorded in
// history but never indexed for lookup.
type Reference struct {
	RefID    uint32
	ClientID uint16

	kind Kind
}

// NewDispute creates a dispute against a prior entry.
func NewDispute(refID uint32, clientID uint16) *Reference {
	return &Reference{kind: KindDispute, RefID: refID, ClientID: clientID}
}

// NewResolve creates a resolve against a disputed entry.
func NewResolve(refID uint32, clientID uint16) *Reference {
	return &Reference{kind: KindResolve, RefID: refID, ClientID: clientID}
}

// NewChargeback creates a chargeback against a disputed entry.
func NewChargeback(refID uint32, clientID uint16) *Reference {
	return &Reference{kind: KindChargeback, RefID: refID, ClientID: clientID}
}

func (r *Reference) Kind() Kind     { return r.kind }
func (r *Reference) Client() uint16 { return r.ClientID }
func (*Reference) transaction()     {}
