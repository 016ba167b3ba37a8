package ledger

import "github.com/shopspring/decimal"

// Account holds the balance state for a single client. There is one
// account per client, created lazily by the first accepted deposit; no
// separate creation transaction exists.
//
// Available may legally go negative as a side effect of a dispute on
// funds that were already withdrawn. Available >= 0 is enforced only at
// withdrawal time.
type Account struct {
	ID        uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Frozen    bool
}

// Total returns available plus held funds. It is always derived, never
// stored.
func (a Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}
