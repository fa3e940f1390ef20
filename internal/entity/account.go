package entity

// Account is a value-holding ledger entry. Reserved funds back open
// commitments and are excluded from the spendable balance.
type Account struct {
	Address  string `json:"address" db:"address"`
	Balance  uint64 `json:"balance" db:"balance"`
	Reserved uint64 `json:"reserved" db:"reserved"`
}

func (a Account) Available() uint64 {
	if a.Reserved > a.Balance {
		return 0
	}
	return a.Balance - a.Reserved
}
