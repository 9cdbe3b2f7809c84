package database

import "fmt"

// AccountID represents an address that sends or receives value on the
// ledger. Any string is accepted, the ledger does not check its format.
type AccountID string

// SystemAccount is the empty sender used for value the ledger issues itself,
// like the mining reward.
const SystemAccount AccountID = ""

// IsSystem reports whether the account is the absent, system issued sender.
func (a AccountID) IsSystem() bool {
	return a == SystemAccount
}

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	From   AccountID `json:"from"`   // Account sending the value, empty for rewards.
	To     AccountID `json:"to"`     // Account receiving the value.
	Amount int64     `json:"amount"` // Value moved, the sign is not checked.
}

// NewTx constructs a new transaction. No validation is performed, negative
// amounts, self transfers and overdrafts are all accepted.
func NewTx(from AccountID, to AccountID, amount int64) Tx {
	return Tx{
		From:   from,
		To:     to,
		Amount: amount,
	}
}

// NewRewardTx constructs the transaction that pays the mining reward.
func NewRewardTx(to AccountID, amount int64) Tx {
	return NewTx(SystemAccount, to, amount)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	from := string(tx.From)
	if tx.From.IsSystem() {
		from = "system"
	}

	return fmt.Sprintf("%s->%s:%d", from, tx.To, tx.Amount)
}
