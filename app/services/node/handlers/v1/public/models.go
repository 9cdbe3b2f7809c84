package public

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/validate"
)

type tx struct {
	FromAccount database.AccountID `json:"from"`
	FromName    string             `json:"from_name"`
	To          database.AccountID `json:"to"`
	ToName      string             `json:"to_name"`
	Amount      int64              `json:"amount"`
}

type block struct {
	Number        uint64 `json:"number"`
	TimeStamp     uint64 `json:"timestamp"`
	PrevBlockHash string `json:"prev_block_hash"`
	Hash          string `json:"hash"`
	Nonce         uint64 `json:"nonce"`
	Transactions  []tx   `json:"txs"`
}

type balance struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance int64              `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

type chainStatus struct {
	Valid        bool   `json:"valid"`
	Error        string `json:"error,omitempty"`
	WorkVerified bool   `json:"work_verified"`
	WorkError    string `json:"work_error,omitempty"`
	Blocks       int    `json:"blocks"`
}

// =============================================================================

// NewTx is what we require from clients when submitting a transaction. The
// sender is optional, an empty sender is a system issued transaction.
type NewTx struct {
	From   database.AccountID `json:"from"`
	To     database.AccountID `json:"to" validate:"required"`
	Amount int64              `json:"amount"`
}

// Validate checks the data in the model is considered clean.
func (ntx NewTx) Validate() error {
	return validate.Check(ntx)
}
