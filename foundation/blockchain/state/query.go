package state

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// BalanceOf scans the whole chain and returns the balance of the account.
// Pending transactions are not included.
func (s *State) BalanceOf(accountID database.AccountID) int64 {
	return s.db.Balance(accountID)
}

// QueryBalances returns the balance of every account seen in the chain.
func (s *State) QueryBalances() map[database.AccountID]int64 {
	return s.db.Balances()
}

// QueryMempoolLength returns the current length of the pending pool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlocksByNumber returns the set of blocks based on block numbers,
// genesis being block 0.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) ([]database.Block, error) {
	latest := uint64(s.db.Len() - 1)

	if from == QueryLatest {
		from = latest
		to = from
	}
	if to == QueryLatest || to > latest {
		to = latest
	}

	var out []database.Block
	for i := from; i <= to; i++ {
		block, err := s.db.GetBlock(i)
		if err != nil {
			return nil, err
		}
		out = append(out, block)
	}

	return out, nil
}

// QueryBlocksByAccount returns the set of blocks with transactions that
// involve the account. If the account is empty, all blocks are returned.
func (s *State) QueryBlocksByAccount(accountID database.AccountID) []database.Block {
	var out []database.Block
	for _, block := range s.db.Copy() {
		if accountID == "" || block.HasAccount(accountID) {
			out = append(out, block)
		}
	}

	return out
}
