package state

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// RetrieveBeneficiary returns the account rewards are paid to when mining
// through the worker.
func (s *State) RetrieveBeneficiary() database.AccountID {
	return s.beneficiaryID
}

// LatestBlock returns a copy of the last block in the chain. It returns
// database.ErrEmptyChain if the chain has no blocks, which can't happen for
// a ledger built with New.
func (s *State) LatestBlock() (database.Block, error) {
	return s.db.LatestBlock()
}

// RetrieveBlocks returns a copy of every block in the chain.
func (s *State) RetrieveBlocks() []database.Block {
	return s.db.Copy()
}
