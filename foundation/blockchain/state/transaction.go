package state

import "github.com/ardanlabs/powchain/foundation/blockchain/database"

// SubmitTransaction appends a transaction to the pending pool. The ledger
// does not validate transactions: no balance, signature or format checks.
func (s *State) SubmitTransaction(tx database.Tx) {
	n := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: tx[%s]: pending[%d]", tx, n)
}

// SignalMining asks the background worker, if one is running, to mine the
// pending pool.
func (s *State) SignalMining() {
	if s.Worker == nil {
		s.evHandler("state: SignalMining: no worker running")
		return
	}

	s.Worker.SignalStartMining()
}
