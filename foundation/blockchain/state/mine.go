package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// MinePendingTransactions packages the pending pool into a new block, mines
// it and appends it to the chain. The pool is then replaced by the reward
// transaction for the specified account, which is paid once it is itself
// mined into a later block. The call blocks until the block is mined or
// the context is cancelled.
func (s *State) MinePendingTransactions(ctx context.Context, rewardID database.AccountID) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MinePendingTransactions: MINING: started: reward[%s]", rewardID)
	defer s.evHandler("state: MinePendingTransactions: MINING: completed")

	latestBlock, err := s.db.LatestBlock()
	if err != nil {
		return database.Block{}, err
	}

	// The pending transactions now belong to this block.
	trans := s.mempool.Take()

	block := database.NewBlock(uint64(time.Now().UTC().UnixMilli()), trans, latestBlock.Hash, s.db.HashFunc())

	// Perform the proof of work. This only stops early if cancelled.
	if err := block.Mine(ctx, s.genesis.Difficulty, s.evHandler); err != nil {
		s.evHandler("state: MinePendingTransactions: MINING: restore trans[%d]", len(trans))
		s.mempool.Restore(trans)
		return database.Block{}, err
	}

	s.evHandler("state: MinePendingTransactions: MINING: write block")

	if err := s.db.Write(block); err != nil {
		s.mempool.Restore(trans)
		return database.Block{}, fmt.Errorf("writing block: %w", err)
	}

	// Pay the miner in the next block.
	s.mempool.Replace(database.NewRewardTx(rewardID, s.genesis.MiningReward))

	s.blockEvent(block)

	return block, nil
}

// MineForBeneficiary mines the pending pool with the reward going to the
// account configured for this ledger.
func (s *State) MineForBeneficiary(ctx context.Context) (database.Block, error) {
	return s.MinePendingTransactions(ctx, s.beneficiaryID)
}

// =============================================================================

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: {"number":%d,"block":%s}`, s.db.Len()-1, string(blockJSON))
}
