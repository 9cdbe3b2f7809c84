// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/mempool"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of mining blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	BeneficiaryID database.AccountID
	Genesis       genesis.Genesis
	EvHandler     EventHandler
}

// State manages the ledger: the chain, the pending pool and the mining
// reward policy.
type State struct {
	mu sync.Mutex

	beneficiaryID database.AccountID
	evHandler     EventHandler

	genesis genesis.Genesis
	mempool *mempool.Mempool
	db      *database.Database

	Worker Worker
}

// New constructs a ledger holding only the genesis block and an empty
// pending pool.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The database creates the genesis block, this is the only
	// place it happens.
	db, err := database.New(cfg.Genesis)
	if err != nil {
		return nil, err
	}

	genesisBlock, err := db.LatestBlock()
	if err != nil {
		return nil, err
	}
	ev("state: New: genesis: blk[%s]: difficulty[%d]: reward[%d]", genesisBlock.Hash, cfg.Genesis.Difficulty, cfg.Genesis.MiningReward)

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		evHandler:     ev,

		genesis: cfg.Genesis,
		mempool: mempool.New(),
		db:      db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop any background mining.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// IsChainValid recomputes every block hash and checks every link. It does
// not check the proof of work, see VerifyWork.
func (s *State) IsChainValid() bool {
	return s.db.Validate() == nil
}

// ValidateChain performs the IsChainValid checks and returns the reason
// the chain is not valid.
func (s *State) ValidateChain() error {
	return s.db.Validate()
}

// VerifyWork checks every mined block satisfies the genesis difficulty.
func (s *State) VerifyWork() error {
	return s.db.VerifyWork()
}
