// Package database handles the lower level support for maintaining the
// chain of blocks in memory and deriving balances from it.
package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/hasher"
)

// ErrEmptyChain is returned when the chain has no blocks. The database
// always holds the genesis block so this signals a broken invariant.
var ErrEmptyChain = errors.New("chain is empty")

// ErrBlockNotFound is returned when a block number is past the end of
// the chain.
var ErrBlockNotFound = errors.New("block does not exist")

// =============================================================================

// Database manages the chain of blocks. Index 0 is always the genesis block.
type Database struct {
	mu sync.RWMutex

	genesis genesis.Genesis
	hashFn  hasher.Func
	blocks  []Block
}

// New constructs a database holding only the genesis block.
func New(gen genesis.Genesis) (*Database, error) {
	hashFn, err := hasher.Retrieve(gen.HashStrategy)
	if err != nil {
		return nil, err
	}

	db := Database{
		genesis: gen,
		hashFn:  hashFn,
		blocks:  []Block{GenesisBlock(gen, hashFn)},
	}

	return &db, nil
}

// HashFunc returns the digest function blocks in this chain are hashed with.
func (db *Database) HashFunc() hasher.Func {
	return db.hashFn
}

// Genesis returns the genesis settings the database was built from.
func (db *Database) Genesis() genesis.Genesis {
	return db.genesis
}

// Write appends a mined block to the chain. The block must link to the
// current latest block.
func (db *Database) Write(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.blocks) == 0 {
		return ErrEmptyChain
	}

	latest := db.blocks[len(db.blocks)-1]
	if block.PrevBlockHash != latest.Hash {
		return fmt.Errorf("write block[%d]: %w", len(db.blocks), ErrLinkMismatch)
	}

	db.blocks = append(db.blocks, block.Clone())

	return nil
}

// LatestBlock returns the last block in the chain.
func (db *Database) LatestBlock() (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}

	return db.blocks[len(db.blocks)-1].Clone(), nil
}

// GetBlock returns the block at the specified position, genesis is 0.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return Block{}, fmt.Errorf("block[%d]: %w", num, ErrBlockNotFound)
	}

	return db.blocks[num].Clone(), nil
}

// Len returns the number of blocks in the chain, genesis included.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// Copy returns a copy of every block in the chain.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	for i, block := range db.blocks {
		blocks[i] = block.Clone()
	}
	return blocks
}

// Validate runs ValidateChain over the chain.
func (db *Database) Validate() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return ValidateChain(db.blocks)
}

// VerifyWork runs VerifyWork over the chain with the genesis difficulty.
func (db *Database) VerifyWork() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return VerifyWork(db.blocks, db.genesis.Difficulty)
}

// =============================================================================

// Balance scans every transaction in the chain, in chain order, subtracting
// what the account sent and adding what it received.
func (db *Database) Balance(accountID AccountID) int64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var balance int64
	for _, block := range db.blocks {
		for _, tx := range block.Trans {
			if tx.From == accountID {
				balance -= tx.Amount
			}
			if tx.To == accountID {
				balance += tx.Amount
			}
		}
	}

	return balance
}

// Balances returns the balance of every account seen in the chain. The
// system account is not included.
func (db *Database) Balances() map[AccountID]int64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	balances := make(map[AccountID]int64)
	for _, block := range db.blocks {
		for _, tx := range block.Trans {
			if !tx.From.IsSystem() {
				balances[tx.From] -= tx.Amount
			}
			balances[tx.To] += tx.Amount
		}
	}

	return balances
}
