// Package mempool maintains the pool of transactions waiting to be mined.
package mempool

import (
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// Mempool represents the ordered set of pending transactions. Order is the
// order of submission since it is part of the next block's hash.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new, empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the end of the pool.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Copy returns a copy of the pending transactions in order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.Tx, len(mp.pool))
	copy(trans, mp.pool)
	return trans
}

// Take hands the pending transactions to the caller and leaves the
// pool empty.
func (mp *Mempool) Take() []database.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	trans := mp.pool
	mp.pool = nil
	return trans
}

// Replace installs the specified transactions ahead of anything that
// was added after the last Take.
func (mp *Mempool) Replace(trans ...database.Tx) {
	mp.Restore(trans)
}

// Restore puts transactions back at the front of the pool, used when a
// mining operation that called Take did not produce a block.
func (mp *Mempool) Restore(trans []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	pool := make([]database.Tx, 0, len(trans)+len(mp.pool))
	pool = append(pool, trans...)
	pool = append(pool, mp.pool...)
	mp.pool = pool
}
