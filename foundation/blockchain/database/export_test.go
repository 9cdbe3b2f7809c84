package database

// Encode exposes the canonical hash input for tests.
func (b Block) Encode() []byte {
	return b.encode()
}

// Tamper gives tests direct access to a block stored in the chain.
func (db *Database) Tamper(num int, fn func(block *Block)) {
	db.mu.Lock()
	defer db.mu.Unlock()

	fn(&db.blocks[num])
}
