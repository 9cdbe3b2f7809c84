package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/hasher"
)

// GenesisPrevHash is the previous hash stamped into the genesis block.
const GenesisPrevHash = "0"

// Set of errors returned when validating the chain.
var (
	ErrHashMismatch = errors.New("block hash does not match block content")
	ErrLinkMismatch = errors.New("previous hash does not match previous block")
	ErrHashUnsolved = errors.New("block hash does not satisfy the difficulty")
)

// =============================================================================

// Block represents a group of transactions batched together and linked to
// the block before it.
type Block struct {
	TimeStamp     uint64 `json:"timestamp"`       // Unix milliseconds when the block was created.
	Trans         []Tx   `json:"trans"`           // Transactions in the order they were submitted.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	Hash          string `json:"hash"`            // Hash of this block's content and nonce.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.

	hashFn hasher.Func
}

// NewBlock constructs a block with a nonce of zero and the hash for that
// state. A nil hash function defaults to sha256.
func NewBlock(timeStamp uint64, trans []Tx, prevBlockHash string, hashFn hasher.Func) Block {
	if hashFn == nil {
		hashFn = hasher.SHA256
	}

	b := Block{
		TimeStamp:     timeStamp,
		Trans:         trans,
		PrevBlockHash: prevBlockHash,
		Nonce:         0,
		hashFn:        hashFn,
	}
	b.Hash = b.CalculateHash()

	return b
}

// GenesisBlock constructs the fixed first block of the chain.
func GenesisBlock(gen genesis.Genesis, hashFn hasher.Func) Block {
	return NewBlock(gen.TimeStamp(), nil, GenesisPrevHash, hashFn)
}

// CalculateHash returns the digest of the block's current content. The
// result is not stored, callers refresh Hash after changing the block.
func (b Block) CalculateHash() string {
	hashFn := b.hashFn
	if hashFn == nil {
		hashFn = hasher.SHA256
	}

	return hashFn(b.encode())
}

// Mine increments the nonce from its current value until the hash has
// difficulty leading zeros. There is no iteration cap, a difficulty larger
// than the digest length never finishes unless the context is cancelled.
func (b *Block) Mine(ctx context.Context, difficulty uint, evHandler func(v string, args ...any)) error {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: Mine: MINING: started: prevBlk[%s]: trans[%d]: difficulty[%d]", b.PrevBlockHash, len(b.Trans), difficulty)

	var attempts uint64
	for !IsHashSolved(difficulty, b.Hash) {
		if ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED: attempts[%d]", attempts)
			return ctx.Err()
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		b.Nonce++
		b.Hash = b.CalculateHash()
	}

	ev("database: Mine: MINING: SOLVED: blk[%s]: nonce[%d]: attempts[%d]", b.Hash, b.Nonce, attempts)

	return nil
}

// Clone returns a copy of the block that shares no memory with the original.
func (b Block) Clone() Block {
	if b.Trans != nil {
		trans := make([]Tx, len(b.Trans))
		copy(trans, b.Trans)
		b.Trans = trans
	}
	return b
}

// HasAccount reports whether the account sends or receives value in
// this block.
func (b Block) HasAccount(accountID AccountID) bool {
	for _, tx := range b.Trans {
		if tx.From == accountID || tx.To == accountID {
			return true
		}
	}
	return false
}

// =============================================================================

// blockHashInput is the canonical form of a block used as the hash input.
// The field order here is the order of the keys in the encoding.
type blockHashInput struct {
	TimeStamp     uint64 `json:"timestamp"`
	Trans         []Tx   `json:"trans"`
	PrevBlockHash string `json:"prev_block_hash"`
	Nonce         uint64 `json:"nonce"`
}

// encode produces the canonical bytes for the block: compact JSON with keys
// in declaration order, base 10 integers, an empty array for no
// transactions and no HTML escaping.
func (b Block) encode() []byte {
	trans := b.Trans
	if trans == nil {
		trans = []Tx{}
	}

	in := blockHashInput{
		TimeStamp:     b.TimeStamp,
		Trans:         trans,
		PrevBlockHash: b.PrevBlockHash,
		Nonce:         b.Nonce,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Only strings and integers are encoded, this can't fail.
	enc.Encode(in)

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// =============================================================================

// IsHashSolved checks the hash has a difficulty number of leading 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	if difficulty == 0 {
		return true
	}

	if uint(len(hash)) < difficulty {
		return false
	}

	return hash[:difficulty] == strings.Repeat("0", int(difficulty))
}

// ValidateChain recomputes the hash of every block after genesis and checks
// it links to the block before it. The genesis block is not checked and the
// difficulty is not checked, a re-hashed block that was never mined passes.
func ValidateChain(blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		current := blocks[i]
		previous := blocks[i-1]

		if current.Hash != current.CalculateHash() {
			return fmt.Errorf("block[%d]: %w", i, ErrHashMismatch)
		}

		if current.PrevBlockHash != previous.Hash {
			return fmt.Errorf("block[%d]: %w", i, ErrLinkMismatch)
		}
	}

	return nil
}

// VerifyWork checks every block after genesis carries a hash that satisfies
// the difficulty. This is a separate audit and is not part of ValidateChain.
func VerifyWork(blocks []Block, difficulty uint) error {
	for i := 1; i < len(blocks); i++ {
		if !IsHashSolved(difficulty, blocks[i].Hash) {
			return fmt.Errorf("block[%d]: %s: %w", i, blocks[i].Hash, ErrHashUnsolved)
		}
	}

	return nil
}
