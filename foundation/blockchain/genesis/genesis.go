// Package genesis maintains access to the genesis settings of the ledger.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/hasher"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`          // The timestamp stamped into the genesis block.
	Difficulty   uint      `json:"difficulty"`    // Number of leading 0's a mined block hash needs.
	MiningReward int64     `json:"mining_reward"` // Reward paid to the miner in a later block.
	HashStrategy string    `json:"hash_strategy"` // Name of the digest function used for blocks.
}

// Default returns the genesis settings the ledger uses when no genesis
// file is provided.
func Default() Genesis {
	return Genesis{
		Date:         time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC),
		Difficulty:   2,
		MiningReward: 10,
		HashStrategy: hasher.StrategySHA256,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis %q: %w", path, err)
	}

	if _, err := hasher.Retrieve(genesis.HashStrategy); err != nil {
		return Genesis{}, fmt.Errorf("genesis %q: %w", path, err)
	}

	return genesis, nil
}

// TimeStamp returns the genesis date in unix milliseconds.
func (g Genesis) TimeStamp() uint64 {
	return uint64(g.Date.UTC().UnixMilli())
}
