// Package hasher provides the digest functions used to hash blocks. Every
// strategy produces a 64 character, lowercase, hex-encoded digest with no
// 0x prefix so the leading zero proof of work rule can be applied to it.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Set of strategies that can be selected by name.
const (
	StrategySHA256    = "sha256"
	StrategyKeccak256 = "keccak256"
)

// DigestLength is the number of hex characters produced by every strategy.
const DigestLength = 64

// Func defines a function that produces a hex digest for the specified data.
type Func func(data []byte) string

// Map of strategies with functions.
var strategies = map[string]Func{
	StrategySHA256:    SHA256,
	StrategyKeccak256: Keccak256,
}

// Retrieve returns the specified hash strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strings.ToLower(strategy)]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}

// SHA256 hashes the data with sha256.
func SHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Keccak256 hashes the data with the Ethereum flavor of sha3.
func Keccak256(data []byte) string {
	return hex.EncodeToString(crypto.Keccak256(data))
}
