package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	dir := t.TempDir()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, crypto.SaveECDSA(filepath.Join(dir, "miner1.ecdsa"), key))

	ns, err := nameservice.New(dir)
	require.NoError(t, err)

	accountID := nameservice.PublicKeyToAccountID(key.PublicKey)
	assert.Equal(t, "miner1", ns.Lookup(accountID))
	assert.Equal(t, "address1", ns.Lookup(database.AccountID("address1")))
	assert.Len(t, ns.Copy(), 1)
}

func TestMissingFolder(t *testing.T) {
	ns, err := nameservice.New(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, ns.Copy())
}
