package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/hasher"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newState(t *testing.T, gen genesis.Genesis) *state.State {
	st, err := state.New(state.Config{
		BeneficiaryID: "miner-address",
		Genesis:       gen,
		EvHandler: func(v string, args ...any) {
			t.Logf(v, args...)
		},
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
	}

	return st
}

func mine(t *testing.T, st *state.State, rewardID database.AccountID) database.Block {
	block, err := st.MinePendingTransactions(context.Background(), rewardID)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to mine pending transactions: %v", failed, err)
	}

	return block
}

func TestBalanceAccounting(t *testing.T) {
	t.Log("Given the need to pay a mining reward one block late.")
	{
		st := newState(t, genesis.Default())

		st.SubmitTransaction(database.NewTx("A", "B", 10))

		t.Logf("\tTest 0:\tWhen mining the first block.")
		{
			mine(t, st, "B")

			if got := st.BalanceOf("B"); got != 10 {
				t.Fatalf("\t%s\tTest 0:\tShould have B at 10 from the transfer, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould have B at 10 from the transfer.", success)

			if got := st.BalanceOf("A"); got != -10 {
				t.Fatalf("\t%s\tTest 0:\tShould have A at -10, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould have A at -10.", success)

			pending := st.RetrieveMempool()
			if len(pending) != 1 || !pending[0].From.IsSystem() || pending[0].To != "B" || pending[0].Amount != 10 {
				t.Fatalf("\t%s\tTest 0:\tShould have only the reward pending, got %v.", failed, pending)
			}
			t.Logf("\t%s\tTest 0:\tShould have only the reward pending.", success)
		}

		t.Logf("\tTest 1:\tWhen mining the second block.")
		{
			mine(t, st, "B")

			if got := st.BalanceOf("B"); got != 20 {
				t.Fatalf("\t%s\tTest 1:\tShould have B at 20 with the first reward, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould have B at 20 with the first reward.", success)
		}
	}
}

func TestMinerBalance(t *testing.T) {
	t.Log("Given the need to reproduce the two mining round scenario.")
	{
		st := newState(t, genesis.Default())

		st.SubmitTransaction(database.NewTx("address1", "address2", 10))

		mine(t, st, "miner-address")
		if got := st.BalanceOf("miner-address"); got != 0 {
			t.Fatalf("\t%s\tShould have a zero balance after one round, got %d.", failed, got)
		}
		t.Logf("\t%s\tShould have a zero balance after one round.", success)

		mine(t, st, "miner-address")
		if got := st.BalanceOf("miner-address"); got != 10 {
			t.Fatalf("\t%s\tShould have the first reward after two rounds, got %d.", failed, got)
		}
		t.Logf("\t%s\tShould have the first reward after two rounds.", success)

		if got := st.BalanceOf("address2"); got != 10 {
			t.Fatalf("\t%s\tShould have address2 at 10, got %d.", failed, got)
		}
		t.Logf("\t%s\tShould have address2 at 10.", success)
	}
}

func TestChainAppend(t *testing.T) {
	t.Log("Given the need to append exactly one linked block per mining call.")
	{
		st := newState(t, genesis.Default())
		genesisBlock, err := st.LatestBlock()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to get the genesis block: %v", failed, err)
		}

		for i := 0; i < 3; i++ {
			prev, _ := st.LatestBlock()
			before := len(st.RetrieveBlocks())

			st.SubmitTransaction(database.NewTx("a", "b", int64(i)))
			block := mine(t, st, "m")

			latest, _ := st.LatestBlock()
			if latest.PrevBlockHash != prev.Hash || latest.Hash != block.Hash {
				t.Fatalf("\t%s\tTest %d:\tShould link the new block to the prior latest block.", failed, i)
			}
			t.Logf("\t%s\tTest %d:\tShould link the new block to the prior latest block.", success, i)

			if after := len(st.RetrieveBlocks()); after != before+1 {
				t.Fatalf("\t%s\tTest %d:\tShould grow the chain by one, got %d -> %d.", failed, i, before, after)
			}
			t.Logf("\t%s\tTest %d:\tShould grow the chain by one.", success, i)

			if !database.IsHashSolved(st.RetrieveGenesis().Difficulty, block.Hash) {
				t.Fatalf("\t%s\tTest %d:\tShould mine to the difficulty: %s", failed, i, block.Hash)
			}
			t.Logf("\t%s\tTest %d:\tShould mine to the difficulty.", success, i)
		}

		if !st.IsChainValid() {
			t.Fatalf("\t%s\tShould have a valid chain: %v", failed, st.ValidateChain())
		}
		t.Logf("\t%s\tShould have a valid chain.", success)

		if err := st.VerifyWork(); err != nil {
			t.Fatalf("\t%s\tShould pass the work audit: %v", failed, err)
		}
		t.Logf("\t%s\tShould pass the work audit.", success)

		g := st.RetrieveBlocks()[0]
		if g.PrevBlockHash != database.GenesisPrevHash || g.Hash != genesisBlock.Hash {
			t.Fatalf("\t%s\tShould leave the genesis block unchanged.", failed)
		}
		t.Logf("\t%s\tShould leave the genesis block unchanged.", success)
	}
}

func TestTamperCopy(t *testing.T) {
	t.Log("Given the need to detect tampering with a copy of the chain.")
	{
		st := newState(t, genesis.Default())
		st.SubmitTransaction(database.NewTx("a", "b", 10))
		mine(t, st, "m")

		blocks := st.RetrieveBlocks()
		blocks[1].Trans[0].Amount = 1000

		if err := database.ValidateChain(blocks); !errors.Is(err, database.ErrHashMismatch) {
			t.Fatalf("\t%s\tShould detect the tampered payload, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould detect the tampered payload.", success)

		blocks[1].Hash = blocks[1].CalculateHash()
		if err := database.ValidateChain(blocks); err != nil {
			t.Fatalf("\t%s\tShould accept a re-hashed block, the difficulty is not checked: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept a re-hashed block, the difficulty is not checked.", success)

		if !st.IsChainValid() || st.BalanceOf("b") != 10 {
			t.Fatalf("\t%s\tShould leave the ledger untouched.", failed)
		}
		t.Logf("\t%s\tShould leave the ledger untouched.", success)
	}
}

func TestMineCancelled(t *testing.T) {
	t.Log("Given the need to cancel a mining operation.")
	{
		gen := genesis.Default()
		gen.Difficulty = hasher.DigestLength + 1

		st := newState(t, gen)
		tx := database.NewTx("a", "b", 10)
		st.SubmitTransaction(tx)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := st.MinePendingTransactions(ctx, "m")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("\t%s\tShould get back a cancel error, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould get back a cancel error.", success)

		if n := len(st.RetrieveBlocks()); n != 1 {
			t.Fatalf("\t%s\tShould not grow the chain, got %d blocks.", failed, n)
		}
		t.Logf("\t%s\tShould not grow the chain.", success)

		pending := st.RetrieveMempool()
		if len(pending) != 1 || pending[0] != tx {
			t.Fatalf("\t%s\tShould restore the pending pool, got %v.", failed, pending)
		}
		t.Logf("\t%s\tShould restore the pending pool.", success)
	}
}

func TestEmptyPool(t *testing.T) {
	t.Log("Given the need to mine with nothing pending.")
	{
		st := newState(t, genesis.Default())

		block := mine(t, st, "m")
		if len(block.Trans) != 0 {
			t.Fatalf("\t%s\tShould mine an empty block, got %d trans.", failed, len(block.Trans))
		}
		t.Logf("\t%s\tShould mine an empty block.", success)

		if st.QueryMempoolLength() != 1 {
			t.Fatalf("\t%s\tShould still queue the reward.", failed)
		}
		t.Logf("\t%s\tShould still queue the reward.", success)
	}
}

func TestQueries(t *testing.T) {
	t.Log("Given the need to query the ledger.")
	{
		st := newState(t, genesis.Default())
		st.SubmitTransaction(database.NewTx("a", "b", 10))
		mine(t, st, "m")
		mine(t, st, "m")

		blocks, err := st.QueryBlocksByNumber(state.QueryLatest, state.QueryLatest)
		if err != nil || len(blocks) != 1 || blocks[0].Trans[0].To != "m" {
			t.Fatalf("\t%s\tShould get back the latest block: %v", failed, err)
		}
		t.Logf("\t%s\tShould get back the latest block.", success)

		blocks, err = st.QueryBlocksByNumber(0, 100)
		if err != nil || len(blocks) != 3 {
			t.Fatalf("\t%s\tShould get back every block: %v", failed, err)
		}
		t.Logf("\t%s\tShould get back every block.", success)

		if blocks := st.QueryBlocksByAccount("a"); len(blocks) != 1 {
			t.Fatalf("\t%s\tShould get back one block for a, got %d.", failed, len(blocks))
		}
		t.Logf("\t%s\tShould get back one block for a.", success)

		bals := st.QueryBalances()
		if bals["a"] != -10 || bals["b"] != 10 || bals["m"] != 10 {
			t.Fatalf("\t%s\tShould get back every balance, got %v.", failed, bals)
		}
		t.Logf("\t%s\tShould get back every balance.", success)
	}
}
